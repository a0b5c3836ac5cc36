package audit

import "github.com/michaelofdavenport/london-ohio-lions-club-app/internal/logger"

type Event struct {
	RequestID uint
	ActorID   uint
	Action    string
	Detail    any
}

type Dispatcher struct {
	logger *Logger
	queue  chan Event
}

func NewDispatcher(logger *Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		queue:  make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.logger.Log(
			ev.RequestID,
			ev.ActorID,
			ev.Action,
			ev.Detail,
		); err != nil {
			logger.L.Errorw("request log write failed", "err", err)
		}
	}
}

// Dispatch enqueues the event without blocking. On a full queue the
// event is dropped; the activity trail never takes down a request.
func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		logger.L.Warnw("request log queue full, dropping event",
			"action", ev.Action, "request_id", ev.RequestID)
	}
}
