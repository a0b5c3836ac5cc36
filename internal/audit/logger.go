package audit

import (
	"encoding/json"

	"gorm.io/gorm"

	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/models"
)

type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(
	requestID uint,
	actorID uint,
	action string,
	detail any,
) error {

	var detailJSON string
	if detail != nil {
		if s, ok := detail.(string); ok {
			detailJSON = s
		} else if b, err := json.Marshal(detail); err == nil {
			detailJSON = string(b)
		}
	}

	entry := models.RequestLog{
		RequestID: requestID,
		ActorID:   actorID,
		Action:    action,
		Detail:    detailJSON,
	}

	return l.db.Create(&entry).Error
}
