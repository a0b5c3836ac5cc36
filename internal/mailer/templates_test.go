package mailer

import (
	"testing"
	"time"

	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/models"
	"github.com/stretchr/testify/assert"
)

func sampleRequest() *models.Request {
	return &models.Request{
		ID:             12,
		Category:       "eyeglasses",
		Status:         models.RequestPending,
		RequesterName:  "Pat Smith",
		RequesterEmail: "pat@example.com",
		Description:    "Need reading glasses",
		CreatedAt:      time.Date(2025, 6, 15, 22, 30, 0, 0, time.UTC),
	}
}

func TestRequestReceived(t *testing.T) {
	p := RequestReceived("London Ohio Lions Club", sampleRequest(), "https://app.example.org/")
	assert.Equal(t, "London Ohio Lions Club — Request Received (#12)", p.Subject)
	assert.Contains(t, p.Body, "Hello Pat Smith,")
	assert.Contains(t, p.Body, "Request ID: 12")
	assert.Contains(t, p.Body, "Category: eyeglasses")
	assert.Contains(t, p.Body, "Current Status: PENDING")
	assert.Contains(t, p.Body, "https://app.example.org/static/index.html")
	assert.Contains(t, p.Body, "Regards,\nLondon Ohio Lions Club")
}

func TestRequestReceivedNoBaseURL(t *testing.T) {
	p := RequestReceived("Lions", sampleRequest(), "")
	assert.NotContains(t, p.Body, "Links:")
}

func TestAdminNewRequestBlankFields(t *testing.T) {
	req := sampleRequest()
	req.Category = ""
	req.RequesterPhone = ""
	p := AdminNewRequest("Lions", "london-oh", req, "")
	assert.Equal(t, "Lions — New Request #12 (Uncategorized)", p.Subject)
	assert.Contains(t, p.Body, "Club Slug: london-oh")
	assert.Contains(t, p.Body, "Requester Phone: —")
}

func TestRequesterDecision(t *testing.T) {
	req := sampleRequest()
	req.DecisionNote = "Approved for June pickup"
	p := RequesterDecision("Lions", req, "APPROVED", "")
	assert.Equal(t, "Lions — Update on Request #12: APPROVED", p.Subject)
	assert.Contains(t, p.Body, "Decision: APPROVED")
	assert.Contains(t, p.Body, "Approved for June pickup")
}

func TestAssignmentNotice(t *testing.T) {
	p := AssignmentNotice("Lions", sampleRequest(), "Jo Admin", "", "")
	assert.Contains(t, p.Subject, "Assignment: Request #12")
	assert.Contains(t, p.Body, "Assigned By: Jo Admin")
	assert.Contains(t, p.Body, "— (no notes yet)")
	assert.Contains(t, p.Body, "Submitted: 06/15/2025 at 6:30 PM (ET)")
}

func TestEventReminder(t *testing.T) {
	end := time.Date(2025, 7, 4, 23, 0, 0, 0, time.UTC)
	ev := &models.Event{
		Title:       "Pancake Breakfast",
		Location:    "Community Hall",
		Description: "Bring the family.",
		StartAt:     time.Date(2025, 7, 4, 21, 0, 0, 0, time.UTC),
		EndAt:       &end,
	}
	p := EventReminder("Lions", ev)
	assert.Equal(t, "Lions — Event Reminder: Pancake Breakfast", p.Subject)
	assert.Contains(t, p.Body, "When: 07/04/2025 at 5:00 PM → 7:00 PM (ET)")
	assert.Contains(t, p.Body, "Location: Community Hall")
	assert.Contains(t, p.Body, "Details:\nBring the family.")
}

func TestInvite(t *testing.T) {
	p := Invite("London Ohio Lions Club", "Pat", "london-oh", "https://app.example.org")
	assert.Equal(t, "You're invited to London Ohio Lions Club", p.Subject)
	assert.Contains(t, p.Body, "Hello Pat,")
	assert.Contains(t, p.Body, "https://app.example.org/static/index.html?club=london-oh")
}

func TestTestEmail(t *testing.T) {
	p := TestEmail("Lions", "Jo")
	assert.Equal(t, "Lions Test Email", p.Subject)
	assert.Contains(t, p.Body, "SMTP is configured correctly")
}
