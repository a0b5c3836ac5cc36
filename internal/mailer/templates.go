package mailer

// Plain-text templates for every notification the app sends. Each
// builder returns a ready-to-queue Message minus the recipient, which
// the caller fills in.

import (
	"fmt"
	"strings"

	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/models"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/timezone"
)

type Parts struct {
	Subject string
	Body    string
}

func clean(s string) string {
	return strings.TrimSpace(s)
}

func line(label, value string) string {
	v := clean(value)
	if v == "" {
		v = "—"
	}
	return label + ": " + v
}

func footer(orgName string) string {
	return "\n\nRegards,\n" + orgName + "\n"
}

func linksBlock(baseURL string) string {
	base := strings.TrimRight(clean(baseURL), "/")
	if base == "" {
		return ""
	}
	return "\n\nLinks:\n" +
		"- Member Login: " + base + "/static/index.html\n" +
		"- Admin Tools:  " + base + "/admin/tools\n"
}

func greeting(name string) string {
	if clean(name) == "" {
		return "Hello there,"
	}
	return "Hello " + clean(name) + ","
}

// RequestReceived confirms intake to the requester.
func RequestReceived(orgName string, req *models.Request, baseURL string) Parts {
	subject := fmt.Sprintf("%s — Request Received (#%d)", orgName, req.ID)
	body := greeting(req.RequesterName) + "\n\n" +
		"This message confirms we received your request. Our team will review it as soon as possible.\n\n" +
		line("Request ID", fmt.Sprint(req.ID)) + "\n" +
		line("Category", req.Category) + "\n" +
		line("Current Status", req.Status) +
		linksBlock(baseURL) +
		footer(orgName)
	return Parts{Subject: subject, Body: body}
}

// AdminNewRequest notifies the club inbox about a new submission.
func AdminNewRequest(orgName, clubSlug string, req *models.Request, baseURL string) Parts {
	category := clean(req.Category)
	if category == "" {
		category = "Uncategorized"
	}
	subject := fmt.Sprintf("%s — New Request #%d (%s)", orgName, req.ID, category)
	body := "A new request was submitted.\n\n" +
		line("Organization", orgName) + "\n" +
		line("Club Slug", clubSlug) + "\n" +
		line("Request ID", fmt.Sprint(req.ID)) + "\n" +
		line("Category", req.Category) + "\n\n" +
		line("Requester Name", req.RequesterName) + "\n" +
		line("Requester Email", req.RequesterEmail) + "\n" +
		line("Requester Phone", req.RequesterPhone) + "\n" +
		line("Requester Address", req.RequesterAddress) + "\n\n" +
		"Description:\n" + orDash(req.Description) +
		linksBlock(baseURL) +
		footer(orgName)
	return Parts{Subject: subject, Body: body}
}

// RequesterDecision tells the requester their request was approved
// or denied.
func RequesterDecision(orgName string, req *models.Request, decision string, baseURL string) Parts {
	subject := fmt.Sprintf("%s — Update on Request #%d: %s", orgName, req.ID, decision)
	body := greeting(req.RequesterName) + "\n\n" +
		"This is an update regarding your request.\n\n" +
		line("Request ID", fmt.Sprint(req.ID)) + "\n" +
		line("Category", req.Category) + "\n" +
		line("Decision", decision) + "\n\n" +
		"Decision Note:\n" + orDash(req.DecisionNote) + "\n" +
		linksBlock(baseURL) +
		footer(orgName)
	return Parts{Subject: subject, Body: body}
}

// RequesterStatus tells the requester about a status change.
func RequesterStatus(orgName string, req *models.Request) Parts {
	subject := fmt.Sprintf("%s — Your request #%d is now %s", orgName, req.ID, req.Status)
	body := greeting(req.RequesterName) + "\n\n" +
		fmt.Sprintf("Your request #%d (%s) is now marked as: %s\n\n", req.ID, req.Category, req.Status) +
		line("Note", req.DecisionNote) +
		footer(orgName)
	return Parts{Subject: subject, Body: body}
}

// AssignmentNotice briefs the member a request was assigned to.
func AssignmentNotice(orgName string, req *models.Request, assignedBy, notesBlock, baseURL string) Parts {
	category := clean(req.Category)
	if category == "" {
		category = "Uncategorized"
	}
	notes := clean(notesBlock)
	if notes == "" {
		notes = "— (no notes yet)"
	}
	subject := fmt.Sprintf("%s — Assignment: Request #%d (%s)", orgName, req.ID, category)
	body := "You have been assigned a request.\n\n" +
		line("Request ID", fmt.Sprint(req.ID)) + "\n" +
		line("Category", req.Category) + "\n" +
		line("Status", req.Status) + "\n" +
		line("Submitted", timezone.FormatEastern(req.CreatedAt)) + "\n" +
		line("Assigned By", assignedBy) + "\n\n" +
		line("Requester Name", req.RequesterName) + "\n" +
		line("Requester Email", req.RequesterEmail) + "\n" +
		line("Requester Phone", req.RequesterPhone) + "\n" +
		line("Requester Address", req.RequesterAddress) + "\n\n" +
		"Description:\n" + orDash(req.Description) + "\n\n" +
		"Notes (latest first):\n" + notes +
		linksBlock(baseURL) +
		footer(orgName)
	return Parts{Subject: subject, Body: body}
}

// EventReminder goes to every active member of the club.
func EventReminder(orgName string, ev *models.Event) Parts {
	subject := fmt.Sprintf("%s — Event Reminder: %s", orgName, ev.Title)
	body := "Hello,\n\n" +
		"This is a reminder about an upcoming " + orgName + " event:\n\n" +
		line("Title", ev.Title) + "\n" +
		line("When", timezone.FormatEasternRange(ev.StartAt, ev.EndAt)) + "\n" +
		line("Location", ev.Location) + "\n\n"
	if clean(ev.Description) != "" {
		body += "Details:\n" + clean(ev.Description) + "\n\n"
	}
	body += "Thank you,\n" + orgName + "\n"
	return Parts{Subject: subject, Body: body}
}

// Invite welcomes a member account created by an admin.
func Invite(clubName, memberName, slug, baseURL string) Parts {
	subject := fmt.Sprintf("You're invited to %s", clubName)
	hello := "Hello,"
	if clean(memberName) != "" {
		hello = "Hello " + clean(memberName) + ","
	}
	base := strings.TrimRight(clean(baseURL), "/")
	body := hello + "\n\n" +
		fmt.Sprintf("You've been invited to join %s.\n\n", clubName) +
		fmt.Sprintf("Login here: %s/static/index.html?club=%s\n\n", base, slug) +
		"If you have trouble logging in, contact your club admin.\n"
	return Parts{Subject: subject, Body: body}
}

// TestEmail verifies SMTP settings end to end.
func TestEmail(orgName, recipientName string) Parts {
	subject := orgName + " Test Email"
	body := greeting(recipientName) + "\n\n" +
		"This is a test email from your club app.\n\n" +
		"If you received this, SMTP is configured correctly.\n\n" +
		"— " + orgName
	return Parts{Subject: subject, Body: body}
}

func orDash(s string) string {
	if clean(s) == "" {
		return "—"
	}
	return clean(s)
}
