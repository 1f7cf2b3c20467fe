package domain

import (
	"context"
	"time"
)

// ChangeFact is the minimal set of facts a speaker needs about one affected
// item: what it is, what happened, and where/when it now takes place.
type ChangeFact struct {
	ItemID   string     `json:"item_id"`
	Title    string     `json:"title"`
	Kind     ChangeKind `json:"kind"`
	RoomName string     `json:"room_name,omitempty"`
	Start    *time.Time `json:"start,omitempty"`
}

// NotificationPlan maps each affected speaker to the consolidated facts for
// one release. Each speaker appears once, however many of their sessions
// changed. The plan is handed to the mail collaborator; this core never sends.
type NotificationPlan map[string][]ChangeFact

// PlannerService turns a schedule diff into a notification plan.
type PlannerService interface {
	// Plan filters the diff to Added/Moved entries whose item is publicly
	// visible in the new version and groups the resulting facts by speaker.
	// Cancelled-but-now-invisible items are intentionally excluded: a
	// withdrawn talk does not need a "your talk moved" email.
	Plan(ctx context.Context, changes []ChangeEntry, newVersionID string) (NotificationPlan, error)
}

// Speaker is the read model of a speaker as needed for notifications.
type Speaker struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SpeakerDirectory resolves speaker ids to contact details. Speaker profile
// data is owned by the surrounding application.
type SpeakerDirectory interface {
	GetSpeaker(ctx context.Context, id string) (*Speaker, error)
}

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// ScheduleUpdateEmailData holds data for the schedule update email sent to one speaker.
type ScheduleUpdateEmailData struct {
	SpeakerName  string
	EventName    string
	ReleaseLabel string
	Summary      string
	Facts        []ChangeFact
}

// ScheduleMailService renders and queues one consolidated schedule-update
// message per affected speaker. It never marks anything "sent"; delivery is
// the mail transport's concern.
type ScheduleMailService interface {
	SendScheduleUpdate(ctx context.Context, event *Event, version *ScheduleVersion, plan NotificationPlan) error
}
