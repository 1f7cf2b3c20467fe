package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"

	"confsched/internal/domain"
)

type scheduleMailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	speakers domain.SpeakerDirectory
}

// NewScheduleMailService returns a ScheduleMailService that renders one
// consolidated "schedule update" draft per affected speaker and hands it to
// the Mailer. Delivery and sent-tracking are the mail transport's concern.
func NewScheduleMailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, speakers domain.SpeakerDirectory) domain.ScheduleMailService {
	return &scheduleMailService{mailer: mailer, renderer: renderer, speakers: speakers}
}

func (s *scheduleMailService) SendScheduleUpdate(ctx context.Context, event *domain.Event, version *domain.ScheduleVersion, plan domain.NotificationPlan) error {
	if event == nil || version == nil {
		return fmt.Errorf("schedule update data is incomplete")
	}
	label := ""
	if version.ReleaseLabel != nil {
		label = *version.ReleaseLabel
	}

	speakerIDs := make([]string, 0, len(plan))
	for id := range plan {
		speakerIDs = append(speakerIDs, id)
	}
	sort.Strings(speakerIDs)

	for _, speakerID := range speakerIDs {
		speaker, err := s.speakers.GetSpeaker(ctx, speakerID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				log.Printf("[EMAIL] Skipping schedule update for unknown speaker %s", speakerID)
				continue
			}
			return fmt.Errorf("get speaker %s: %w", speakerID, err)
		}
		data := &domain.ScheduleUpdateEmailData{
			SpeakerName:  speaker.Name,
			EventName:    event.Name,
			ReleaseLabel: label,
			Summary:      version.ChangeSummary,
			Facts:        plan[speakerID],
		}
		subject, htmlBody, textBody, err := s.renderer.Render("schedule_update", data)
		if err != nil {
			return fmt.Errorf("failed to render schedule_update template: %w", err)
		}
		if err := s.mailer.Send(speaker.Email, subject, htmlBody, textBody); err != nil {
			return fmt.Errorf("failed to send schedule update email: %w", err)
		}
		log.Printf("[EMAIL] Schedule update queued for %s", speaker.Email)
	}
	return nil
}
