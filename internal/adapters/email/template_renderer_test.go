package email

import (
	"testing"
	"time"

	"confsched/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateRenderer_ScheduleUpdate(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	data := &domain.ScheduleUpdateEmailData{
		SpeakerName:  "Ada Lovelace",
		EventName:    "GopherConf",
		ReleaseLabel: "v2",
		Summary:      "Room changes after venue update",
		Facts: []domain.ChangeFact{
			{ItemID: "item-1", Title: "Generics in Practice", Kind: domain.ChangeAdded, RoomName: "Main Hall", Start: &start},
			{ItemID: "item-2", Title: "Profiling Go Services", Kind: domain.ChangeMoved},
		},
	}

	subject, htmlBody, textBody, err := NewTemplateRenderer().Render("schedule_update", data)
	require.NoError(t, err)

	assert.Equal(t, "GopherConf: schedule update (v2)", subject)

	for _, body := range []string{htmlBody, textBody} {
		assert.Contains(t, body, "Ada Lovelace")
		assert.Contains(t, body, "Generics in Practice")
		assert.Contains(t, body, "scheduled in Main Hall")
		assert.Contains(t, body, "Sun, 1 Jun 2025 10:00 UTC")
		assert.Contains(t, body, "Profiling Go Services")
		assert.Contains(t, body, "Release notes: Room changes after venue update")
	}
	assert.Contains(t, htmlBody, "<strong>GopherConf</strong>")
}

func TestTemplateRenderer_OmitsEmptySummary(t *testing.T) {
	data := &domain.ScheduleUpdateEmailData{
		SpeakerName:  "Grace Hopper",
		EventName:    "GopherConf",
		ReleaseLabel: "v1",
		Facts:        []domain.ChangeFact{{Title: "Keynote", Kind: domain.ChangeMoved}},
	}

	_, htmlBody, textBody, err := NewTemplateRenderer().Render("schedule_update", data)
	require.NoError(t, err)
	assert.NotContains(t, htmlBody, "Release notes")
	assert.NotContains(t, textBody, "Release notes")
	assert.Contains(t, textBody, "Keynote: moved")
}

func TestTemplateRenderer_UnknownTemplate(t *testing.T) {
	_, _, _, err := NewTemplateRenderer().Render("no_such_template", nil)
	require.Error(t, err)
}
