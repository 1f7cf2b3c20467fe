package http

import (
	"log/slog"
	"net/http"
	"time"

	"confsched/internal/delivery/http/helpers"
	"confsched/internal/domain"
)

type ScheduleController struct {
	Logger    *slog.Logger
	Events    domain.EventService
	Slots     domain.SlotService
	Conflicts domain.ConflictService
	Snapshots domain.SnapshotService
	Diffs     domain.DiffService
}

func NewScheduleController(logger *slog.Logger, events domain.EventService, slots domain.SlotService, conflicts domain.ConflictService, snapshots domain.SnapshotService, diffs domain.DiffService) *ScheduleController {
	return &ScheduleController{
		Logger:    logger,
		Events:    events,
		Slots:     slots,
		Conflicts: conflicts,
		Snapshots: snapshots,
		Diffs:     diffs,
	}
}

// CreateEventRequest is the request body for POST /events.
type CreateEventRequest struct {
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Timezone  string `json:"timezone"`
	UseTracks bool   `json:"use_tracks"`
}

// Validate implements Validator. Returns error messages for required fields.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if c.Name == "" {
		errs = append(errs, "name is required")
	}
	if c.Slug == "" {
		errs = append(errs, "slug is required")
	}
	return errs
}

// CreateEventResponse is the response body for POST /events: the event plus
// its initial draft version.
type CreateEventResponse struct {
	Event *domain.Event           `json:"event"`
	Draft *domain.ScheduleVersion `json:"draft"`
}

// CreateEvent godoc
// @Summary Create a new event
// @Description Create a conference event together with its initial empty draft schedule version.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} helpers.APIResponse "data contains the event and its draft version"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *ScheduleController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	now := time.Now()
	event := domain.NewEvent(req.Name, req.Slug, req.Timezone, req.UseTracks, now, now)
	draft, err := c.Events.CreateEvent(r.Context(), event)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, CreateEventResponse{Event: event, Draft: draft})
}

// GetDraft godoc
// @Summary Get the current draft version
// @Description Returns the single mutable draft schedule version of the event.
// @Tags versions
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/draft [get]
func (c *ScheduleController) GetDraft(w http.ResponseWriter, r *http.Request) {
	draft, err := c.Events.GetDraft(r.Context(), r.PathValue("eventID"))
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, draft)
}

// ListVersions godoc
// @Summary List released versions
// @Description Returns all released schedule versions of the event, ordered by release time ascending.
// @Tags versions
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse
// @Router /events/{eventID}/versions [get]
func (c *ScheduleController) ListVersions(w http.ResponseWriter, r *http.Request) {
	versions, err := c.Events.ListReleased(r.Context(), r.PathValue("eventID"))
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, versions)
}

// PlaceSlotRequest is the request body for PUT /versions/{versionID}/placements.
type PlaceSlotRequest struct {
	ItemID          string    `json:"item_id"`
	RoomID          string    `json:"room_id"`
	Start           time.Time `json:"start"`
	DurationMinutes int       `json:"duration_minutes"`
}

// Validate implements Validator.
func (p PlaceSlotRequest) Validate() []string {
	var errs []string
	if p.ItemID == "" {
		errs = append(errs, "item_id is required")
	}
	if p.RoomID == "" {
		errs = append(errs, "room_id is required")
	}
	if p.Start.IsZero() {
		errs = append(errs, "start is required")
	}
	return errs
}

// PlaceSlot godoc
// @Summary Place an item into a slot
// @Description Places a session or break into (room, start, duration) on the draft version. Re-placing an already placed item overwrites its slot. No conflict checking happens here.
// @Tags placements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param versionID path string true "Draft version ID"
// @Param placement body PlaceSlotRequest true "Placement data"
// @Success 200 {object} helpers.APIResponse "data contains the placement"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (invalid duration)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (version is released)"
// @Router /versions/{versionID}/placements [put]
func (c *ScheduleController) PlaceSlot(w http.ResponseWriter, r *http.Request) {
	var req PlaceSlotRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	placement, err := c.Slots.Place(r.Context(), r.PathValue("versionID"), req.ItemID, req.RoomID, req.Start, req.DurationMinutes)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, placement)
}

// UnplaceSlot godoc
// @Summary Remove an item from the schedule
// @Description Removes the item's placement from the draft version.
// @Tags placements
// @Produce json
// @Security BearerAuth
// @Param versionID path string true "Draft version ID"
// @Param itemID path string true "Item ID"
// @Success 204 "no content"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (version is released)"
// @Router /versions/{versionID}/placements/{itemID} [delete]
func (c *ScheduleController) UnplaceSlot(w http.ResponseWriter, r *http.Request) {
	if err := c.Slots.Unplace(r.Context(), r.PathValue("versionID"), r.PathValue("itemID")); err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListPlacements godoc
// @Summary List placements of a version
// @Description Returns the version's placements. With ?public=true, only placements of currently publicly visible items are returned.
// @Tags placements
// @Produce json
// @Security BearerAuth
// @Param versionID path string true "Version ID"
// @Param public query bool false "Filter to publicly visible items"
// @Success 200 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /versions/{versionID}/placements [get]
func (c *ScheduleController) ListPlacements(w http.ResponseWriter, r *http.Request) {
	versionID := r.PathValue("versionID")
	var placements []*domain.SlotPlacement
	var err error
	if r.URL.Query().Get("public") == "true" {
		placements, err = c.Slots.PublicPlacements(r.Context(), versionID)
	} else {
		placements, err = c.Slots.ListPlacements(r.Context(), versionID)
	}
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, placements)
}

// DetectConflicts godoc
// @Summary Detect scheduling conflicts
// @Description Computes the conflict report for a version. Findings are advisory and never block a release by themselves.
// @Tags conflicts
// @Produce json
// @Security BearerAuth
// @Param versionID path string true "Version ID"
// @Success 200 {object} helpers.APIResponse "data contains the conflict report"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /versions/{versionID}/conflicts [get]
func (c *ScheduleController) DetectConflicts(w http.ResponseWriter, r *http.Request) {
	report, err := c.Conflicts.Detect(r.Context(), r.PathValue("versionID"))
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, report)
}

// ReleaseRequest is the request body for POST /versions/{versionID}/release.
type ReleaseRequest struct {
	Label   string `json:"label"`
	Summary string `json:"summary"`
	Notify  bool   `json:"notify"`
}

// Validate implements Validator.
func (rr ReleaseRequest) Validate() []string {
	var errs []string
	if rr.Label == "" {
		errs = append(errs, "label is required")
	}
	return errs
}

// Release godoc
// @Summary Release the draft
// @Description Freezes the draft into an immutable released version and starts a fresh draft copied from it. With notify=true, affected speakers are sent a consolidated schedule update.
// @Tags versions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param versionID path string true "Draft version ID"
// @Param release body ReleaseRequest true "Release data"
// @Success 201 {object} helpers.APIResponse "data contains the released version"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (duplicate label or concurrent release)"
// @Router /versions/{versionID}/release [post]
func (c *ScheduleController) Release(w http.ResponseWriter, r *http.Request) {
	var req ReleaseRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	released, err := c.Snapshots.Release(r.Context(), r.PathValue("versionID"), req.Label, req.Summary, req.Notify)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, released)
}

// ResetRequest is the request body for POST /versions/{versionID}/reset.
type ResetRequest struct {
	TargetVersionID string `json:"target_version_id"`
}

// Validate implements Validator.
func (rr ResetRequest) Validate() []string {
	var errs []string
	if rr.TargetVersionID == "" {
		errs = append(errs, "target_version_id is required")
	}
	return errs
}

// Reset godoc
// @Summary Reset the draft to a released version
// @Description Replaces all draft placements with a copy of the target released version's placements. Unreleased draft edits are lost; the UI must warn before calling this.
// @Tags versions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param versionID path string true "Draft version ID"
// @Param reset body ResetRequest true "Reset target"
// @Success 204 "no content"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (target is not a released version of this event)"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (concurrent release)"
// @Router /versions/{versionID}/reset [post]
func (c *ScheduleController) Reset(w http.ResponseWriter, r *http.Request) {
	var req ResetRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Snapshots.Reset(r.Context(), r.PathValue("versionID"), req.TargetVersionID); err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Diff godoc
// @Summary Diff two versions
// @Description Returns the added/moved/cancelled entries between the version given by ?old (optional) and the path version. The raw diff is not filtered by visibility.
// @Tags versions
// @Produce json
// @Security BearerAuth
// @Param versionID path string true "New version ID"
// @Param old query string false "Old version ID (omit for the first release)"
// @Success 200 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /versions/{versionID}/diff [get]
func (c *ScheduleController) Diff(w http.ResponseWriter, r *http.Request) {
	changes, err := c.Diffs.Diff(r.Context(), r.URL.Query().Get("old"), r.PathValue("versionID"))
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	if changes == nil {
		changes = []domain.ChangeEntry{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, changes)
}

// Changelog godoc
// @Summary Public schedule changelog
// @Description Returns all released versions of the event ordered by release time, each with its visibility-filtered diff against the previous release. Public, no authentication.
// @Tags public
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse
// @Router /events/{eventID}/changelog [get]
func (c *ScheduleController) Changelog(w http.ResponseWriter, r *http.Request) {
	entries, err := c.Diffs.Changelog(r.Context(), r.PathValue("eventID"))
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, entries)
}
