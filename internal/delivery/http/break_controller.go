package http

import (
	"log/slog"
	"net/http"

	"confsched/internal/delivery/http/helpers"
	"confsched/internal/domain"
)

type BreakController struct {
	Logger *slog.Logger
	Breaks domain.BreakService
}

func NewBreakController(logger *slog.Logger, breaks domain.BreakService) *BreakController {
	return &BreakController{
		Logger: logger,
		Breaks: breaks,
	}
}

// CreateBreakRequest is the request body for POST /events/{eventID}/breaks.
type CreateBreakRequest struct {
	Title           domain.LocalizedString `json:"title"`
	Description     domain.LocalizedString `json:"description"`
	DurationMinutes int                    `json:"duration_minutes"`
}

// Validate implements Validator.
func (c CreateBreakRequest) Validate() []string {
	var errs []string
	if c.Title.In("en") == "" {
		errs = append(errs, "title is required")
	}
	if c.DurationMinutes <= 0 {
		errs = append(errs, "duration_minutes must be positive")
	}
	return errs
}

// CreateBreak godoc
// @Summary Create a break
// @Description Creates a schedulable break (localized title, optional description, duration) for the event.
// @Tags breaks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param break body CreateBreakRequest true "Break data"
// @Success 201 {object} helpers.APIResponse "data contains the break"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /events/{eventID}/breaks [post]
func (c *BreakController) CreateBreak(w http.ResponseWriter, r *http.Request) {
	var req CreateBreakRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	b, err := c.Breaks.CreateBreak(r.Context(), r.PathValue("eventID"), req.Title, req.Description, req.DurationMinutes)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, b)
}

// UpdateBreakRequest is the request body for PUT /breaks/{breakID}.
type UpdateBreakRequest struct {
	Title           domain.LocalizedString `json:"title"`
	Description     domain.LocalizedString `json:"description"`
	DurationMinutes int                    `json:"duration_minutes"`
}

// Validate implements Validator.
func (c UpdateBreakRequest) Validate() []string {
	var errs []string
	if c.Title.In("en") == "" {
		errs = append(errs, "title is required")
	}
	if c.DurationMinutes <= 0 {
		errs = append(errs, "duration_minutes must be positive")
	}
	return errs
}

// UpdateBreak godoc
// @Summary Update a break
// @Description Updates a break's title, description, and duration. Placements referencing the break keep their own duration until re-placed.
// @Tags breaks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param breakID path string true "Break ID"
// @Param break body UpdateBreakRequest true "Break data"
// @Success 200 {object} helpers.APIResponse "data contains the break"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /breaks/{breakID} [put]
func (c *BreakController) UpdateBreak(w http.ResponseWriter, r *http.Request) {
	var req UpdateBreakRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	b := &domain.Break{
		ID:              r.PathValue("breakID"),
		Title:           req.Title,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
	}
	if err := c.Breaks.UpdateBreak(r.Context(), b); err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, b)
}

// CopyBreakRequest is the request body for POST /versions/{versionID}/breaks/{breakID}/copy.
type CopyBreakRequest struct {
	RoomID string `json:"room_id"`
}

// Validate implements Validator.
func (c CopyBreakRequest) Validate() []string {
	var errs []string
	if c.RoomID == "" {
		errs = append(errs, "room_id is required")
	}
	return errs
}

// CopyBreak godoc
// @Summary Copy a break into another room
// @Description Duplicates a placed break as an independent item and places the copy in the given room at the same start time within the draft version.
// @Tags breaks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param versionID path string true "Draft version ID"
// @Param breakID path string true "Break ID"
// @Param copy body CopyBreakRequest true "Target room"
// @Success 201 {object} helpers.APIResponse "data contains the break copy"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (break is not placed in this version)"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (version is released)"
// @Router /versions/{versionID}/breaks/{breakID}/copy [post]
func (c *BreakController) CopyBreak(w http.ResponseWriter, r *http.Request) {
	var req CopyBreakRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	cp, err := c.Breaks.CopyBreak(r.Context(), r.PathValue("versionID"), r.PathValue("breakID"), req.RoomID)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, cp)
}
