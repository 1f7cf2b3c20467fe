package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"confsched/internal/delivery/http/middleware"
	"confsched/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(logger *slog.Logger, verifier domain.TokenVerifier, scheduleController *ScheduleController, breakController *BreakController) *http.ServeMux {
	mux := http.NewServeMux()
	requireAuth := middleware.RequireAuth(verifier, logger)

	// Organizer API
	mux.HandleFunc("POST /events", requireAuth(scheduleController.CreateEvent))
	mux.HandleFunc("GET /events/{eventID}/draft", requireAuth(scheduleController.GetDraft))
	mux.HandleFunc("GET /events/{eventID}/versions", requireAuth(scheduleController.ListVersions))
	mux.HandleFunc("PUT /versions/{versionID}/placements", requireAuth(scheduleController.PlaceSlot))
	mux.HandleFunc("GET /versions/{versionID}/placements", requireAuth(scheduleController.ListPlacements))
	mux.HandleFunc("DELETE /versions/{versionID}/placements/{itemID}", requireAuth(scheduleController.UnplaceSlot))
	mux.HandleFunc("GET /versions/{versionID}/conflicts", requireAuth(scheduleController.DetectConflicts))
	mux.HandleFunc("POST /versions/{versionID}/release", requireAuth(scheduleController.Release))
	mux.HandleFunc("POST /versions/{versionID}/reset", requireAuth(scheduleController.Reset))
	mux.HandleFunc("GET /versions/{versionID}/diff", requireAuth(scheduleController.Diff))

	// Breaks
	mux.HandleFunc("POST /events/{eventID}/breaks", requireAuth(breakController.CreateBreak))
	mux.HandleFunc("PUT /breaks/{breakID}", requireAuth(breakController.UpdateBreak))
	mux.HandleFunc("POST /versions/{versionID}/breaks/{breakID}/copy", requireAuth(breakController.CopyBreak))

	// Public changelog
	mux.HandleFunc("GET /events/{eventID}/changelog", scheduleController.Changelog)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
