package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"socialcatalyst/middleware"
	"socialcatalyst/services"
)

const defaultLeaderboardLimit = 10

// AnalyticsHandler serves aggregate reporting endpoints.
type AnalyticsHandler struct {
	analyticsService services.AnalyticsService
	authMiddleware   *middleware.AuthMiddleware
}

func NewAnalyticsHandler(
	analyticsService services.AnalyticsService,
	authMiddleware *middleware.AuthMiddleware,
) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		authMiddleware:   authMiddleware,
	}
}

func (h *AnalyticsHandler) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := defaultLeaderboardLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	entries, err := h.analyticsService.GetLeaderboard(r.Context(), limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, entries)
}

func (h *AnalyticsHandler) HandleContentPerformance(w http.ResponseWriter, r *http.Request) {
	report, err := h.analyticsService.GetContentPerformance(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, report)
}

func (h *AnalyticsHandler) SetupEndpoints(router *mux.Router) {
	log.Printf("🚀 Registering analytics endpoints")

	router.HandleFunc("/analytics/leaderboard", h.authMiddleware.WithAuth(h.HandleLeaderboard)).Methods("GET")
	log.Printf("✅ GET /analytics/leaderboard endpoint registered")

	router.HandleFunc("/analytics/content", h.authMiddleware.WithAdminAuth(h.HandleContentPerformance)).
		Methods("GET")
	log.Printf("✅ GET /analytics/content endpoint registered")
}
