package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"socialcatalyst/middleware"
	"socialcatalyst/models/api"
	linkedinusecase "socialcatalyst/usecases/linkedin"
)

// AdvocacyHandler serves share-record engagement endpoints.
type AdvocacyHandler struct {
	useCase        *linkedinusecase.LinkedInUseCase
	authMiddleware *middleware.AuthMiddleware
}

func NewAdvocacyHandler(
	useCase *linkedinusecase.LinkedInUseCase,
	authMiddleware *middleware.AuthMiddleware,
) *AdvocacyHandler {
	return &AdvocacyHandler{
		useCase:        useCase,
		authMiddleware: authMiddleware,
	}
}

// HandleUpdateEngagement syncs platform-reported engagement counters onto a
// share record. Owners update their own records; admins update any.
func (h *AdvocacyHandler) HandleUpdateEngagement(w http.ResponseWriter, r *http.Request) {
	employee, ok := requireEmployee(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)

	var update linkedinusecase.EngagementUpdate
	if !decodeJSONBody(w, r, &update) {
		return
	}

	record, err := h.useCase.UpdateShareEngagement(r.Context(), employee, vars["id"], update)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, api.DomainAdvocacyRecordToAPIAdvocacyRecord(record))
}

func (h *AdvocacyHandler) SetupEndpoints(router *mux.Router) {
	log.Printf("🚀 Registering advocacy endpoints")

	router.HandleFunc("/advocacy/{id}/engagement", h.authMiddleware.WithAuth(h.HandleUpdateEngagement)).
		Methods("PUT")
	log.Printf("✅ PUT /advocacy/{id}/engagement endpoint registered")
}
