package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"socialcatalyst/apperrors"
	"socialcatalyst/middleware"
	"socialcatalyst/models/api"
	linkedinusecase "socialcatalyst/usecases/linkedin"
)

// LinkedInHandler serves the OAuth connection lifecycle and sharing endpoints.
type LinkedInHandler struct {
	useCase        *linkedinusecase.LinkedInUseCase
	authMiddleware *middleware.AuthMiddleware
}

func NewLinkedInHandler(
	useCase *linkedinusecase.LinkedInUseCase,
	authMiddleware *middleware.AuthMiddleware,
) *LinkedInHandler {
	return &LinkedInHandler{
		useCase:        useCase,
		authMiddleware: authMiddleware,
	}
}

type ShareRequest struct {
	ContentID     string `json:"content_id"`
	CustomMessage string `json:"custom_message"`
}

// HandleAuthorize issues the authorization URL for an employee. The caller
// must be the employee themself or an admin.
func (h *LinkedInHandler) HandleAuthorize(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	targetEmployeeID := vars["employeeID"]

	if _, ok := requireSelfOrAdmin(w, r, targetEmployeeID); !ok {
		return
	}

	intent, err := h.useCase.BeginAuthorization(r.Context(), targetEmployeeID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, intent)
}

// HandleCallback receives the provider redirect. It is unauthenticated by
// OAuth necessity; the signed state token identifies the employee.
func (h *LinkedInHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	log.Printf("🔄 LinkedIn OAuth callback received from %s", r.RemoteAddr)

	query := r.URL.Query()
	if providerError := query.Get("error"); providerError != "" {
		log.Printf("❌ LinkedIn callback carries provider error: %s (%s)",
			providerError, query.Get("error_description"))
		writeDomainError(w, apperrors.Newf(
			apperrors.KindInvalidRequest, "authorization was denied: %s", providerError))
		return
	}

	result, err := h.useCase.CompleteAuthorization(r.Context(), query.Get("code"), query.Get("state"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, result)
}

func (h *LinkedInHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	employee, ok := requireEmployee(w, r)
	if !ok {
		return
	}

	conn, err := h.useCase.GetStatus(r.Context(), employee.ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, api.DomainConnectionToAPIStatus(conn))
}

func (h *LinkedInHandler) HandleShare(w http.ResponseWriter, r *http.Request) {
	employee, ok := requireEmployee(w, r)
	if !ok {
		return
	}

	var req ShareRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if req.ContentID == "" {
		writeDomainError(w, apperrors.New(apperrors.KindInvalidRequest, "content_id is required"))
		return
	}

	result, err := h.useCase.ShareContent(r.Context(), employee.ID, req.ContentID, req.CustomMessage)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusCreated, result)
}

func (h *LinkedInHandler) HandleDisconnect(w http.ResponseWriter, r *http.Request) {
	employee, ok := requireEmployee(w, r)
	if !ok {
		return
	}

	if err := h.useCase.Disconnect(r.Context(), employee.ID); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, map[string]string{"status": "disconnected"})
}

func (h *LinkedInHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	employee, ok := requireEmployee(w, r)
	if !ok {
		return
	}

	records, err := h.useCase.GetShareHistory(r.Context(), employee.ID, 0)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, api.DomainAdvocacyRecordsToAPIAdvocacyRecords(records))
}

// HandleInspectConnection is the admin view of another employee's connection
// health.
func (h *LinkedInHandler) HandleInspectConnection(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	report, err := h.useCase.InspectConnection(r.Context(), vars["employeeID"])
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, report)
}

// HandleForceDisconnect clears another employee's connection. Admin only.
func (h *LinkedInHandler) HandleForceDisconnect(w http.ResponseWriter, r *http.Request) {
	admin, ok := requireEmployee(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)

	if err := h.useCase.ForceDisconnect(r.Context(), admin.ID, vars["employeeID"]); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, map[string]string{"status": "disconnected"})
}

func (h *LinkedInHandler) SetupEndpoints(router *mux.Router) {
	log.Printf("🚀 Registering LinkedIn endpoints")

	router.HandleFunc("/linkedin/oauth/authorize/{employeeID}", h.authMiddleware.WithAuth(h.HandleAuthorize)).
		Methods("GET")
	log.Printf("✅ GET /linkedin/oauth/authorize/{employeeID} endpoint registered")

	// Open endpoint: the provider redirects the browser here.
	router.HandleFunc("/auth/linkedin/callback", h.HandleCallback).Methods("GET")
	log.Printf("✅ GET /auth/linkedin/callback endpoint registered")

	router.HandleFunc("/linkedin/status", h.authMiddleware.WithAuth(h.HandleStatus)).Methods("GET")
	log.Printf("✅ GET /linkedin/status endpoint registered")

	router.HandleFunc("/linkedin/share", h.authMiddleware.WithAuth(h.HandleShare)).Methods("POST")
	log.Printf("✅ POST /linkedin/share endpoint registered")

	router.HandleFunc("/linkedin/disconnect", h.authMiddleware.WithAuth(h.HandleDisconnect)).Methods("POST")
	log.Printf("✅ POST /linkedin/disconnect endpoint registered")

	router.HandleFunc("/linkedin/history", h.authMiddleware.WithAuth(h.HandleHistory)).Methods("GET")
	log.Printf("✅ GET /linkedin/history endpoint registered")

	router.HandleFunc("/linkedin/connections/{employeeID}",
		h.authMiddleware.WithAdminAuth(h.HandleInspectConnection)).Methods("GET")
	log.Printf("✅ GET /linkedin/connections/{employeeID} endpoint registered")

	router.HandleFunc("/linkedin/connections/{employeeID}/force-disconnect",
		h.authMiddleware.WithAdminAuth(h.HandleForceDisconnect)).Methods("POST")
	log.Printf("✅ POST /linkedin/connections/{employeeID}/force-disconnect endpoint registered")
}
