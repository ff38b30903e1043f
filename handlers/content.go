package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"socialcatalyst/apperrors"
	"socialcatalyst/middleware"
	"socialcatalyst/models/api"
	"socialcatalyst/services"
)

// ContentHandler serves advocacy content management endpoints.
type ContentHandler struct {
	contentService services.ContentService
	authMiddleware *middleware.AuthMiddleware
}

func NewContentHandler(
	contentService services.ContentService,
	authMiddleware *middleware.AuthMiddleware,
) *ContentHandler {
	return &ContentHandler{
		contentService: contentService,
		authMiddleware: authMiddleware,
	}
}

type CreateContentRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Type        string   `json:"type"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
}

func (h *ContentHandler) HandleCreateContent(w http.ResponseWriter, r *http.Request) {
	employee, ok := requireEmployee(w, r)
	if !ok {
		return
	}

	var req CreateContentRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if req.Title == "" {
		writeDomainError(w, apperrors.New(apperrors.KindInvalidRequest, "title is required"))
		return
	}

	content, err := h.contentService.CreateContent(r.Context(), services.CreateContentParams{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Category:    req.Category,
		Tags:        req.Tags,
		CreatedBy:   employee.ID,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusCreated, api.DomainContentToAPIContent(content))
}

// HandleListContent lists content; non-admin callers only see approved items.
func (h *ContentHandler) HandleListContent(w http.ResponseWriter, r *http.Request) {
	employee, ok := requireEmployee(w, r)
	if !ok {
		return
	}

	approvedOnly := !employee.IsAdmin()
	contents, err := h.contentService.ListContent(r.Context(), approvedOnly)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, api.DomainContentsToAPIContents(contents))
}

func (h *ContentHandler) HandleGetContent(w http.ResponseWriter, r *http.Request) {
	employee, ok := requireEmployee(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)

	maybeContent, err := h.contentService.GetContentByID(r.Context(), vars["id"])
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if !maybeContent.IsPresent() {
		writeDomainError(w, apperrors.New(apperrors.KindContentNotFound, "content not found"))
		return
	}
	content := maybeContent.MustGet()

	if !content.IsApproved && !employee.IsAdmin() && content.CreatedBy != employee.ID {
		writeDomainError(w, apperrors.New(apperrors.KindContentNotFound, "content not found"))
		return
	}

	writeJSONResponse(w, http.StatusOK, api.DomainContentToAPIContent(content))
}

func (h *ContentHandler) HandleApproveContent(w http.ResponseWriter, r *http.Request) {
	admin, ok := requireEmployee(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)
	contentID := vars["id"]

	if err := h.contentService.ApproveContent(r.Context(), contentID, admin.ID); err != nil {
		writeDomainError(w, err)
		return
	}

	log.Printf("✅ Content %s approved by admin %s", contentID, admin.ID)
	writeJSONResponse(w, http.StatusOK, map[string]string{"status": "approved"})
}

func (h *ContentHandler) SetupEndpoints(router *mux.Router) {
	log.Printf("🚀 Registering content endpoints")

	router.HandleFunc("/content", h.authMiddleware.WithAuth(h.HandleListContent)).Methods("GET")
	log.Printf("✅ GET /content endpoint registered")

	router.HandleFunc("/content", h.authMiddleware.WithAuth(h.HandleCreateContent)).Methods("POST")
	log.Printf("✅ POST /content endpoint registered")

	router.HandleFunc("/content/{id}", h.authMiddleware.WithAuth(h.HandleGetContent)).Methods("GET")
	log.Printf("✅ GET /content/{id} endpoint registered")

	router.HandleFunc("/content/{id}/approve", h.authMiddleware.WithAdminAuth(h.HandleApproveContent)).
		Methods("POST")
	log.Printf("✅ POST /content/{id}/approve endpoint registered")
}
