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

// EmployeesHandler serves employee directory endpoints.
type EmployeesHandler struct {
	employeesService services.EmployeesService
	authMiddleware   *middleware.AuthMiddleware
}

func NewEmployeesHandler(
	employeesService services.EmployeesService,
	authMiddleware *middleware.AuthMiddleware,
) *EmployeesHandler {
	return &EmployeesHandler{
		employeesService: employeesService,
		authMiddleware:   authMiddleware,
	}
}

func (h *EmployeesHandler) HandleListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.employeesService.ListEmployees(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, api.DomainEmployeesToAPIEmployees(employees))
}

func (h *EmployeesHandler) HandleGetEmployee(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	targetEmployeeID := vars["id"]

	if _, ok := requireSelfOrAdmin(w, r, targetEmployeeID); !ok {
		return
	}

	maybeEmployee, err := h.employeesService.GetEmployeeByID(r.Context(), targetEmployeeID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if !maybeEmployee.IsPresent() {
		writeDomainError(w, apperrors.New(apperrors.KindNotFound, "employee not found"))
		return
	}

	writeJSONResponse(w, http.StatusOK, api.DomainEmployeeToAPIEmployee(maybeEmployee.MustGet()))
}

func (h *EmployeesHandler) SetupEndpoints(router *mux.Router) {
	log.Printf("🚀 Registering employee endpoints")

	router.HandleFunc("/employees", h.authMiddleware.WithAdminAuth(h.HandleListEmployees)).Methods("GET")
	log.Printf("✅ GET /employees endpoint registered")

	router.HandleFunc("/employees/{id}", h.authMiddleware.WithAuth(h.HandleGetEmployee)).Methods("GET")
	log.Printf("✅ GET /employees/{id} endpoint registered")
}
