package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"

	"socialcatalyst/apperrors"
	"socialcatalyst/middleware"
	"socialcatalyst/models"
	"socialcatalyst/models/api"
	"socialcatalyst/services"
)

// AuthHandler serves employee registration, login and profile endpoints.
type AuthHandler struct {
	employeesService services.EmployeesService
	authMiddleware   *middleware.AuthMiddleware
}

func NewAuthHandler(
	employeesService services.EmployeesService,
	authMiddleware *middleware.AuthMiddleware,
) *AuthHandler {
	return &AuthHandler{
		employeesService: employeesService,
		authMiddleware:   authMiddleware,
	}
}

type RegisterRequest struct {
	EmployeeCode string `json:"employee_code"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Department   string `json:"department"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token    string             `json:"token"`
	Employee *api.EmployeeModel `json:"employee"`
}

type UpdateProfileRequest struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Department string `json:"department"`
}

func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	log.Printf("👤 Employee registration request received from %s", r.RemoteAddr)

	var req RegisterRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if req.EmployeeCode == "" || req.Email == "" || req.Password == "" {
		writeDomainError(w, apperrors.New(
			apperrors.KindInvalidRequest, "employee_code, email and password are required"))
		return
	}
	if len(req.Password) < 8 {
		writeDomainError(w, apperrors.New(
			apperrors.KindInvalidRequest, "password must be at least 8 characters"))
		return
	}

	maybeExisting, err := h.employeesService.GetEmployeeByEmailOrCode(r.Context(), req.Email, req.EmployeeCode)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if maybeExisting.IsPresent() {
		writeDomainError(w, apperrors.New(
			apperrors.KindInvalidRequest, "an employee with this email or code already exists"))
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	employee, err := h.employeesService.CreateEmployee(r.Context(), services.CreateEmployeeParams{
		EmployeeCode: req.EmployeeCode,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: string(passwordHash),
		Role:         models.EmployeeRoleEmployee,
		Department:   req.Department,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	token, err := h.authMiddleware.IssueToken(employee)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	log.Printf("✅ Registered employee: %s", employee.ID)
	writeJSONResponse(w, http.StatusCreated, AuthResponse{
		Token:    token,
		Employee: api.DomainEmployeeToAPIEmployee(employee),
	})
}

func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	log.Printf("🔐 Login request received from %s", r.RemoteAddr)

	var req LoginRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		writeDomainError(w, apperrors.New(apperrors.KindInvalidRequest, "email and password are required"))
		return
	}

	maybeEmployee, err := h.employeesService.GetEmployeeByEmail(r.Context(), req.Email)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if !maybeEmployee.IsPresent() {
		writeDomainError(w, apperrors.New(apperrors.KindUnauthorized, "invalid credentials"))
		return
	}
	employee := maybeEmployee.MustGet()

	if err := bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(req.Password)); err != nil {
		log.Printf("❌ Password mismatch for employee: %s", employee.ID)
		writeDomainError(w, apperrors.New(apperrors.KindUnauthorized, "invalid credentials"))
		return
	}

	token, err := h.authMiddleware.IssueToken(employee)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	log.Printf("✅ Employee logged in: %s", employee.ID)
	writeJSONResponse(w, http.StatusOK, AuthResponse{
		Token:    token,
		Employee: api.DomainEmployeeToAPIEmployee(employee),
	})
}

func (h *AuthHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	employee, ok := requireEmployee(w, r)
	if !ok {
		return
	}

	writeJSONResponse(w, http.StatusOK, api.DomainEmployeeToAPIEmployee(employee))
}

func (h *AuthHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	employee, ok := requireEmployee(w, r)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if req.FirstName == "" || req.LastName == "" {
		writeDomainError(w, apperrors.New(apperrors.KindInvalidRequest, "first_name and last_name are required"))
		return
	}

	if err := h.employeesService.UpdateEmployeeProfile(
		r.Context(), employee.ID, req.FirstName, req.LastName, req.Department); err != nil {
		writeDomainError(w, err)
		return
	}

	employee.FirstName = req.FirstName
	employee.LastName = req.LastName
	employee.Department = req.Department
	writeJSONResponse(w, http.StatusOK, api.DomainEmployeeToAPIEmployee(employee))
}

func (h *AuthHandler) SetupEndpoints(router *mux.Router) {
	log.Printf("🚀 Registering auth endpoints")

	router.HandleFunc("/auth/register", h.HandleRegister).Methods("POST")
	log.Printf("✅ POST /auth/register endpoint registered")

	router.HandleFunc("/auth/login", h.HandleLogin).Methods("POST")
	log.Printf("✅ POST /auth/login endpoint registered")

	router.HandleFunc("/auth/profile", h.authMiddleware.WithAuth(h.HandleGetProfile)).Methods("GET")
	log.Printf("✅ GET /auth/profile endpoint registered")

	router.HandleFunc("/auth/profile", h.authMiddleware.WithAuth(h.HandleUpdateProfile)).Methods("PUT")
	log.Printf("✅ PUT /auth/profile endpoint registered")
}
