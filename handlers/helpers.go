package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"socialcatalyst/apperrors"
	"socialcatalyst/appctx"
	"socialcatalyst/models"
)

// writeJSONResponse writes a JSON payload with the given status code
func writeJSONResponse(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("❌ Failed to encode JSON response: %v", err)
	}
}

// writeDomainError maps a structured error to its HTTP status and a JSON
// body carrying the machine-readable kind. Unclassified errors never leak
// their message.
func writeDomainError(w http.ResponseWriter, err error) {
	status := apperrors.HTTPStatus(err)

	body := map[string]any{
		"error": "internal server error",
		"kind":  string(apperrors.KindOf(err)),
	}

	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		body["error"] = appErr.Message
		if appErr.NextAllowedAt != nil {
			body["next_share_time"] = appErr.NextAllowedAt
		}
	} else {
		log.Printf("❌ Unclassified error surfaced to HTTP boundary: %v", err)
	}

	writeJSONResponse(w, status, body)
}

// requireEmployee extracts the authenticated employee from the context.
func requireEmployee(w http.ResponseWriter, r *http.Request) (*models.Employee, bool) {
	employee, ok := appctx.GetEmployee(r.Context())
	if !ok {
		log.Printf("❌ Employee not found in context")
		writeDomainError(w, apperrors.New(apperrors.KindUnauthorized, "authentication required"))
		return nil, false
	}
	return employee, true
}

// requireSelfOrAdmin enforces that the caller acts on their own record or
// holds the admin role.
func requireSelfOrAdmin(w http.ResponseWriter, r *http.Request, targetEmployeeID string) (*models.Employee, bool) {
	employee, ok := requireEmployee(w, r)
	if !ok {
		return nil, false
	}
	if employee.ID != targetEmployeeID && !employee.IsAdmin() {
		log.Printf("❌ Employee %s may not act on employee %s", employee.ID, targetEmployeeID)
		writeDomainError(w, apperrors.New(apperrors.KindForbidden, "not allowed to act on another employee"))
		return nil, false
	}
	return employee, true
}

// decodeJSONBody decodes a request body into dst, rejecting malformed JSON.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		log.Printf("❌ Failed to decode request body: %v", err)
		writeDomainError(w, apperrors.New(apperrors.KindInvalidRequest, "invalid request body"))
		return false
	}
	return true
}
