package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"peerchat/internal/auth"
	"peerchat/internal/models"
	"peerchat/internal/services"
	"peerchat/pkg/logger"
)

type AdminHandlers struct {
	authService  *auth.Service
	adminService *services.AdminService
}

func NewAdminHandlers(authService *auth.Service, adminService *services.AdminService) *AdminHandlers {
	return &AdminHandlers{
		authService:  authService,
		adminService: adminService,
	}
}

// SuspendUser handles POST /admin/users/{id}/suspend. The moderation event
// fans out to the admin audience and to the affected user's live connection.
func (h *AdminHandlers) SuspendUser(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	parts := strings.Split(r.URL.Path, "/")
	// /admin/users/{id}/suspend
	if len(parts) != 5 || parts[4] != "suspend" {
		respondError(w, http.StatusNotFound, "endpoint not found")
		return
	}
	userID, err := strconv.Atoi(parts[3])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var req models.SuspendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request")
		return
	}

	user, err := h.adminService.SuspendUser(r.Context(), claims.UserID, userID, req.Suspended)
	if err != nil {
		logger.Error("Suspension error: %v", err)
		respondError(w, http.StatusNotFound, "user not found")
		return
	}

	respondJSON(w, http.StatusOK, user, "suspension updated")
}

func (h *AdminHandlers) requireAdmin(w http.ResponseWriter, r *http.Request) (*auth.Claims, bool) {
	header := r.Header.Get("Authorization")
	tokenStr := strings.TrimPrefix(header, "Bearer ")
	if tokenStr == "" || tokenStr == header {
		respondError(w, http.StatusUnauthorized, "missing token")
		return nil, false
	}

	claims, err := h.authService.VerifyToken(tokenStr)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "invalid token")
		return nil, false
	}
	if claims.Role != models.RoleAdmin {
		respondError(w, http.StatusForbidden, "admin role required")
		return nil, false
	}

	return claims, true
}
