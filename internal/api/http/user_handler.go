package http

import (
	"net/http"

	"casahub-backend/internal/service"
)

type UserHandler struct {
	userSvc service.UserService
	noteSvc service.NotificationService
}

func NewUserHandler(userSvc service.UserService, noteSvc service.NotificationService) *UserHandler {
	return &UserHandler{userSvc: userSvc, noteSvc: noteSvc}
}

func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated", Message: "authentication required"})
		return
	}
	user, memberships, err := h.userSvc.GetUserProfile(r.Context(), actor.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user":        user,
		"memberships": memberships,
	})
}

type updateProfileRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated", Message: "authentication required"})
		return
	}
	var req updateProfileRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.userSvc.UpdateProfile(r.Context(), actor.UserID, req.Name, req.Email, req.PhoneNumber); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *UserHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated", Message: "authentication required"})
		return
	}
	users, memberships, err := h.userSvc.ListMembers(r.Context(), actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"users":       users,
		"memberships": memberships,
	})
}

func (h *UserHandler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated", Message: "authentication required"})
		return
	}
	page, pageSize := pagination(r)
	notes, total, err := h.noteSvc.GetNotifications(r.Context(), actor.UserID, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"notifications": notes,
		"total":         total,
	})
}

func (h *UserHandler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated", Message: "authentication required"})
		return
	}
	noteID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.noteSvc.MarkAsRead(r.Context(), actor.UserID, noteID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
