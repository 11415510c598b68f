package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"casahub-backend/internal/domain"
	"casahub-backend/internal/service"
)

type PipelineHandler struct {
	pipelineSvc service.PipelineService
}

func NewPipelineHandler(pipelineSvc service.PipelineService) *PipelineHandler {
	return &PipelineHandler{pipelineSvc: pipelineSvc}
}

type submitApplicationRequest struct {
	OrgID       int32  `json:"org_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
	References  string `json:"references"`
}

// SubmitApplication is the public intake endpoint the application form
// posts to. No authentication: applicants have no account yet.
func (h *PipelineHandler) SubmitApplication(w http.ResponseWriter, r *http.Request) {
	var req submitApplicationRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.OrgID == 0 || req.Name == "" || req.Email == "" {
		writeBadRequest(w, "org_id, name and email are required")
		return
	}

	cand := &domain.VolunteerCandidate{
		OrgID:       req.OrgID,
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		References:  req.References,
	}
	if err := h.pipelineSvc.SubmitApplication(r.Context(), cand); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, cand)
}

type pipelineActionRequest struct {
	Action domain.PipelineAction `json:"action"`
	Reason string                `json:"reason"`
}

func (h *PipelineHandler) ApplyAction(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated", Message: "authentication required"})
		return
	}
	candidateID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req pipelineActionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Action == "" {
		writeBadRequest(w, "action is required")
		return
	}

	result, err := h.pipelineSvc.ApplyAction(r.Context(), actor, candidateID, req.Action, req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *PipelineHandler) GetPipelineBoard(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated", Message: "authentication required"})
		return
	}
	board, err := h.pipelineSvc.GetPipelineBoard(r.Context(), actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, board)
}

func (h *PipelineHandler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated", Message: "authentication required"})
		return
	}
	status := domain.PipelineStatus(r.URL.Query().Get("status"))
	page, pageSize := pagination(r)

	candidates, total, err := h.pipelineSvc.ListCandidates(r.Context(), actor, status, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"candidates": candidates,
		"total":      total,
	})
}

func (h *PipelineHandler) GetCandidate(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated", Message: "authentication required"})
		return
	}
	candidateID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	cand, err := h.pipelineSvc.GetCandidate(r.Context(), actor, candidateID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cand)
}

// pathID parses the named mux variable as an int32 resource id.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int32, bool) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		writeBadRequest(w, "invalid "+name)
		return 0, false
	}
	return int32(id), true
}

func pagination(r *http.Request) (int32, int32) {
	q := r.URL.Query()
	page, _ := strconv.ParseInt(q.Get("page"), 10, 32)
	pageSize, _ := strconv.ParseInt(q.Get("page_size"), 10, 32)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 25
	}
	return int32(page), int32(pageSize)
}
