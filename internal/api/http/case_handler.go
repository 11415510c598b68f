package http

import (
	"net/http"

	"casahub-backend/internal/domain"
	"casahub-backend/internal/service"
)

type CaseHandler struct {
	caseSvc service.CaseService
}

func NewCaseHandler(caseSvc service.CaseService) *CaseHandler {
	return &CaseHandler{caseSvc: caseSvc}
}

type createCaseRequest struct {
	CaseNumber    string `json:"case_number"`
	ChildInitials string `json:"child_initials"`
	CourtDocket   string `json:"court_docket"`
	Summary       string `json:"summary"`
	OpenedOn      string `json:"opened_on"`
}

func (h *CaseHandler) CreateCase(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated", Message: "authentication required"})
		return
	}
	var req createCaseRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.CaseNumber == "" || req.ChildInitials == "" {
		writeBadRequest(w, "case_number and child_initials are required")
		return
	}

	c := &domain.CasaCase{
		CaseNumber:    req.CaseNumber,
		ChildInitials: req.ChildInitials,
		CourtDocket:   req.CourtDocket,
		Summary:       req.Summary,
		OpenedOn:      req.OpenedOn,
	}
	if err := h.caseSvc.CreateCase(r.Context(), actor, c); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *CaseHandler) GetCase(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated", Message: "authentication required"})
		return
	}
	caseID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	c, err := h.caseSvc.GetCase(r.Context(), actor, caseID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CaseHandler) ListCases(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated", Message: "authentication required"})
		return
	}
	status := domain.CaseStatus(r.URL.Query().Get("status"))
	page, pageSize := pagination(r)

	cases, total, err := h.caseSvc.ListCases(r.Context(), actor, status, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"cases": cases,
		"total": total,
	})
}

type closeCaseRequest struct {
	Summary string `json:"summary"`
}

func (h *CaseHandler) CloseCase(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated", Message: "authentication required"})
		return
	}
	caseID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req closeCaseRequest
	if !decodeBody(w, r, &req) {
		return
	}
	c, err := h.caseSvc.CloseCase(r.Context(), actor, caseID, req.Summary)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

type assignCaseRequest struct {
	VolunteerUserID int32 `json:"volunteer_user_id"`
}

func (h *CaseHandler) AssignCase(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated", Message: "authentication required"})
		return
	}
	caseID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req assignCaseRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.VolunteerUserID <= 0 {
		writeBadRequest(w, "volunteer_user_id is required")
		return
	}
	c, err := h.caseSvc.AssignCase(r.Context(), actor, caseID, req.VolunteerUserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

type addContactLogRequest struct {
	ContactType string `json:"contact_type"`
	ContactDate string `json:"contact_date"`
	Notes       string `json:"notes"`
}

func (h *CaseHandler) AddContactLog(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated", Message: "authentication required"})
		return
	}
	caseID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req addContactLogRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ContactType == "" {
		writeBadRequest(w, "contact_type is required")
		return
	}

	log := &domain.ContactLog{
		CaseID:      caseID,
		ContactType: req.ContactType,
		ContactDate: req.ContactDate,
		Notes:       req.Notes,
	}
	if err := h.caseSvc.AddContactLog(r.Context(), actor, log); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, log)
}

func (h *CaseHandler) ListContactLogs(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated", Message: "authentication required"})
		return
	}
	caseID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	page, pageSize := pagination(r)
	logs, total, err := h.caseSvc.ListContactLogs(r.Context(), actor, caseID, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"contact_logs": logs,
		"total":        total,
	})
}

type scheduleHearingRequest struct {
	HearingDate string `json:"hearing_date"`
	HearingType string `json:"hearing_type"`
	Location    string `json:"location"`
	Notes       string `json:"notes"`
}

func (h *CaseHandler) ScheduleHearing(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated", Message: "authentication required"})
		return
	}
	caseID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req scheduleHearingRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.HearingDate == "" {
		writeBadRequest(w, "hearing_date is required")
		return
	}

	hearing := &domain.Hearing{
		CaseID:      caseID,
		HearingDate: req.HearingDate,
		HearingType: req.HearingType,
		Location:    req.Location,
		Notes:       req.Notes,
	}
	if err := h.caseSvc.ScheduleHearing(r.Context(), actor, hearing); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, hearing)
}

func (h *CaseHandler) ListHearings(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated", Message: "authentication required"})
		return
	}
	caseID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	hearings, err := h.caseSvc.ListHearings(r.Context(), actor, caseID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"hearings": hearings})
}
