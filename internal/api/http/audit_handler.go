package http

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"casahub-backend/internal/domain"
	"casahub-backend/internal/service"
)

type AuditHandler struct {
	auditSvc service.AuditService
}

func NewAuditHandler(auditSvc service.AuditService) *AuditHandler {
	return &AuditHandler{auditSvc: auditSvc}
}

// GetTenantLogs serves an organization's own audit trail.
func (h *AuditHandler) GetTenantLogs(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated", Message: "authentication required"})
		return
	}
	filter, ok := parseAuditFilter(w, r)
	if !ok {
		return
	}
	page, pageSize := pagination(r)

	result, err := h.auditSvc.GetTenantLogs(r.Context(), actor, filter, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GetPlatformLogs serves the cross-organization view for super-admins.
func (h *AuditHandler) GetPlatformLogs(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated", Message: "authentication required"})
		return
	}
	filter, ok := parseAuditFilter(w, r)
	if !ok {
		return
	}
	page, pageSize := pagination(r)

	result, err := h.auditSvc.GetPlatformLogs(r.Context(), actor, filter, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *AuditHandler) ExportTenantLogs(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated", Message: "authentication required"})
		return
	}
	filter, ok := parseAuditFilter(w, r)
	if !ok {
		return
	}
	setCSVHeaders(w)
	if err := h.auditSvc.ExportTenantLogs(r.Context(), actor, filter, w); err != nil {
		// Headers may already be out; authorization failures happen before
		// the first row so the common case still maps cleanly.
		writeError(w, err)
		return
	}
}

func (h *AuditHandler) ExportPlatformLogs(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated", Message: "authentication required"})
		return
	}
	filter, ok := parseAuditFilter(w, r)
	if !ok {
		return
	}
	setCSVHeaders(w)
	if err := h.auditSvc.ExportPlatformLogs(r.Context(), actor, filter, w); err != nil {
		writeError(w, err)
		return
	}
}

func setCSVHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=audit-logs-%s.csv", time.Now().UTC().Format("2006-01-02")))
}

func parseAuditFilter(w http.ResponseWriter, r *http.Request) (domain.AuditLogFilter, bool) {
	q := r.URL.Query()
	filter := domain.AuditLogFilter{
		ActionType: q.Get("action_type"),
		Severity:   domain.AuditSeverity(q.Get("severity")),
		Status:     domain.AuditStatus(q.Get("status")),
		Search:     q.Get("search"),
		SystemOnly: q.Get("system_only") == "true",
	}

	if raw := q.Get("org_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || id <= 0 {
			writeBadRequest(w, "invalid org_id")
			return filter, false
		}
		orgID := int32(id)
		filter.OrgID = &orgID
	}
	if raw := q.Get("date_from"); raw != "" {
		t, ok := parseDate(w, "date_from", raw)
		if !ok {
			return filter, false
		}
		filter.DateFrom = &t
	}
	if raw := q.Get("date_to"); raw != "" {
		t, ok := parseDate(w, "date_to", raw)
		if !ok {
			return filter, false
		}
		// A bare date means the whole day, inclusive.
		if len(raw) == len("2006-01-02") {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		filter.DateTo = &t
	}
	return filter, true
}

func parseDate(w http.ResponseWriter, name, raw string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true
	}
	writeBadRequest(w, "invalid "+name+", expected RFC3339 or YYYY-MM-DD")
	return time.Time{}, false
}
