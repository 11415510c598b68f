package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"casahub-backend/internal/domain"
	"casahub-backend/internal/logger"
	"casahub-backend/internal/repository"
)

type auditService struct {
	auditRepo repository.AuditLogRepository
}

func NewAuditService(auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{auditRepo: auditRepo}
}

// NewAuditRecorder exposes the append side of the same service.
func NewAuditRecorder(auditRepo repository.AuditLogRepository) AuditRecorder {
	return &auditService{auditRepo: auditRepo}
}

// scopeTenantFilter enforces tenant isolation: the caller's organization is
// always applied and the cross-tenant fields are cleared no matter what the
// request carried.
func scopeTenantFilter(actor Actor, filter domain.AuditLogFilter) (domain.AuditLogFilter, error) {
	if !actor.Role.CanViewAuditLogs() {
		return filter, ErrForbidden
	}
	orgID := actor.OrgID
	filter.OrgID = &orgID
	filter.SystemOnly = false
	return filter, nil
}

func scopePlatformFilter(actor Actor, filter domain.AuditLogFilter) (domain.AuditLogFilter, error) {
	if !actor.SuperAdmin {
		return filter, ErrForbidden
	}
	return filter, nil
}

func (s *auditService) GetTenantLogs(ctx context.Context, actor Actor, filter domain.AuditLogFilter, page, pageSize int32) (*domain.AuditLogPage, error) {
	filter, err := scopeTenantFilter(actor, filter)
	if err != nil {
		return nil, err
	}
	return s.query(ctx, filter, page, pageSize)
}

func (s *auditService) GetPlatformLogs(ctx context.Context, actor Actor, filter domain.AuditLogFilter, page, pageSize int32) (*domain.AuditLogPage, error) {
	filter, err := scopePlatformFilter(actor, filter)
	if err != nil {
		return nil, err
	}
	return s.query(ctx, filter, page, pageSize)
}

func (s *auditService) query(ctx context.Context, filter domain.AuditLogFilter, page, pageSize int32) (*domain.AuditLogPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 25
	}

	entries, total, err := s.auditRepo.List(ctx, filter, page, pageSize)
	if err != nil {
		return nil, err
	}

	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if entries == nil {
		entries = []domain.AuditLogEntry{}
	}
	return &domain.AuditLogPage{Entries: entries, Total: total, TotalPages: totalPages}, nil
}

func (s *auditService) ExportTenantLogs(ctx context.Context, actor Actor, filter domain.AuditLogFilter, w io.Writer) error {
	filter, err := scopeTenantFilter(actor, filter)
	if err != nil {
		return err
	}
	if err := s.export(ctx, filter, w); err != nil {
		return err
	}
	s.recordExport(ctx, actor, filter.OrgID)
	return nil
}

func (s *auditService) ExportPlatformLogs(ctx context.Context, actor Actor, filter domain.AuditLogFilter, w io.Writer) error {
	filter, err := scopePlatformFilter(actor, filter)
	if err != nil {
		return err
	}
	if err := s.export(ctx, filter, w); err != nil {
		return err
	}
	s.recordExport(ctx, actor, filter.OrgID)
	return nil
}

// recordExport leaves a trace of who pulled an export and for which scope.
func (s *auditService) recordExport(ctx context.Context, actor Actor, orgID *int32) {
	scope := "platform"
	if orgID != nil {
		scope = fmt.Sprintf("org-%d", *orgID)
	}
	s.Record(ctx, &domain.AuditLogEntry{
		OrgID:              orgID,
		ActorEmail:         actor.Email,
		ActorRole:          string(actor.Role),
		Action:             ActionLogsExported,
		ActionType:         ActionTypeDataExport,
		ResourceType:       "audit_log",
		ResourceIdentifier: scope,
		Status:             domain.AuditStatusSuccess,
		Severity:           domain.AuditSeverityInfo,
		IPAddress:          actor.IPAddress,
		UserAgent:          actor.UserAgent,
		RequestURI:         actor.RequestURI,
	})
}

var exportHeader = []string{
	"id", "timestamp", "organization_id", "actor_email", "actor_role",
	"action", "action_type", "resource_type", "resource_identifier",
	"status", "severity", "ip_address", "user_agent", "request_uri",
	"old_values", "new_values", "metadata",
}

// export streams the full matching result set as CSV, row at a time, so
// a large export never materializes in memory.
func (s *auditService) export(ctx context.Context, filter domain.AuditLogFilter, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}

	err := s.auditRepo.ForEach(ctx, filter, func(e *domain.AuditLogEntry) error {
		orgID := ""
		if e.OrgID != nil {
			orgID = fmt.Sprintf("%d", *e.OrgID)
		}
		return cw.Write([]string{
			fmt.Sprintf("%d", e.ID),
			e.Timestamp.UTC().Format(time.RFC3339),
			orgID,
			e.ActorEmail,
			e.ActorRole,
			e.Action,
			e.ActionType,
			e.ResourceType,
			e.ResourceIdentifier,
			string(e.Status),
			string(e.Severity),
			e.IPAddress,
			e.UserAgent,
			e.RequestURI,
			marshalValues(e.OldValues),
			marshalValues(e.NewValues),
			marshalValues(e.Metadata),
		})
	})
	if err != nil {
		return err
	}

	cw.Flush()
	return cw.Error()
}

func marshalValues(values map[string]string) string {
	if len(values) == 0 {
		return ""
	}
	data, err := json.Marshal(values)
	if err != nil {
		return ""
	}
	return string(data)
}

// Record appends an entry best-effort. Audit writes must never fail the
// business operation they describe.
func (s *auditService) Record(ctx context.Context, entry *domain.AuditLogEntry) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	if entry.Severity == "" {
		entry.Severity = domain.AuditSeverityInfo
	}
	if err := s.auditRepo.Append(ctx, entry); err != nil {
		logger.Error("Failed to append audit log entry", "action", entry.Action, "error", err)
	}
}
