package domain

import "time"

type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailure AuditStatus = "failure"
	AuditStatusDenied  AuditStatus = "denied"
)

type AuditSeverity string

const (
	AuditSeverityInfo     AuditSeverity = "info"
	AuditSeverityWarning  AuditSeverity = "warning"
	AuditSeverityCritical AuditSeverity = "critical"
)

// AuditLogEntry is an immutable record of a security or business relevant
// event. Entries are append-only; nothing in the system updates or deletes
// them after creation.
type AuditLogEntry struct {
	ID                 int64             `json:"id"`
	Timestamp          time.Time         `json:"timestamp"`
	OrgID              *int32            `json:"org_id,omitempty"` // nil marks a system-level event
	ActorEmail         string            `json:"actor_email"`
	ActorRole          string            `json:"actor_role"`
	Action             string            `json:"action"`
	ActionType         string            `json:"action_type"`
	ResourceType       string            `json:"resource_type"`
	ResourceIdentifier string            `json:"resource_identifier"`
	Status             AuditStatus       `json:"status"`
	Severity           AuditSeverity     `json:"severity"`
	IPAddress          string            `json:"ip_address"`
	UserAgent          string            `json:"user_agent"`
	RequestURI         string            `json:"request_uri"`
	OldValues          map[string]string `json:"old_values,omitempty"`
	NewValues          map[string]string `json:"new_values,omitempty"`
	Metadata           map[string]string `json:"metadata,omitempty"`
}

// AuditLogFilter holds the optional, AND-combined query filters.
// OrgID and SystemOnly are honored for platform super-admin queries only;
// tenant queries always run with the caller's organization.
type AuditLogFilter struct {
	ActionType string
	Severity   AuditSeverity
	Status     AuditStatus
	OrgID      *int32
	SystemOnly bool // entries with no organization at all
	Search     string
	DateFrom   *time.Time
	DateTo     *time.Time
}

// AuditLogPage is one page of query results. TotalPages is always >= 1,
// even when no entries match.
type AuditLogPage struct {
	Entries    []AuditLogEntry `json:"logs"`
	Total      int32           `json:"total"`
	TotalPages int32           `json:"total_pages"`
}
