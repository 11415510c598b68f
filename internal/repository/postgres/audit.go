package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"casahub-backend/internal/domain"
	"casahub-backend/internal/repository"
)

type auditLogRepository struct {
	db *sql.DB
}

func NewAuditLogRepository(db *sql.DB) repository.AuditLogRepository {
	return &auditLogRepository{db: db}
}

const auditColumns = `id, timestamp, org_id, actor_email, actor_role, action, action_type, resource_type, resource_identifier, status, severity, ip_address, user_agent, request_uri, old_values, new_values, metadata`

func (r *auditLogRepository) Append(ctx context.Context, e *domain.AuditLogEntry) error {
	oldValues, err := json.Marshal(e.OldValues)
	if err != nil {
		return err
	}
	newValues, err := json.Marshal(e.NewValues)
	if err != nil {
		return err
	}
	metadata, err := json.Marshal(e.Metadata)
	if err != nil {
		return err
	}

	query := `INSERT INTO audit_logs (timestamp, org_id, actor_email, actor_role, action, action_type, resource_type, resource_identifier, status, severity, ip_address, user_agent, request_uri, old_values, new_values, metadata)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16) RETURNING id`
	return r.db.QueryRowContext(ctx, query, e.Timestamp, e.OrgID, e.ActorEmail, e.ActorRole, e.Action, e.ActionType,
		e.ResourceType, e.ResourceIdentifier, e.Status, e.Severity, e.IPAddress, e.UserAgent, e.RequestURI,
		oldValues, newValues, metadata).Scan(&e.ID)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike escapes LIKE metacharacters so user search text matches
// literally inside the %...% pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// buildFilter turns the AND-combined filter fields into a WHERE clause.
func buildFilter(filter domain.AuditLogFilter) (string, []interface{}) {
	where := "WHERE 1=1"
	var args []interface{}
	argIdx := 1

	if filter.SystemOnly {
		where += " AND org_id IS NULL"
	} else if filter.OrgID != nil {
		where += fmt.Sprintf(" AND org_id = $%d", argIdx)
		args = append(args, *filter.OrgID)
		argIdx++
	}
	if filter.ActionType != "" {
		where += fmt.Sprintf(" AND action_type = $%d", argIdx)
		args = append(args, filter.ActionType)
		argIdx++
	}
	if filter.Severity != "" {
		where += fmt.Sprintf(" AND severity = $%d", argIdx)
		args = append(args, filter.Severity)
		argIdx++
	}
	if filter.Status != "" {
		where += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, filter.Status)
		argIdx++
	}
	if filter.Search != "" {
		where += fmt.Sprintf(" AND (actor_email ILIKE $%d OR resource_identifier ILIKE $%d OR action ILIKE $%d)", argIdx, argIdx, argIdx)
		args = append(args, "%"+escapeLike(filter.Search)+"%")
		argIdx++
	}
	if filter.DateFrom != nil {
		where += fmt.Sprintf(" AND timestamp >= $%d", argIdx)
		args = append(args, *filter.DateFrom)
		argIdx++
	}
	if filter.DateTo != nil {
		where += fmt.Sprintf(" AND timestamp <= $%d", argIdx)
		args = append(args, *filter.DateTo)
		argIdx++
	}

	return where, args
}

func scanAuditEntry(rows *sql.Rows, e *domain.AuditLogEntry) error {
	var oldValues, newValues, metadata []byte
	if err := rows.Scan(&e.ID, &e.Timestamp, &e.OrgID, &e.ActorEmail, &e.ActorRole, &e.Action, &e.ActionType,
		&e.ResourceType, &e.ResourceIdentifier, &e.Status, &e.Severity, &e.IPAddress, &e.UserAgent, &e.RequestURI,
		&oldValues, &newValues, &metadata); err != nil {
		return err
	}
	if len(oldValues) > 0 {
		if err := json.Unmarshal(oldValues, &e.OldValues); err != nil {
			return err
		}
	}
	if len(newValues) > 0 {
		if err := json.Unmarshal(newValues, &e.NewValues); err != nil {
			return err
		}
	}
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &e.Metadata); err != nil {
			return err
		}
	}
	return nil
}

func (r *auditLogRepository) List(ctx context.Context, filter domain.AuditLogFilter, page, pageSize int32) ([]domain.AuditLogEntry, int32, error) {
	where, args := buildFilter(filter)

	var count int32
	countQuery := "SELECT count(*) FROM audit_logs " + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := fmt.Sprintf("SELECT %s FROM audit_logs %s ORDER BY timestamp DESC, id DESC LIMIT $%d OFFSET $%d",
		auditColumns, where, len(args)+1, len(args)+2)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []domain.AuditLogEntry
	for rows.Next() {
		var e domain.AuditLogEntry
		if err := scanAuditEntry(rows, &e); err != nil {
			return nil, 0, err
		}
		entries = append(entries, e)
	}
	return entries, count, rows.Err()
}

func (r *auditLogRepository) ForEach(ctx context.Context, filter domain.AuditLogFilter, fn func(*domain.AuditLogEntry) error) error {
	where, args := buildFilter(filter)
	query := "SELECT " + auditColumns + " FROM audit_logs " + where + " ORDER BY timestamp DESC, id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var e domain.AuditLogEntry
		if err := scanAuditEntry(rows, &e); err != nil {
			return err
		}
		if err := fn(&e); err != nil {
			return err
		}
	}
	return rows.Err()
}
