package handlers

import (
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"casahub-backend/internal/domain"
	"casahub-backend/internal/service"
)

func TestAuditHandler_GetTenantLogs(t *testing.T) {
	t.Run("FilterFromQueryParams", func(t *testing.T) {
		api := newTestAPI()
		page := &domain.AuditLogPage{
			Entries:    []domain.AuditLogEntry{{ID: 1, Action: "approve_volunteer"}},
			Total:      1,
			TotalPages: 1,
		}
		api.audit.On("GetTenantLogs", mock.Anything, mock.Anything, mock.MatchedBy(func(f domain.AuditLogFilter) bool {
			return f.ActionType == "pipeline" &&
				f.Severity == domain.AuditSeverityWarning &&
				f.Status == domain.AuditStatusDenied &&
				f.Search == "rivera"
		}), int32(2), int32(10)).Return(page, nil)

		req := authedRequest(http.MethodGet,
			"/api/v1/audit-logs?action_type=pipeline&severity=warning&status=denied&search=rivera&page=2&page_size=10",
			api.supervisorToken(t), "")
		rec := api.do(req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"logs"`)
		assert.Contains(t, rec.Body.String(), `"total_pages":1`)
	})

	t.Run("DateRangeParsing", func(t *testing.T) {
		api := newTestAPI()
		api.audit.On("GetTenantLogs", mock.Anything, mock.Anything, mock.MatchedBy(func(f domain.AuditLogFilter) bool {
			if f.DateFrom == nil || f.DateTo == nil {
				return false
			}
			// A bare date_to covers the whole day.
			wantFrom := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
			return f.DateFrom.Equal(wantFrom) && f.DateTo.After(time.Date(2026, 8, 28, 23, 59, 0, 0, time.UTC))
		}), int32(1), int32(25)).Return(&domain.AuditLogPage{TotalPages: 1}, nil)

		req := authedRequest(http.MethodGet,
			"/api/v1/audit-logs?date_from=2026-08-01&date_to=2026-08-28",
			api.supervisorToken(t), "")
		rec := api.do(req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("InvalidDateRejected", func(t *testing.T) {
		api := newTestAPI()
		req := authedRequest(http.MethodGet, "/api/v1/audit-logs?date_from=last-tuesday",
			api.supervisorToken(t), "")
		rec := api.do(req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		api.audit.AssertNotCalled(t, "GetTenantLogs",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ForbiddenRole", func(t *testing.T) {
		api := newTestAPI()
		api.audit.On("GetTenantLogs", mock.Anything, mock.Anything, mock.Anything, int32(1), int32(25)).
			Return(nil, service.ErrForbidden)

		req := authedRequest(http.MethodGet, "/api/v1/audit-logs", api.supervisorToken(t), "")
		rec := api.do(req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestAuditHandler_GetPlatformLogs(t *testing.T) {
	api := newTestAPI()
	api.audit.On("GetPlatformLogs", mock.Anything, mock.MatchedBy(func(a service.Actor) bool {
		return a.SuperAdmin
	}), mock.MatchedBy(func(f domain.AuditLogFilter) bool {
		return f.SystemOnly && f.OrgID != nil && *f.OrgID == 5
	}), int32(1), int32(25)).Return(&domain.AuditLogPage{TotalPages: 1}, nil)

	token, err := api.tokens.GenerateAccessToken(1, "root@casahub.example", 0, "", true)
	assert.NoError(t, err)

	req := authedRequest(http.MethodGet,
		"/api/v1/super-admin/audit-logs?system_only=true&org_id=5", token, "")
	rec := api.do(req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuditHandler_ExportTenantLogs(t *testing.T) {
	t.Run("StreamsCSV", func(t *testing.T) {
		api := newTestAPI()
		api.audit.On("ExportTenantLogs", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				w := args.Get(3).(io.Writer)
				w.Write([]byte("id,timestamp,organization_id\n1,2026-08-28T10:00:00Z,3\n"))
			}).Return(nil)

		req := authedRequest(http.MethodGet, "/api/v1/audit-logs/export", api.supervisorToken(t), "")
		rec := api.do(req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment; filename=audit-logs-")
		assert.Contains(t, rec.Body.String(), "id,timestamp,organization_id")
	})

	t.Run("ForbiddenRole", func(t *testing.T) {
		api := newTestAPI()
		api.audit.On("ExportTenantLogs", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(service.ErrForbidden)

		req := authedRequest(http.MethodGet, "/api/v1/audit-logs/export", api.supervisorToken(t), "")
		rec := api.do(req)

		// Authorization fails before the first row is written.
		assert.NotContains(t, rec.Body.String(), "id,timestamp")
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
