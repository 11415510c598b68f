package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	httpapi "casahub-backend/internal/api/http"
	"casahub-backend/internal/domain"
	"casahub-backend/internal/security"
	"casahub-backend/internal/service"
)

// testAPI wires the full route table against mocked services so tests
// exercise the real router and auth middleware.
type testAPI struct {
	router   *mux.Router
	tokens   security.TokenManager
	auth     *MockAuthService
	pipeline *MockPipelineService
	audit    *MockAuditService
	cases    *MockCaseService
	orgs     *MockOrganizationService
	users    *MockUserService
	notes    *MockNotificationService
	docs     *MockDocumentService
	store    *MockStorage
}

func newTestAPI() *testAPI {
	api := &testAPI{
		tokens:   security.NewTokenManager("test-secret", 60, 0),
		auth:     new(MockAuthService),
		pipeline: new(MockPipelineService),
		audit:    new(MockAuditService),
		cases:    new(MockCaseService),
		orgs:     new(MockOrganizationService),
		users:    new(MockUserService),
		notes:    new(MockNotificationService),
		docs:     new(MockDocumentService),
		store:    new(MockStorage),
	}
	handlers := httpapi.NewHandlers(api.auth, api.pipeline, api.audit, api.cases,
		api.orgs, api.users, api.notes, api.docs, api.store)
	api.router = httpapi.NewRouter(handlers, api.tokens)
	return api
}

func (a *testAPI) supervisorToken(t *testing.T) string {
	t.Helper()
	token, err := a.tokens.GenerateAccessToken(9, "supervisor@example.org", 3, domain.MembershipRoleSupervisor, false)
	if err != nil {
		t.Fatalf("error generating token: %v", err)
	}
	return token
}

func (a *testAPI) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func authedRequest(method, target, token string, body string) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestPipelineHandler_SubmitApplication(t *testing.T) {
	api := newTestAPI()

	t.Run("Success", func(t *testing.T) {
		api.pipeline.On("SubmitApplication", mock.Anything, mock.MatchedBy(func(c *domain.VolunteerCandidate) bool {
			return c.OrgID == 3 && c.Email == "jamie.rivera@example.com"
		})).Run(func(args mock.Arguments) {
			cand := args.Get(1).(*domain.VolunteerCandidate)
			cand.ID = 42
			cand.PipelineStatus = domain.PipelineStatusApplied
		}).Return(nil)

		body := `{"org_id":3,"name":"Jamie Rivera","email":"jamie.rivera@example.com","phone_number":"555-0101"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/volunteers/apply", bytes.NewReader([]byte(body)))
		rec := api.do(req)

		assert.Equal(t, http.StatusCreated, rec.Code)

		var cand domain.VolunteerCandidate
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cand))
		assert.Equal(t, int32(42), cand.ID)
		assert.Equal(t, domain.PipelineStatusApplied, cand.PipelineStatus)
	})

	t.Run("MissingFields", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/volunteers/apply", strings.NewReader(`{"name":"No Org"}`))
		rec := api.do(req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		api.pipeline.AssertNumberOfCalls(t, "SubmitApplication", 1) // only the success case above
	})
}

func TestPipelineHandler_ApplyAction(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		api := newTestAPI()
		result := &domain.PipelineActionResult{Status: domain.PipelineStatusBackgroundCheck}
		api.pipeline.On("ApplyAction", mock.Anything, mock.MatchedBy(func(a service.Actor) bool {
			return a.UserID == 9 && a.OrgID == 3 && a.Role == domain.MembershipRoleSupervisor
		}), int32(42), domain.PipelineActionStartBackgroundCheck, "").Return(result, nil)

		req := authedRequest(http.MethodPost, "/api/v1/volunteers/42/pipeline-action",
			api.supervisorToken(t), `{"action":"start_background_check"}`)
		rec := api.do(req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"background_check"`)
	})

	t.Run("InvalidTransitionMapsToConflict", func(t *testing.T) {
		api := newTestAPI()
		api.pipeline.On("ApplyAction", mock.Anything, mock.Anything, int32(42),
			domain.PipelineActionApproveVolunteer, "").Return(nil, service.ErrInvalidTransition)

		req := authedRequest(http.MethodPost, "/api/v1/volunteers/42/pipeline-action",
			api.supervisorToken(t), `{"action":"approve_volunteer"}`)
		rec := api.do(req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("MissingReasonMapsToBadRequest", func(t *testing.T) {
		api := newTestAPI()
		api.pipeline.On("ApplyAction", mock.Anything, mock.Anything, int32(42),
			domain.PipelineActionRejectApplication, "").Return(nil, service.ErrMissingReason)

		req := authedRequest(http.MethodPost, "/api/v1/volunteers/42/pipeline-action",
			api.supervisorToken(t), `{"action":"reject_application"}`)
		rec := api.do(req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("ForbiddenMapsTo403", func(t *testing.T) {
		api := newTestAPI()
		api.pipeline.On("ApplyAction", mock.Anything, mock.Anything, int32(42),
			domain.PipelineActionStartBackgroundCheck, "").Return(nil, service.ErrForbidden)

		req := authedRequest(http.MethodPost, "/api/v1/volunteers/42/pipeline-action",
			api.supervisorToken(t), `{"action":"start_background_check"}`)
		rec := api.do(req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("NoTokenRejected", func(t *testing.T) {
		api := newTestAPI()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/volunteers/42/pipeline-action",
			strings.NewReader(`{"action":"start_background_check"}`))
		rec := api.do(req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		api.pipeline.AssertNotCalled(t, "ApplyAction", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("RefreshTokenRejected", func(t *testing.T) {
		api := newTestAPI()
		refresh, err := api.tokens.GenerateRefreshToken(9, "supervisor@example.org")
		assert.NoError(t, err)

		req := authedRequest(http.MethodPost, "/api/v1/volunteers/42/pipeline-action",
			refresh, `{"action":"start_background_check"}`)
		rec := api.do(req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestPipelineHandler_GetPipelineBoard(t *testing.T) {
	api := newTestAPI()
	board := &domain.PipelineBoard{
		Applied:  []domain.VolunteerCandidate{{ID: 1, PipelineStatus: domain.PipelineStatusApplied}},
		Training: []domain.VolunteerCandidate{{ID: 2, PipelineStatus: domain.PipelineStatusTraining}},
	}
	api.pipeline.On("GetPipelineBoard", mock.Anything, mock.MatchedBy(func(a service.Actor) bool {
		return a.OrgID == 3
	})).Return(board, nil)

	req := authedRequest(http.MethodGet, "/api/v1/volunteers/pipeline", api.supervisorToken(t), "")
	rec := api.do(req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var got domain.PipelineBoard
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got.Applied, 1)
	assert.Len(t, got.Training, 1)
	assert.Empty(t, got.Active)
}

func TestPipelineHandler_ListCandidates(t *testing.T) {
	api := newTestAPI()
	api.pipeline.On("ListCandidates", mock.Anything, mock.Anything,
		domain.PipelineStatusTraining, int32(2), int32(10)).
		Return([]domain.VolunteerCandidate{{ID: 7}}, int32(11), nil)

	req := authedRequest(http.MethodGet, "/api/v1/volunteers?status=training&page=2&page_size=10",
		api.supervisorToken(t), "")
	rec := api.do(req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":11`)
}

func TestPipelineHandler_GetCandidate_NotFound(t *testing.T) {
	api := newTestAPI()
	api.pipeline.On("GetCandidate", mock.Anything, mock.Anything, int32(99)).
		Return(nil, service.ErrNotFound)

	req := authedRequest(http.MethodGet, "/api/v1/volunteers/99", api.supervisorToken(t), "")
	rec := api.do(req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
