package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"casahub-backend/internal/security"
	"casahub-backend/internal/service"
	"casahub-backend/internal/storage"
)

// Handlers bundles the API's handler set for router construction.
type Handlers struct {
	Auth     *AuthHandler
	Pipeline *PipelineHandler
	Audit    *AuditHandler
	Case     *CaseHandler
	Org      *OrgHandler
	User     *UserHandler
	Document *DocumentHandler
}

// NewHandlers wires every handler from the service layer.
func NewHandlers(
	authSvc service.AuthService,
	pipelineSvc service.PipelineService,
	auditSvc service.AuditService,
	caseSvc service.CaseService,
	orgSvc service.OrganizationService,
	userSvc service.UserService,
	noteSvc service.NotificationService,
	docSvc service.DocumentService,
	store storage.Storage,
) *Handlers {
	return &Handlers{
		Auth:     NewAuthHandler(authSvc),
		Pipeline: NewPipelineHandler(pipelineSvc),
		Audit:    NewAuditHandler(auditSvc),
		Case:     NewCaseHandler(caseSvc),
		Org:      NewOrgHandler(orgSvc),
		User:     NewUserHandler(userSvc, noteSvc),
		Document: NewDocumentHandler(docSvc, store),
	}
}

// NewRouter builds the full API route table. Public routes carry no
// auth; everything else sits behind the access-token middleware.
func NewRouter(h *Handlers, tm security.TokenManager) *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestLogging)

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", h.Auth.RefreshToken).Methods(http.MethodPost)
	api.HandleFunc("/organizations", h.Org.ListOrganizations).Methods(http.MethodGet)
	api.HandleFunc("/organizations/{id:[0-9]+}", h.Org.GetOrganization).Methods(http.MethodGet)
	api.HandleFunc("/volunteers/apply", h.Pipeline.SubmitApplication).Methods(http.MethodPost)

	// Presigned-style storage routes. The token is issued by the storage
	// backend and validated on use.
	api.HandleFunc("/upload/{token}", h.Document.UploadFile).Methods(http.MethodPut)
	api.HandleFunc("/download/{token}", h.Document.DownloadFile).Methods(http.MethodGet)

	// Authenticated routes
	auth := NewAuthMiddleware(tm)
	authed := api.NewRoute().Subrouter()
	authed.Use(auth.RequireAccess)

	authed.HandleFunc("/auth/change-password", h.Auth.ChangePassword).Methods(http.MethodPost)
	authed.HandleFunc("/me", h.User.GetProfile).Methods(http.MethodGet)
	authed.HandleFunc("/me", h.User.UpdateProfile).Methods(http.MethodPut)
	authed.HandleFunc("/members", h.User.ListMembers).Methods(http.MethodGet)
	authed.HandleFunc("/notifications", h.User.GetNotifications).Methods(http.MethodGet)
	authed.HandleFunc("/notifications/{id:[0-9]+}/read", h.User.MarkNotificationRead).Methods(http.MethodPost)

	// Volunteer pipeline
	authed.HandleFunc("/volunteers", h.Pipeline.ListCandidates).Methods(http.MethodGet)
	authed.HandleFunc("/volunteers/pipeline", h.Pipeline.GetPipelineBoard).Methods(http.MethodGet)
	authed.HandleFunc("/volunteers/{id:[0-9]+}", h.Pipeline.GetCandidate).Methods(http.MethodGet)
	authed.HandleFunc("/volunteers/{id:[0-9]+}/pipeline-action", h.Pipeline.ApplyAction).Methods(http.MethodPost)

	// Candidate documents
	authed.HandleFunc("/volunteers/{id:[0-9]+}/documents", h.Document.RequestUpload).Methods(http.MethodPost)
	authed.HandleFunc("/volunteers/{id:[0-9]+}/documents", h.Document.ListDocuments).Methods(http.MethodGet)
	authed.HandleFunc("/documents/{id:[0-9]+}/confirm", h.Document.ConfirmUpload).Methods(http.MethodPost)
	authed.HandleFunc("/documents/{id:[0-9]+}/download", h.Document.GetDownloadURL).Methods(http.MethodGet)

	// Cases
	authed.HandleFunc("/cases", h.Case.CreateCase).Methods(http.MethodPost)
	authed.HandleFunc("/cases", h.Case.ListCases).Methods(http.MethodGet)
	authed.HandleFunc("/cases/{id:[0-9]+}", h.Case.GetCase).Methods(http.MethodGet)
	authed.HandleFunc("/cases/{id:[0-9]+}/close", h.Case.CloseCase).Methods(http.MethodPost)
	authed.HandleFunc("/cases/{id:[0-9]+}/assign", h.Case.AssignCase).Methods(http.MethodPost)
	authed.HandleFunc("/cases/{id:[0-9]+}/contact-logs", h.Case.AddContactLog).Methods(http.MethodPost)
	authed.HandleFunc("/cases/{id:[0-9]+}/contact-logs", h.Case.ListContactLogs).Methods(http.MethodGet)
	authed.HandleFunc("/cases/{id:[0-9]+}/hearings", h.Case.ScheduleHearing).Methods(http.MethodPost)
	authed.HandleFunc("/cases/{id:[0-9]+}/hearings", h.Case.ListHearings).Methods(http.MethodGet)

	// Audit logs, tenant scope
	authed.HandleFunc("/audit-logs", h.Audit.GetTenantLogs).Methods(http.MethodGet)
	authed.HandleFunc("/audit-logs/export", h.Audit.ExportTenantLogs).Methods(http.MethodGet)

	// Platform super-admin
	authed.HandleFunc("/super-admin/audit-logs", h.Audit.GetPlatformLogs).Methods(http.MethodGet)
	authed.HandleFunc("/super-admin/audit-logs/export", h.Audit.ExportPlatformLogs).Methods(http.MethodGet)
	authed.HandleFunc("/super-admin/organizations", h.Org.CreateOrganization).Methods(http.MethodPost)

	return r
}
