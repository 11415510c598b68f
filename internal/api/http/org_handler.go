package http

import (
	"net/http"

	"casahub-backend/internal/domain"
	"casahub-backend/internal/service"
)

type OrgHandler struct {
	orgSvc service.OrganizationService
}

func NewOrgHandler(orgSvc service.OrganizationService) *OrgHandler {
	return &OrgHandler{orgSvc: orgSvc}
}

// ListOrganizations is public: the application form needs the org list
// before the applicant has an account.
func (h *OrgHandler) ListOrganizations(w http.ResponseWriter, r *http.Request) {
	orgs, err := h.orgSvc.ListOrganizations(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"organizations": orgs})
}

func (h *OrgHandler) GetOrganization(w http.ResponseWriter, r *http.Request) {
	orgID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	org, err := h.orgSvc.GetOrganization(r.Context(), orgID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, org)
}

type createOrgRequest struct {
	Name             string `json:"name"`
	Description      string `json:"description"`
	Address          string `json:"address"`
	County           string `json:"county"`
	AdminEmail       string `json:"admin_email"`
	AdminPhoneNumber string `json:"admin_phone_number"`
}

func (h *OrgHandler) CreateOrganization(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated", Message: "authentication required"})
		return
	}
	var req createOrgRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeBadRequest(w, "name is required")
		return
	}

	org := &domain.Organization{
		Name:             req.Name,
		Description:      req.Description,
		Address:          req.Address,
		County:           req.County,
		AdminEmail:       req.AdminEmail,
		AdminPhoneNumber: req.AdminPhoneNumber,
	}
	if err := h.orgSvc.CreateOrganization(r.Context(), actor, org); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, org)
}
