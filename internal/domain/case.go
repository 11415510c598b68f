package domain

type CaseStatus string

const (
	CaseStatusOpen   CaseStatus = "OPEN"
	CaseStatusClosed CaseStatus = "CLOSED"
)

// CasaCase is an advocacy case. Only the child's initials are stored,
// never the full name.
type CasaCase struct {
	ID             int32      `json:"id"`
	OrgID          int32      `json:"org_id"`
	CaseNumber     string     `json:"case_number"`
	ChildInitials  string     `json:"child_initials"`
	CourtDocket    string     `json:"court_docket"`
	AssignedUserID *int32     `json:"assigned_user_id,omitempty"`
	Status         CaseStatus `json:"status"`
	Summary        string     `json:"summary"`
	OpenedOn       string     `json:"opened_on"`
	ClosedOn       *string    `json:"closed_on,omitempty"`
	CreatedOn      string     `json:"created_on"`
	UpdatedOn      string     `json:"updated_on"`
}

// ContactLog records an interaction the volunteer had on behalf of a case.
type ContactLog struct {
	ID          int32  `json:"id"`
	CaseID      int32  `json:"case_id"`
	OrgID       int32  `json:"org_id"`
	AuthorID    int32  `json:"author_id"`
	ContactType string `json:"contact_type"` // visit, call, email, court, other
	ContactDate string `json:"contact_date"`
	Notes       string `json:"notes"`
	CreatedOn   string `json:"created_on"`
}

type Hearing struct {
	ID          int32  `json:"id"`
	CaseID      int32  `json:"case_id"`
	OrgID       int32  `json:"org_id"`
	HearingDate string `json:"hearing_date"`
	HearingType string `json:"hearing_type"`
	Location    string `json:"location"`
	Notes       string `json:"notes"`
	CreatedOn   string `json:"created_on"`
}
