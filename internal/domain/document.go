package domain

type DocumentStatus string

const (
	DocumentStatusPending   DocumentStatus = "PENDING"
	DocumentStatusConfirmed DocumentStatus = "CONFIRMED"
)

// CandidateDocument is background-check paperwork uploaded for a
// volunteer candidate (consent forms, reference letters).
type CandidateDocument struct {
	ID          int32          `json:"id"`
	CandidateID int32          `json:"candidate_id"`
	OrgID       int32          `json:"org_id"`
	UploadedBy  int32          `json:"uploaded_by"`
	FileName    string         `json:"file_name"`
	ContentType string         `json:"content_type"`
	StorageKey  string         `json:"storage_key"`
	FileSize    int64          `json:"file_size"`
	Status      DocumentStatus `json:"status"`
	CreatedOn   string         `json:"created_on"`
}
