package domain

type PipelineStatus string

const (
	PipelineStatusApplied         PipelineStatus = "applied"
	PipelineStatusBackgroundCheck PipelineStatus = "background_check"
	PipelineStatusTraining        PipelineStatus = "training"
	PipelineStatusActive          PipelineStatus = "active"
	PipelineStatusRejected        PipelineStatus = "rejected"
)

// PipelineStatuses lists every stage in board order.
var PipelineStatuses = []PipelineStatus{
	PipelineStatusApplied,
	PipelineStatusBackgroundCheck,
	PipelineStatusTraining,
	PipelineStatusActive,
	PipelineStatusRejected,
}

type PipelineAction string

const (
	PipelineActionStartBackgroundCheck   PipelineAction = "start_background_check"
	PipelineActionApproveBackgroundCheck PipelineAction = "approve_background_check"
	PipelineActionFailBackgroundCheck    PipelineAction = "fail_background_check"
	PipelineActionCompleteTraining       PipelineAction = "complete_training"
	PipelineActionApproveVolunteer       PipelineAction = "approve_volunteer"
	PipelineActionRejectApplication      PipelineAction = "reject_application"
)

type VolunteerCandidate struct {
	ID               int32          `json:"id"`
	OrgID            int32          `json:"org_id"`
	Name             string         `json:"name"`
	Email            string         `json:"email"`
	PhoneNumber      string         `json:"phone_number"`
	Address          string         `json:"address"`
	References       string         `json:"references"`
	PipelineStatus   PipelineStatus `json:"pipeline_status"`
	TrainingComplete bool           `json:"training_complete"`
	RejectionReason  string         `json:"rejection_reason,omitempty"`
	UserID           *int32         `json:"user_id,omitempty"` // set when the candidate is activated
	CreatedOn        string         `json:"created_on"`
	UpdatedOn        string         `json:"updated_on"`
}

// PipelineBoard groups an organization's candidates by current stage.
type PipelineBoard struct {
	Applied         []VolunteerCandidate `json:"applied"`
	BackgroundCheck []VolunteerCandidate `json:"background_check"`
	Training        []VolunteerCandidate `json:"training"`
	Active          []VolunteerCandidate `json:"active"`
	Rejected        []VolunteerCandidate `json:"rejected"`
}

// PipelineActionResult is returned from applying a pipeline action.
// Credentials are only populated when the action created a user account.
type PipelineActionResult struct {
	Status            PipelineStatus `json:"status"`
	UserCreated       bool           `json:"user_created"`
	Username          string         `json:"username,omitempty"`
	TemporaryPassword string         `json:"temporary_password,omitempty"`
	WelcomeEmailSent  bool           `json:"welcome_email_sent"`
}
