package service

import "strings"

// Coarse audit event categories.
const (
	ActionTypeAuthentication = "authentication"
	ActionTypePipeline       = "pipeline"
	ActionTypeCaseManagement = "case_management"
	ActionTypeAdministration = "administration"
	ActionTypeDataExport     = "data_export"
)

// Audit action codes recorded outside the pipeline transition table.
const (
	ActionLoginSuccess    = "login_success"
	ActionLoginFailed     = "login_failed"
	ActionPasswordChanged = "password_changed"
	ActionCaseCreated     = "case_created"
	ActionCaseClosed      = "case_closed"
	ActionCaseAssigned    = "case_assigned"
	ActionOrgCreated      = "organization_created"
	ActionLogsExported    = "audit_logs_exported"
)

var actionLabels = map[string]string{
	ActionLoginSuccess:          "Logged In",
	ActionLoginFailed:           "Login Failed",
	ActionPasswordChanged:       "Password Changed",
	ActionCaseCreated:           "Case Opened",
	ActionCaseClosed:            "Case Closed",
	ActionCaseAssigned:          "Case Assigned",
	ActionOrgCreated:            "Organization Created",
	ActionLogsExported:          "Audit Logs Exported",
	"start_background_check":    "Background Check Started",
	"approve_background_check":  "Background Check Approved",
	"fail_background_check":     "Background Check Failed",
	"complete_training":         "Training Completed",
	"approve_volunteer":         "Volunteer Approved",
	"reject_application":        "Application Rejected",
}

var actionTypeLabels = map[string]string{
	ActionTypeAuthentication: "Authentication",
	ActionTypePipeline:       "Volunteer Pipeline",
	ActionTypeCaseManagement: "Case Management",
	ActionTypeAdministration: "Administration",
	ActionTypeDataExport:     "Data Export",
}

// FormatAction maps a stored action code to a human readable label.
// Unknown codes fall back to a title-cased rendering rather than failing.
func FormatAction(code string) string {
	if label, ok := actionLabels[code]; ok {
		return label
	}
	return titleCase(code)
}

// FormatActionType maps a stored action type to a human readable label.
func FormatActionType(code string) string {
	if label, ok := actionTypeLabels[code]; ok {
		return label
	}
	return titleCase(code)
}

func titleCase(code string) string {
	words := strings.FieldsFunc(code, func(r rune) bool {
		return r == '_' || r == '-' || r == '.' || r == ' '
	})
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
