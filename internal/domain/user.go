package domain

type User struct {
	ID            int32  `json:"id"`
	Email         string `json:"email"`
	Username      string `json:"username"`
	PhoneNumber   string `json:"phone_number"`
	PasswordHash  string `json:"-"`
	Name          string `json:"name"`
	SuperAdmin    bool   `json:"super_admin"` // platform-level role, not tied to any org
	MustResetPass bool   `json:"must_reset_password"`
	CreatedOn     string `json:"created_on"`
	UpdatedOn     string `json:"updated_on"`
}

type MembershipStatus string

const (
	MembershipStatusActive  MembershipStatus = "ACTIVE"
	MembershipStatusSuspend MembershipStatus = "SUSPEND"
)

type MembershipRole string

const (
	MembershipRoleAdmin      MembershipRole = "ADMIN"
	MembershipRoleSupervisor MembershipRole = "SUPERVISOR"
	MembershipRoleVolunteer  MembershipRole = "VOLUNTEER"
)

// Membership links a user to an organization with a role.
type Membership struct {
	UserID   int32            `json:"user_id"`
	OrgID    int32            `json:"org_id"`
	Role     MembershipRole   `json:"role"`
	Status   MembershipStatus `json:"status"`
	JoinedOn string           `json:"joined_on"`
}

// CanViewAuditLogs reports whether the role is allowed to read the
// organization's audit trail.
func (r MembershipRole) CanViewAuditLogs() bool {
	return r == MembershipRoleAdmin || r == MembershipRoleSupervisor
}

// CanManagePipeline reports whether the role may apply pipeline actions
// to volunteer candidates.
func (r MembershipRole) CanManagePipeline() bool {
	return r == MembershipRoleAdmin || r == MembershipRoleSupervisor
}
