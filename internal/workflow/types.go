package workflow

// Status is the document lifecycle status.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Valid reports whether the status is a known value.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether the status ends the normal flow.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Stage is the workflow checkpoint currently holding responsibility
// for a document.
type Stage string

const (
	StageInstructor Stage = "INSTRUCTOR"
	StageDean       Stage = "DEAN"
	StageVPAA       Stage = "VPAA"
	StageVPADA      Stage = "VPADA"
	StagePresident  Stage = "PRESIDENT"
	StageRegistrar  Stage = "REGISTRAR"
	StageArchives   Stage = "ARCHIVES"
)

// Valid reports whether the stage is a known value.
func (s Stage) Valid() bool {
	switch s {
	case StageInstructor, StageDean, StageVPAA, StageVPADA, StagePresident, StageRegistrar, StageArchives:
		return true
	}
	return false
}

// Action identifies a history ledger entry type.
type Action string

const (
	ActionSubmitted         Action = "SUBMITTED"
	ActionForwarded         Action = "FORWARDED"
	ActionApproved          Action = "APPROVED"
	ActionRejected          Action = "REJECTED"
	ActionReturned          Action = "RETURNED"
	ActionSignatureAttached Action = "SIGNATURE_ATTACHED"
	ActionCommented         Action = "COMMENTED"
)

// Role is an institutional role held by a user.
type Role string

const (
	RoleInstructor  Role = "INSTRUCTOR"
	RoleDean        Role = "DEAN"
	RoleVPAA        Role = "VPAA"
	RoleVPADA       Role = "VPADA"
	RolePresident   Role = "PRESIDENT"
	RoleHR          Role = "HR"
	RoleSystemAdmin Role = "SYSTEM_ADMIN"
)

// Valid reports whether the role is a known value.
func (r Role) Valid() bool {
	switch r {
	case RoleInstructor, RoleDean, RoleVPAA, RoleVPADA, RolePresident, RoleHR, RoleSystemAdmin:
		return true
	}
	return false
}

// Admin reports whether the role carries oversight powers over every
// document regardless of assignatory membership.
func (r Role) Admin() bool {
	return r == RoleHR || r == RoleSystemAdmin
}

// RejectionReason is the required classification for a rejection.
type RejectionReason string

const (
	ReasonMissingInformation RejectionReason = "MISSING_INFORMATION"
	ReasonInvalidDetails     RejectionReason = "INVALID_DETAILS"
	ReasonPolicyViolation    RejectionReason = "POLICY_VIOLATION"
	ReasonNeedsRevision      RejectionReason = "NEEDS_REVISION"
	ReasonOther              RejectionReason = "OTHER"
)

// Valid reports whether the rejection reason is a known value.
func (r RejectionReason) Valid() bool {
	switch r {
	case ReasonMissingInformation, ReasonInvalidDetails, ReasonPolicyViolation, ReasonNeedsRevision, ReasonOther:
		return true
	}
	return false
}

// Priorities accepted on submission.
const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

// ValidPriority reports whether p is a known priority.
func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Actor is the acting identity, passed explicitly into every workflow
// operation instead of being read from ambient session state.
type Actor struct {
	ID            string
	Role          Role
	DesignationID string
}
