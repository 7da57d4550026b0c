package workflow

// Capability is the closed set of role-capability variants replacing
// scattered role comparisons. Exactly one capability applies to an
// actor for a given document.
type Capability interface {
	// Name identifies the variant.
	Name() string
	// CanAct reports whether the actor may apply a state-changing
	// transition (forward/approve/reject/return/sign) given the current
	// stage assignatory membership.
	CanAct(member bool) bool
	// CanComment reports whether the actor may comment, given whether
	// they were ever an assignatory on the document.
	CanComment(everMember bool) bool
}

// Submitter: read and comment rights on the own document, never write
// or approve rights. Self-approval is impossible even for admins, so
// this variant wins the dispatch for the document owner.
type Submitter struct{}

func (Submitter) Name() string { return "submitter" }
func (Submitter) CanAct(bool) bool { return false }
func (Submitter) CanComment(bool) bool { return true }

// StageAssignatory: full transition rights while a member of the
// current stage's assignatory set.
type StageAssignatory struct{}

func (StageAssignatory) Name() string { return "stage_assignatory" }
func (StageAssignatory) CanAct(member bool) bool { return member }
func (StageAssignatory) CanComment(ever bool) bool { return ever }

// AdminOverride: HR and system administrators act on any document at
// any stage without appearing in the assignatory set.
type AdminOverride struct{}

func (AdminOverride) Name() string { return "admin_override" }
func (AdminOverride) CanAct(bool) bool { return true }
func (AdminOverride) CanComment(bool) bool { return true }

// CapabilityFor dispatches an actor to its capability variant for the
// document submitted by submitterID. Ownership is checked first so a
// submitter never gains write rights through an admin role.
func CapabilityFor(actor Actor, submitterID string) Capability {
	if actor.ID == submitterID {
		return Submitter{}
	}
	if actor.Role.Admin() {
		return AdminOverride{}
	}
	return StageAssignatory{}
}
