package workflow_test

import (
	"testing"

	"github.com/opencampus/doctrack/internal/workflow"
	"github.com/stretchr/testify/assert"
)

func TestCapabilityForSubmitter(t *testing.T) {
	actor := workflow.Actor{ID: "u1", Role: workflow.RoleInstructor}
	capability := workflow.CapabilityFor(actor, "u1")

	assert.Equal(t, "submitter", capability.Name())
	assert.False(t, capability.CanAct(true), "submitters never act on their own documents")
	assert.True(t, capability.CanComment(false))
}

// Ownership is checked before role, so an admin submitting their own
// document still cannot approve it.
func TestCapabilityOwnershipBeatsAdminRole(t *testing.T) {
	actor := workflow.Actor{ID: "u1", Role: workflow.RoleSystemAdmin}
	capability := workflow.CapabilityFor(actor, "u1")

	assert.Equal(t, "submitter", capability.Name())
	assert.False(t, capability.CanAct(true))
}

func TestCapabilityForAdmin(t *testing.T) {
	for _, role := range []workflow.Role{workflow.RoleHR, workflow.RoleSystemAdmin} {
		capability := workflow.CapabilityFor(workflow.Actor{ID: "u1", Role: role}, "u2")
		assert.Equal(t, "admin_override", capability.Name())
		assert.True(t, capability.CanAct(false))
		assert.True(t, capability.CanComment(false))
	}
}

func TestCapabilityForStageAssignatory(t *testing.T) {
	capability := workflow.CapabilityFor(workflow.Actor{ID: "u1", Role: workflow.RoleDean}, "u2")
	assert.Equal(t, "stage_assignatory", capability.Name())

	assert.True(t, capability.CanAct(true))
	assert.False(t, capability.CanAct(false))
	assert.True(t, capability.CanComment(true))
	assert.False(t, capability.CanComment(false))
}
