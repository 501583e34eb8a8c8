package services

import (
	"testing"

	"kumbhsetu/internal/models"
	"kumbhsetu/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorizeCapabilityMatrix(t *testing.T) {
	gate := NewAccessControl()

	tests := []struct {
		action  Action
		allowed []models.UserRole
	}{
		{ActionListSOS, []models.UserRole{models.RoleVolunteer, models.RoleMedical, models.RoleAdmin}},
		{ActionHandleSOS, []models.UserRole{models.RoleVolunteer, models.RoleMedical, models.RoleAdmin}},
		{ActionListReports, []models.UserRole{models.RolePilgrim, models.RoleVolunteer, models.RoleMedical, models.RoleAdmin}},
		{ActionMatchReports, []models.UserRole{models.RoleVolunteer, models.RoleAdmin}},
		{ActionCorrelatePerson, []models.UserRole{models.RoleVolunteer, models.RoleAdmin}},
		{ActionUploadPersonPhoto, []models.UserRole{models.RoleVolunteer, models.RoleAdmin}},
		{ActionListMedicalCases, []models.UserRole{models.RoleMedical, models.RoleAdmin}},
		{ActionManageMedicalCase, []models.UserRole{models.RoleMedical, models.RoleAdmin}},
		{ActionListRegistrations, []models.UserRole{models.RoleVolunteer, models.RoleAdmin}},
		{ActionViewCrowdAnalytics, []models.UserRole{models.RoleVolunteer, models.RoleMedical, models.RoleAdmin}},
		{ActionViewAdminDashboard, []models.UserRole{models.RoleAdmin}},
		{ActionViewVolunteerDashboard, []models.UserRole{models.RoleVolunteer, models.RoleMedical, models.RoleAdmin}},
		{ActionManageUsers, []models.UserRole{models.RoleAdmin}},
	}

	allRoles := []models.UserRole{models.RolePilgrim, models.RoleVolunteer, models.RoleMedical, models.RoleAdmin}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			permitted := make(map[models.UserRole]bool)
			for _, role := range tt.allowed {
				permitted[role] = true
			}

			for _, role := range allRoles {
				err := gate.Authorize(newActor(role), tt.action)
				if permitted[role] {
					assert.NoError(t, err, "role %s should be allowed", role)
				} else {
					assert.ErrorIs(t, err, utils.ErrForbidden, "role %s should be forbidden", role)
				}
			}
		})
	}
}

func TestAuthorizeInactiveActor(t *testing.T) {
	gate := NewAccessControl()

	// Deactivation overrides role, admin included.
	err := gate.Authorize(inactiveActor(models.RoleAdmin), ActionViewAdminDashboard)
	require.ErrorIs(t, err, utils.ErrUnauthorized)
	assert.NotErrorIs(t, err, utils.ErrForbidden)
}

func TestAuthorizeNilActor(t *testing.T) {
	gate := NewAccessControl()

	err := gate.Authorize(nil, ActionListSOS)
	assert.ErrorIs(t, err, utils.ErrUnauthorized)
}

func TestAuthorizeUnknownAction(t *testing.T) {
	gate := NewAccessControl()

	err := gate.Authorize(newActor(models.RoleAdmin), Action("no.such.action"))
	assert.ErrorIs(t, err, utils.ErrForbidden)
}
