package services

import (
	"fmt"

	"kumbhsetu/internal/models"
	"kumbhsetu/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Actor is the authenticated principal a service call runs as. Built by
// the auth middleware from the verified token plus a user lookup, so
// Active reflects the stored flag, not a token claim.
type Actor struct {
	ID     primitive.ObjectID
	Role   models.UserRole
	Active bool
}

// Action names a protected operation. Every service method that is not
// open to anonymous callers authorizes exactly one action.
type Action string

const (
	ActionListSOS   Action = "sos.list"
	ActionHandleSOS Action = "sos.handle"

	ActionListReports       Action = "lostfound.list"
	ActionMatchReports      Action = "lostfound.match"
	ActionCorrelatePerson   Action = "lostfound.correlate"
	ActionUploadPersonPhoto Action = "lostfound.upload_person"

	ActionListMedicalCases  Action = "medical.list"
	ActionManageMedicalCase Action = "medical.manage"

	ActionListRegistrations Action = "registration.list"

	ActionViewCrowdAnalytics     Action = "analytics.crowd"
	ActionViewAdminDashboard     Action = "analytics.admin_dashboard"
	ActionViewVolunteerDashboard Action = "analytics.volunteer_dashboard"

	ActionManageUsers Action = "users.manage"
)

// capabilities is the whole access policy in one place. An action absent
// from the map is denied to everyone.
var capabilities = map[Action][]models.UserRole{
	ActionListSOS:   {models.RoleVolunteer, models.RoleMedical, models.RoleAdmin},
	ActionHandleSOS: {models.RoleVolunteer, models.RoleMedical, models.RoleAdmin},

	ActionListReports:       {models.RolePilgrim, models.RoleVolunteer, models.RoleMedical, models.RoleAdmin},
	ActionMatchReports:      {models.RoleVolunteer, models.RoleAdmin},
	ActionCorrelatePerson:   {models.RoleVolunteer, models.RoleAdmin},
	ActionUploadPersonPhoto: {models.RoleVolunteer, models.RoleAdmin},

	ActionListMedicalCases:  {models.RoleMedical, models.RoleAdmin},
	ActionManageMedicalCase: {models.RoleMedical, models.RoleAdmin},

	ActionListRegistrations: {models.RoleVolunteer, models.RoleAdmin},

	ActionViewCrowdAnalytics:     {models.RoleVolunteer, models.RoleMedical, models.RoleAdmin},
	ActionViewAdminDashboard:     {models.RoleAdmin},
	ActionViewVolunteerDashboard: {models.RoleVolunteer, models.RoleMedical, models.RoleAdmin},

	ActionManageUsers: {models.RoleAdmin},
}

// AccessControl answers "may this actor perform that action". It holds
// no state; it exists as a type so services declare the dependency
// explicitly and tests can exercise the matrix directly.
type AccessControl struct{}

func NewAccessControl() *AccessControl {
	return &AccessControl{}
}

// Authorize returns nil if the actor may perform the action. A
// deactivated actor is unauthorized regardless of role; an active actor
// whose role is not in the action's allowed set is forbidden.
func (ac *AccessControl) Authorize(actor *Actor, action Action) error {
	if actor == nil || !actor.Active {
		return fmt.Errorf("action %s: %w", action, utils.ErrUnauthorized)
	}

	for _, role := range capabilities[action] {
		if actor.Role == role {
			return nil
		}
	}

	return fmt.Errorf("role %s may not perform %s: %w", actor.Role, action, utils.ErrForbidden)
}

// Allowed reports the roles permitted for an action. Used by tests and
// the admin capability listing.
func (ac *AccessControl) Allowed(action Action) []models.UserRole {
	roles := make([]models.UserRole, len(capabilities[action]))
	copy(roles, capabilities[action])
	return roles
}
