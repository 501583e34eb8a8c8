package services

import (
	"context"
	"testing"

	"kumbhsetu/internal/models"
	"kumbhsetu/internal/repositories/memory"
	"kumbhsetu/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSOSService(t *testing.T) (*SOSService, *fakePublisher) {
	t.Helper()
	publisher := &fakePublisher{}
	svc := NewSOSService(memory.NewSOSRepository(), NewAccessControl(), publisher, newTestLogger(t))
	return svc, publisher
}

func testLocation() models.Location {
	return models.Location{Latitude: 19.9975, Longitude: 73.7898, Address: "Ramkund ghat"}
}

func TestCreateAlertDefaultsAndEvent(t *testing.T) {
	svc, publisher := newSOSService(t)
	reporter := newActor(models.RolePilgrim)

	alert, err := svc.CreateAlert(context.Background(), reporter, &CreateSOSInput{
		Location: testLocation(),
		Message:  "lost my group near the ghat",
	})
	require.NoError(t, err)

	assert.Equal(t, models.SOSStatusPending, alert.Status)
	assert.Equal(t, models.SOSPriorityHigh, alert.Priority)
	require.NotNil(t, alert.UserID)
	assert.Equal(t, reporter.ID, *alert.UserID)

	events := publisher.Events()
	require.Len(t, events, 1)
	assert.Equal(t, utils.EventSOSAlert, events[0].Event)
}

func TestCreateAlertAnonymous(t *testing.T) {
	svc, _ := newSOSService(t)

	alert, err := svc.CreateAlert(context.Background(), nil, &CreateSOSInput{
		Location: testLocation(),
		Priority: models.SOSPriorityCritical,
	})
	require.NoError(t, err)

	assert.Nil(t, alert.UserID)
	assert.Equal(t, models.SOSPriorityCritical, alert.Priority)
}

func TestCreateAlertDeactivatedReporterRejected(t *testing.T) {
	svc, publisher := newSOSService(t)

	_, err := svc.CreateAlert(context.Background(), inactiveActor(models.RolePilgrim), &CreateSOSInput{
		Location: testLocation(),
	})
	assert.ErrorIs(t, err, utils.ErrUnauthorized)
	assert.Empty(t, publisher.Events())

	// Nothing was stored either.
	_, total, err := svc.ListAlerts(context.Background(), newActor(models.RoleAdmin), nil, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)
}

func TestCreateAlertInvalidPriority(t *testing.T) {
	svc, publisher := newSOSService(t)

	_, err := svc.CreateAlert(context.Background(), nil, &CreateSOSInput{
		Location: testLocation(),
		Priority: "urgent",
	})
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
	assert.Empty(t, publisher.Events())
}

func TestAcknowledgeLifecycle(t *testing.T) {
	svc, _ := newSOSService(t)
	responder := newActor(models.RoleVolunteer)

	alert, err := svc.CreateAlert(context.Background(), nil, &CreateSOSInput{Location: testLocation()})
	require.NoError(t, err)

	acked, err := svc.Acknowledge(context.Background(), responder, alert.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SOSStatusAcknowledged, acked.Status)
	require.NotNil(t, acked.AssignedTo)
	assert.Equal(t, responder.ID, *acked.AssignedTo)

	// Acknowledging twice is a backwards move.
	_, err = svc.Acknowledge(context.Background(), responder, alert.ID)
	assert.ErrorIs(t, err, utils.ErrInvalidTransition)
}

func TestResolveLifecycle(t *testing.T) {
	svc, _ := newSOSService(t)
	responder := newActor(models.RoleMedical)

	alert, err := svc.CreateAlert(context.Background(), nil, &CreateSOSInput{Location: testLocation()})
	require.NoError(t, err)

	resolved, err := svc.Resolve(context.Background(), responder, alert.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SOSStatusResolved, resolved.Status)
	assert.NotNil(t, resolved.ResolvedAt)

	_, err = svc.Resolve(context.Background(), responder, alert.ID)
	assert.ErrorIs(t, err, utils.ErrInvalidTransition)

	_, err = svc.Acknowledge(context.Background(), responder, alert.ID)
	assert.ErrorIs(t, err, utils.ErrInvalidTransition)
}

func TestHandleSOSForbiddenForPilgrim(t *testing.T) {
	svc, _ := newSOSService(t)

	alert, err := svc.CreateAlert(context.Background(), nil, &CreateSOSInput{Location: testLocation()})
	require.NoError(t, err)

	_, err = svc.Acknowledge(context.Background(), newActor(models.RolePilgrim), alert.ID)
	assert.ErrorIs(t, err, utils.ErrForbidden)

	_, err = svc.Resolve(context.Background(), inactiveActor(models.RoleVolunteer), alert.ID)
	assert.ErrorIs(t, err, utils.ErrUnauthorized)
}

func TestMyAlertsOnlyOwn(t *testing.T) {
	svc, _ := newSOSService(t)
	alice := newActor(models.RolePilgrim)
	bob := newActor(models.RolePilgrim)

	_, err := svc.CreateAlert(context.Background(), alice, &CreateSOSInput{Location: testLocation()})
	require.NoError(t, err)
	_, err = svc.CreateAlert(context.Background(), bob, &CreateSOSInput{Location: testLocation()})
	require.NoError(t, err)
	_, err = svc.CreateAlert(context.Background(), nil, &CreateSOSInput{Location: testLocation()})
	require.NoError(t, err)

	alerts, total, err := svc.MyAlerts(context.Background(), alice, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, alerts, 1)
	assert.Equal(t, alice.ID, *alerts[0].UserID)
}

func TestGetAlertOwnerBypassesStaffGate(t *testing.T) {
	svc, _ := newSOSService(t)
	reporter := newActor(models.RolePilgrim)

	alert, err := svc.CreateAlert(context.Background(), reporter, &CreateSOSInput{Location: testLocation()})
	require.NoError(t, err)

	got, err := svc.GetAlert(context.Background(), reporter, alert.ID)
	require.NoError(t, err)
	assert.Equal(t, alert.ID, got.ID)

	// A different pilgrim cannot read it.
	_, err = svc.GetAlert(context.Background(), newActor(models.RolePilgrim), alert.ID)
	assert.ErrorIs(t, err, utils.ErrForbidden)
}
