package services

import (
	"context"
	"testing"

	"kumbhsetu/internal/models"
	"kumbhsetu/internal/repositories/interfaces"
	"kumbhsetu/internal/repositories/memory"
	"kumbhsetu/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newLostFoundService(t *testing.T) (*LostFoundService, interfaces.RegistrationRepository) {
	t.Helper()
	registrations := memory.NewRegistrationRepository()
	svc := NewLostFoundService(memory.NewLostFoundRepository(), registrations, NewAccessControl(), newTestLogger(t))
	return svc, registrations
}

func createReport(t *testing.T, svc *LostFoundService, actor *Actor, reportType models.ReportType, isPerson bool) *models.LostFoundReport {
	t.Helper()
	report, err := svc.CreateReport(context.Background(), actor, &CreateReportInput{
		Type:        reportType,
		ItemName:    "red bag",
		Location:    testLocation(),
		ContactInfo: models.ContactInfo{Phone: "9876543210"},
		IsPerson:    isPerson,
	})
	require.NoError(t, err)
	return report
}

func seedRegistration(t *testing.T, repo interfaces.RegistrationRepository, destination string, groupSize int) *models.Registration {
	t.Helper()
	registration := &models.Registration{
		QRCodeID:            utils.QRCodeID,
		EntryPoint:          models.EntryRailwayStation,
		GroupSize:           groupSize,
		LuggageCount:        2,
		IntendedDestination: destination,
		Location:            testLocation(),
		ContactInfo:         models.ContactInfo{Phone: "9876543210", Name: "Sharma family"},
	}
	require.NoError(t, repo.Create(context.Background(), registration))
	return registration
}

func TestMatchReportsSymmetry(t *testing.T) {
	svc, _ := newLostFoundService(t)
	volunteer := newActor(models.RoleVolunteer)

	lost := createReport(t, svc, volunteer, models.ReportTypeLost, false)
	found := createReport(t, svc, volunteer, models.ReportTypeFound, false)

	require.NoError(t, svc.MatchReports(context.Background(), volunteer, lost.ID, found.ID))

	gotLost, err := svc.GetReport(context.Background(), volunteer, lost.ID)
	require.NoError(t, err)
	gotFound, err := svc.GetReport(context.Background(), volunteer, found.ID)
	require.NoError(t, err)

	assert.Equal(t, models.ReportStatusMatched, gotLost.Status)
	assert.Equal(t, models.ReportStatusMatched, gotFound.Status)
	require.NotNil(t, gotLost.MatchedWith)
	require.NotNil(t, gotFound.MatchedWith)
	assert.Equal(t, found.ID, *gotLost.MatchedWith)
	assert.Equal(t, lost.ID, *gotFound.MatchedWith)
}

func TestMatchReportsSameTypeRejectedWithoutMutation(t *testing.T) {
	svc, _ := newLostFoundService(t)
	volunteer := newActor(models.RoleVolunteer)

	lostA := createReport(t, svc, volunteer, models.ReportTypeLost, false)
	lostB := createReport(t, svc, volunteer, models.ReportTypeLost, false)

	err := svc.MatchReports(context.Background(), volunteer, lostA.ID, lostB.ID)
	require.ErrorIs(t, err, utils.ErrInvalidMatch)

	for _, id := range []primitive.ObjectID{lostA.ID, lostB.ID} {
		report, err := svc.GetReport(context.Background(), volunteer, id)
		require.NoError(t, err)
		assert.Equal(t, models.ReportStatusOpen, report.Status)
		assert.Nil(t, report.MatchedWith)
	}
}

func TestMatchReportsSelfRejected(t *testing.T) {
	svc, _ := newLostFoundService(t)
	volunteer := newActor(models.RoleVolunteer)

	lost := createReport(t, svc, volunteer, models.ReportTypeLost, false)

	err := svc.MatchReports(context.Background(), volunteer, lost.ID, lost.ID)
	assert.ErrorIs(t, err, utils.ErrInvalidMatch)
}

func TestMatchReportsMissingPeerLeavesOtherUntouched(t *testing.T) {
	svc, _ := newLostFoundService(t)
	volunteer := newActor(models.RoleVolunteer)

	lost := createReport(t, svc, volunteer, models.ReportTypeLost, false)

	err := svc.MatchReports(context.Background(), volunteer, lost.ID, primitive.NewObjectID())
	require.ErrorIs(t, err, utils.ErrNotFound)

	report, err := svc.GetReport(context.Background(), volunteer, lost.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusOpen, report.Status)
	assert.Nil(t, report.MatchedWith)
}

func TestMatchReportsAlreadyMatchedRejected(t *testing.T) {
	svc, _ := newLostFoundService(t)
	volunteer := newActor(models.RoleVolunteer)

	lost := createReport(t, svc, volunteer, models.ReportTypeLost, false)
	found := createReport(t, svc, volunteer, models.ReportTypeFound, false)
	require.NoError(t, svc.MatchReports(context.Background(), volunteer, lost.ID, found.ID))

	otherFound := createReport(t, svc, volunteer, models.ReportTypeFound, false)
	err := svc.MatchReports(context.Background(), volunteer, lost.ID, otherFound.ID)
	assert.ErrorIs(t, err, utils.ErrInvalidMatch)
}

func TestMatchReportsForbiddenForPilgrim(t *testing.T) {
	svc, _ := newLostFoundService(t)
	pilgrim := newActor(models.RolePilgrim)

	lost := createReport(t, svc, pilgrim, models.ReportTypeLost, false)
	found := createReport(t, svc, pilgrim, models.ReportTypeFound, false)

	err := svc.MatchReports(context.Background(), pilgrim, lost.ID, found.ID)
	assert.ErrorIs(t, err, utils.ErrForbidden)
}

func TestCorrelatePersonReport(t *testing.T) {
	svc, registrations := newLostFoundService(t)
	volunteer := newActor(models.RoleVolunteer)

	person := createReport(t, svc, volunteer, models.ReportTypeFound, true)
	registration := seedRegistration(t, registrations, "Tapovan", 6)

	result, err := svc.CorrelatePersonReport(context.Background(), volunteer, person.ID, registration.ID)
	require.NoError(t, err)

	assert.Equal(t, "Tapovan", result.Destination)
	assert.Equal(t, 6, result.GroupSize)
	assert.Equal(t, "9876543210", result.ContactInfo.Phone)
	require.NotNil(t, result.Report.MatchedWithRegistration)
	assert.Equal(t, registration.ID, *result.Report.MatchedWithRegistration)
	assert.Equal(t, models.ReportStatusMatched, result.Report.Status)

	// The stored report is matched too, not just the returned copy.
	updated, err := svc.GetReport(context.Background(), volunteer, person.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusMatched, updated.Status)

	// The registration side is never touched.
	stored, err := registrations.GetByID(context.Background(), registration.ID)
	require.NoError(t, err)
	assert.Equal(t, registration.GroupSize, stored.GroupSize)
	assert.Equal(t, registration.IntendedDestination, stored.IntendedDestination)
}

func TestCorrelateNonPersonReportRejected(t *testing.T) {
	svc, registrations := newLostFoundService(t)
	volunteer := newActor(models.RoleVolunteer)

	item := createReport(t, svc, volunteer, models.ReportTypeFound, false)
	registration := seedRegistration(t, registrations, "Panchvati", 3)

	_, err := svc.CorrelatePersonReport(context.Background(), volunteer, item.ID, registration.ID)
	require.ErrorIs(t, err, utils.ErrInvalidMatch)

	report, err := svc.GetReport(context.Background(), volunteer, item.ID)
	require.NoError(t, err)
	assert.Nil(t, report.MatchedWithRegistration)
}

func TestSuggestCandidatesNewestFirstCapped(t *testing.T) {
	svc, registrations := newLostFoundService(t)

	for i := 0; i < 8; i++ {
		seedRegistration(t, registrations, "Ramkund", i+1)
	}

	candidates, err := svc.SuggestCandidates(context.Background(), 50)
	require.NoError(t, err)
	require.Len(t, candidates, utils.MaxCandidateSuggestions)

	for i := 1; i < len(candidates); i++ {
		assert.False(t, candidates[i].RegisteredAt.After(candidates[i-1].RegisteredAt))
	}
}

func TestUploadPersonPhoto(t *testing.T) {
	svc, registrations := newLostFoundService(t)
	volunteer := newActor(models.RoleVolunteer)
	seedRegistration(t, registrations, "Trambak", 4)

	report, candidates, err := svc.UploadPersonPhoto(context.Background(), volunteer, &UploadPersonPhotoInput{
		Image:       "base64-photo-payload",
		Location:    testLocation(),
		ContactInfo: models.ContactInfo{Phone: "9876543210"},
	})
	require.NoError(t, err)

	assert.True(t, report.IsPerson)
	assert.Equal(t, models.ReportTypeFound, report.Type)
	assert.Equal(t, "base64-photo-payload", report.FacialData)
	assert.Equal(t, "Unidentified person", report.ItemName)
	assert.Len(t, candidates, 1)

	_, _, err = svc.UploadPersonPhoto(context.Background(), newActor(models.RolePilgrim), &UploadPersonPhotoInput{
		Image:       "x",
		Location:    testLocation(),
		ContactInfo: models.ContactInfo{Phone: "9876543210"},
	})
	assert.ErrorIs(t, err, utils.ErrForbidden)
}

func TestResolveReport(t *testing.T) {
	svc, _ := newLostFoundService(t)
	pilgrim := newActor(models.RolePilgrim)

	report := createReport(t, svc, pilgrim, models.ReportTypeLost, false)

	resolved, err := svc.ResolveReport(context.Background(), pilgrim, report.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusResolved, resolved.Status)
	assert.NotNil(t, resolved.ResolvedAt)

	_, err = svc.ResolveReport(context.Background(), pilgrim, report.ID)
	assert.ErrorIs(t, err, utils.ErrInvalidTransition)

	// A different pilgrim cannot resolve someone else's report.
	other := createReport(t, svc, pilgrim, models.ReportTypeLost, false)
	_, err = svc.ResolveReport(context.Background(), newActor(models.RolePilgrim), other.ID)
	assert.ErrorIs(t, err, utils.ErrForbidden)
}

func TestMyReports(t *testing.T) {
	svc, _ := newLostFoundService(t)
	alice := newActor(models.RolePilgrim)
	bob := newActor(models.RolePilgrim)

	createReport(t, svc, alice, models.ReportTypeLost, false)
	createReport(t, svc, bob, models.ReportTypeFound, false)

	reports, total, err := svc.MyReports(context.Background(), alice, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, reports, 1)
	assert.Equal(t, alice.ID, reports[0].ReportedBy)
}
