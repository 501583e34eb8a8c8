package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"kumbhsetu/internal/models"
	"kumbhsetu/internal/repositories/memory"
	"kumbhsetu/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newMedicalService(t *testing.T) (*MedicalService, *fakePublisher) {
	t.Helper()
	publisher := &fakePublisher{}
	svc := NewMedicalService(memory.NewMedicalCaseRepository(), NewAccessControl(), publisher, newTestLogger(t))
	return svc, publisher
}

func TestCreateCaseDefaults(t *testing.T) {
	svc, publisher := newMedicalService(t)
	reporter := newActor(models.RolePilgrim)

	medicalCase, err := svc.CreateCase(context.Background(), reporter, &CreateMedicalCaseInput{
		CaseType:    models.CaseTypeConsultation,
		Description: "dizziness after long walk",
		Location:    testLocation(),
	})
	require.NoError(t, err)

	assert.Equal(t, models.CaseSeverityMedium, medicalCase.Severity)
	assert.Equal(t, models.CaseStatusPending, medicalCase.Status)
	require.NotNil(t, medicalCase.PatientID)
	assert.Equal(t, reporter.ID, *medicalCase.PatientID)

	// Consultations do not page the staff channel.
	assert.Empty(t, publisher.Events())
}

func TestCreateCaseEmergencyNotifies(t *testing.T) {
	svc, publisher := newMedicalService(t)

	_, err := svc.CreateCase(context.Background(), newActor(models.RolePilgrim), &CreateMedicalCaseInput{
		CaseType:    models.CaseTypeEmergency,
		Description: "collapsed near gate",
		Location:    testLocation(),
	})
	require.NoError(t, err)

	events := publisher.Events()
	require.Len(t, events, 1)
	assert.Equal(t, utils.EventEmergency, events[0].Event)
}

func TestCreateCaseCriticalSeverityNotifies(t *testing.T) {
	svc, publisher := newMedicalService(t)

	_, err := svc.CreateCase(context.Background(), newActor(models.RoleVolunteer), &CreateMedicalCaseInput{
		CaseType:    models.CaseTypeCheckup,
		Description: "unresponsive",
		Severity:    models.CaseSeverityCritical,
		Location:    testLocation(),
	})
	require.NoError(t, err)

	events := publisher.Events()
	require.Len(t, events, 1)
	assert.Equal(t, utils.EventEmergency, events[0].Event)
}

func TestAssignCaseLifecycle(t *testing.T) {
	svc, _ := newMedicalService(t)
	medic := newActor(models.RoleMedical)
	assigneeID := primitive.NewObjectID()

	medicalCase, err := svc.CreateCase(context.Background(), newActor(models.RolePilgrim), &CreateMedicalCaseInput{
		CaseType:    models.CaseTypeMedication,
		Description: "needs insulin",
		Location:    testLocation(),
	})
	require.NoError(t, err)

	assigned, err := svc.AssignCase(context.Background(), medic, medicalCase.ID, assigneeID)
	require.NoError(t, err)
	assert.Equal(t, models.CaseStatusInProgress, assigned.Status)
	require.NotNil(t, assigned.AssignedTo)
	assert.Equal(t, assigneeID, *assigned.AssignedTo)

	_, err = svc.ResolveCase(context.Background(), medic, medicalCase.ID)
	require.NoError(t, err)

	_, err = svc.AssignCase(context.Background(), medic, medicalCase.ID, assigneeID)
	assert.ErrorIs(t, err, utils.ErrInvalidTransition)
}

func TestAddNoteAppendOnly(t *testing.T) {
	svc, _ := newMedicalService(t)
	medic := newActor(models.RoleMedical)

	medicalCase, err := svc.CreateCase(context.Background(), newActor(models.RolePilgrim), &CreateMedicalCaseInput{
		CaseType:    models.CaseTypeConsultation,
		Description: "fever",
		Location:    testLocation(),
	})
	require.NoError(t, err)

	first, err := svc.AddNote(context.Background(), medic, medicalCase.ID, "temperature 102F")
	require.NoError(t, err)
	require.Len(t, first.Notes, 1)

	second, err := svc.AddNote(context.Background(), medic, medicalCase.ID, "paracetamol given")
	require.NoError(t, err)
	require.Len(t, second.Notes, 2)
	assert.Equal(t, "temperature 102F", second.Notes[0].Note)
	assert.Equal(t, "paracetamol given", second.Notes[1].Note)
	assert.Equal(t, medic.ID, second.Notes[1].AddedBy)

	_, err = svc.AddNote(context.Background(), medic, medicalCase.ID, "")
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}

func TestAddNoteConcurrentWritersLoseNothing(t *testing.T) {
	svc, _ := newMedicalService(t)
	medic := newActor(models.RoleMedical)

	medicalCase, err := svc.CreateCase(context.Background(), medic, &CreateMedicalCaseInput{
		CaseType:    models.CaseTypeEmergency,
		Description: "multiple responders on scene",
		Location:    testLocation(),
	})
	require.NoError(t, err)

	const writers = 8
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.AddNote(context.Background(), medic, medicalCase.ID, fmt.Sprintf("observation %d", i))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	got, err := svc.GetCase(context.Background(), medic, medicalCase.ID)
	require.NoError(t, err)
	assert.Len(t, got.Notes, writers)
}

func TestAddNoteRejectedAfterResolve(t *testing.T) {
	svc, _ := newMedicalService(t)
	medic := newActor(models.RoleMedical)

	medicalCase, err := svc.CreateCase(context.Background(), newActor(models.RolePilgrim), &CreateMedicalCaseInput{
		CaseType:    models.CaseTypeCheckup,
		Description: "sprained ankle",
		Location:    testLocation(),
	})
	require.NoError(t, err)

	resolved, err := svc.ResolveCase(context.Background(), medic, medicalCase.ID)
	require.NoError(t, err)
	assert.NotNil(t, resolved.ResolvedAt)

	_, err = svc.AddNote(context.Background(), medic, medicalCase.ID, "late note")
	assert.ErrorIs(t, err, utils.ErrInvalidTransition)

	_, err = svc.ResolveCase(context.Background(), medic, medicalCase.ID)
	assert.ErrorIs(t, err, utils.ErrInvalidTransition)
}

func TestMedicalGate(t *testing.T) {
	svc, _ := newMedicalService(t)
	volunteer := newActor(models.RoleVolunteer)

	medicalCase, err := svc.CreateCase(context.Background(), volunteer, &CreateMedicalCaseInput{
		CaseType:    models.CaseTypeConsultation,
		Description: "headache",
		Location:    testLocation(),
	})
	require.NoError(t, err)

	// Volunteers can report cases but not manage them.
	_, err = svc.AddNote(context.Background(), volunteer, medicalCase.ID, "note")
	assert.ErrorIs(t, err, utils.ErrForbidden)

	_, _, err = svc.ListCases(context.Background(), volunteer, nil, nil)
	assert.ErrorIs(t, err, utils.ErrForbidden)

	// The reporter still sees their own case.
	got, err := svc.GetCase(context.Background(), volunteer, medicalCase.ID)
	require.NoError(t, err)
	assert.Equal(t, medicalCase.ID, got.ID)
}

func TestMyCasesMatchesPatientOrReporter(t *testing.T) {
	svc, _ := newMedicalService(t)
	reporter := newActor(models.RoleVolunteer)
	patientID := primitive.NewObjectID()

	_, err := svc.CreateCase(context.Background(), reporter, &CreateMedicalCaseInput{
		PatientID:   &patientID,
		CaseType:    models.CaseTypeEmergency,
		Description: "heat stroke",
		Location:    testLocation(),
	})
	require.NoError(t, err)

	cases, total, err := svc.MyCases(context.Background(), reporter, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, cases, 1)

	patient := &Actor{ID: patientID, Role: models.RolePilgrim, Active: true}
	cases, total, err = svc.MyCases(context.Background(), patient, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, cases, 1)
}
