package services

import (
	"context"
	"testing"
	"time"

	"kumbhsetu/internal/models"
	"kumbhsetu/internal/repositories/memory"
	"kumbhsetu/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistrationService(t *testing.T) (*RegistrationService, *fakePublisher) {
	t.Helper()
	publisher := &fakePublisher{}
	svc := NewRegistrationService(memory.NewRegistrationRepository(), NewAccessControl(), publisher, newTestLogger(t))
	return svc, publisher
}

func validRegisterInput() *RegisterInput {
	return &RegisterInput{
		QRCode:              utils.QRCodeID,
		EntryPoint:          models.EntryRailwayStation,
		GroupSize:           4,
		LuggageCount:        3,
		IntendedDestination: "Tapovan",
		Location:            testLocation(),
		ContactInfo:         models.ContactInfo{Phone: "9876543210"},
	}
}

func TestRegisterHappyPath(t *testing.T) {
	svc, publisher := newRegistrationService(t)

	registration, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	assert.Equal(t, utils.QRCodeID, registration.QRCodeID)
	assert.Equal(t, "captured", registration.GroupSelfie)
	assert.False(t, registration.RegisteredAt.IsZero())

	events := publisher.Events()
	require.Len(t, events, 1)
	assert.Equal(t, utils.EventCrowdUpdate, events[0].Event)
	payload, ok := events[0].Payload.(*CrowdUpdatePayload)
	require.True(t, ok)
	assert.Equal(t, "Tapovan", payload.Destination)
	assert.Equal(t, 4, payload.GroupSize)
	assert.Equal(t, registration.RegisteredAt, payload.Timestamp)
}

func TestRegisterAcceptsScannerJSONQR(t *testing.T) {
	svc, _ := newRegistrationService(t)

	input := validRegisterInput()
	input.QRCode = `{"id": "Kumbhbharat Registration", "version": 2}`

	registration, err := svc.Register(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, utils.QRCodeID, registration.QRCodeID)
}

func TestRegisterRejectsUnknownQR(t *testing.T) {
	svc, publisher := newRegistrationService(t)

	input := validRegisterInput()
	input.QRCode = "SomeOtherEvent"

	_, err := svc.Register(context.Background(), input)
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
	assert.Empty(t, publisher.Events())
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RegisterInput)
	}{
		{"bad entry point", func(in *RegisterInput) { in.EntryPoint = "helipad" }},
		{"group too small", func(in *RegisterInput) { in.GroupSize = 0 }},
		{"group too large", func(in *RegisterInput) { in.GroupSize = 51 }},
		{"no luggage", func(in *RegisterInput) { in.LuggageCount = 0 }},
		{"too much luggage", func(in *RegisterInput) { in.LuggageCount = 21 }},
		{"unknown destination", func(in *RegisterInput) { in.IntendedDestination = "Gangotri" }},
		{"other without custom", func(in *RegisterInput) { in.IntendedDestination = "Other" }},
		{"short phone", func(in *RegisterInput) { in.ContactInfo.Phone = "12345" }},
		{"non-numeric phone", func(in *RegisterInput) { in.ContactInfo.Phone = "98765abcde" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, publisher := newRegistrationService(t)
			input := validRegisterInput()
			tt.mutate(input)

			_, err := svc.Register(context.Background(), input)
			assert.ErrorIs(t, err, utils.ErrInvalidInput)
			assert.Empty(t, publisher.Events())
		})
	}
}

func TestRegisterOtherDestinationWithCustom(t *testing.T) {
	svc, _ := newRegistrationService(t)

	input := validRegisterInput()
	input.IntendedDestination = "Other"
	input.CustomDestination = "Someshwar temple"

	registration, err := svc.Register(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "Other", registration.IntendedDestination)
	assert.Equal(t, "Someshwar temple", registration.CustomDestination)
}

func TestRegisterDeadlineSurfacesTimeout(t *testing.T) {
	svc, publisher := newRegistrationService(t)

	// A parent whose deadline already passed makes the write context
	// expired before the store is touched.
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	_, err := svc.Register(ctx, validRegisterInput())
	assert.ErrorIs(t, err, utils.ErrTimeout)
	assert.Empty(t, publisher.Events())
}

func TestListRegistrationsGate(t *testing.T) {
	svc, _ := newRegistrationService(t)

	_, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	registrations, total, err := svc.ListRegistrations(context.Background(), newActor(models.RoleVolunteer), nil, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, registrations, 1)

	_, _, err = svc.ListRegistrations(context.Background(), newActor(models.RolePilgrim), nil, nil)
	assert.ErrorIs(t, err, utils.ErrForbidden)

	_, _, err = svc.ListRegistrations(context.Background(), newActor(models.RoleMedical), nil, nil)
	assert.ErrorIs(t, err, utils.ErrForbidden)
}
