package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"kumbhsetu/internal/models"
	"kumbhsetu/internal/repositories/interfaces"
	"kumbhsetu/internal/utils"
	"kumbhsetu/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RegisterInput is the QR self-check-in payload. QRCode may be the raw
// code id or the JSON blob a scanner app produces.
type RegisterInput struct {
	QRCode              string              `json:"qr_code" validate:"required"`
	EntryPoint          models.EntryPoint   `json:"entry_point" validate:"required"`
	EntryPointName      string              `json:"entry_point_name"`
	RegisteredBy        *primitive.ObjectID `json:"registered_by"`
	GroupSize           int                 `json:"group_size" validate:"required,min=1,max=50"`
	LuggageCount        int                 `json:"luggage_count" validate:"required,min=1,max=20"`
	IntendedDestination string              `json:"intended_destination" validate:"required"`
	CustomDestination   string              `json:"custom_destination"`
	GroupSelfie         string              `json:"group_selfie"`
	Location            models.Location     `json:"location" validate:"required"`
	ContactInfo         models.ContactInfo  `json:"contact_info" validate:"required"`
}

// CrowdUpdatePayload rides on the crowd-update event after every
// successful registration. Timestamp is the registration's own
// registered_at, not the broadcast time.
type CrowdUpdatePayload struct {
	Destination string    `json:"destination"`
	EntryPoint  string    `json:"entry_point"`
	GroupSize   int       `json:"group_size"`
	Timestamp   time.Time `json:"timestamp"`
}

var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

type RegistrationService struct {
	repo      interfaces.RegistrationRepository
	gate      *AccessControl
	publisher EventPublisher
	logger    *logger.Logger
}

func NewRegistrationService(repo interfaces.RegistrationRepository, gate *AccessControl, publisher EventPublisher, log *logger.Logger) *RegistrationService {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &RegistrationService{
		repo:      repo,
		gate:      gate,
		publisher: publisher,
		logger:    log,
	}
}

// Register records an entry-point check-in. The write runs under a hard
// deadline: a pilgrim at a gate will not wait, so a slow store surfaces
// ErrTimeout instead of retrying. The crowd-update event goes out only
// after the record is stored.
func (s *RegistrationService) Register(ctx context.Context, input *RegisterInput) (*models.Registration, error) {
	qrCodeID, err := parseQRCode(input.QRCode)
	if err != nil {
		return nil, err
	}
	if err := validateRegistration(input); err != nil {
		return nil, err
	}

	selfie := input.GroupSelfie
	if selfie == "" {
		selfie = "captured"
	}

	registration := &models.Registration{
		QRCodeID:            qrCodeID,
		EntryPoint:          input.EntryPoint,
		EntryPointName:      input.EntryPointName,
		RegisteredBy:        input.RegisteredBy,
		GroupSize:           input.GroupSize,
		LuggageCount:        input.LuggageCount,
		IntendedDestination: input.IntendedDestination,
		CustomDestination:   input.CustomDestination,
		GroupSelfie:         selfie,
		Location:            input.Location,
		ContactInfo:         input.ContactInfo,
	}

	writeCtx, cancel := context.WithTimeout(ctx, utils.RegistrationWrite)
	defer cancel()

	if err := s.repo.Create(writeCtx, registration); err != nil {
		if errors.Is(err, utils.ErrTimeout) || errors.Is(writeCtx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("registration write deadline exceeded: %w", utils.ErrTimeout)
		}
		return nil, err
	}

	s.publisher.Publish(utils.EventCrowdUpdate, &CrowdUpdatePayload{
		Destination: registration.IntendedDestination,
		EntryPoint:  string(registration.EntryPoint),
		GroupSize:   registration.GroupSize,
		Timestamp:   registration.RegisteredAt,
	})
	s.logger.WithFields(map[string]interface{}{
		"registration_id": registration.ID.Hex(),
		"destination":     registration.IntendedDestination,
		"group_size":      registration.GroupSize,
	}).Info("Group registered")

	return registration, nil
}

func (s *RegistrationService) GetRegistration(ctx context.Context, actor *Actor, id primitive.ObjectID) (*models.Registration, error) {
	if err := s.gate.Authorize(actor, ActionListRegistrations); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *RegistrationService) ListRegistrations(ctx context.Context, actor *Actor, filter *interfaces.RegistrationFilter, params *utils.PaginationParams) ([]*models.Registration, int64, error) {
	if err := s.gate.Authorize(actor, ActionListRegistrations); err != nil {
		return nil, 0, err
	}
	return s.repo.Query(ctx, filter, params)
}

// parseQRCode accepts the raw code id or a scanner JSON blob carrying it
// in an "id" field.
func parseQRCode(raw string) (string, error) {
	if raw == utils.QRCodeID {
		return raw, nil
	}

	var blob struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal([]byte(raw), &blob); err == nil && blob.ID == utils.QRCodeID {
		return blob.ID, nil
	}

	return "", fmt.Errorf("unrecognized qr code: %w", utils.ErrInvalidInput)
}

func validateRegistration(input *RegisterInput) error {
	if !models.ValidEntryPoint(input.EntryPoint) {
		return fmt.Errorf("entry point %q: %w", input.EntryPoint, utils.ErrInvalidInput)
	}
	if input.GroupSize < utils.MinGroupSize || input.GroupSize > utils.MaxGroupSize {
		return fmt.Errorf("group size %d out of range: %w", input.GroupSize, utils.ErrInvalidInput)
	}
	if input.LuggageCount < utils.MinLuggageCount || input.LuggageCount > utils.MaxLuggageCount {
		return fmt.Errorf("luggage count %d out of range: %w", input.LuggageCount, utils.ErrInvalidInput)
	}
	if !models.ValidDestination(input.IntendedDestination) {
		return fmt.Errorf("destination %q: %w", input.IntendedDestination, utils.ErrInvalidInput)
	}
	if input.IntendedDestination == models.DestinationOther && input.CustomDestination == "" {
		return fmt.Errorf("custom destination required: %w", utils.ErrInvalidInput)
	}
	if !phonePattern.MatchString(input.ContactInfo.Phone) {
		return fmt.Errorf("phone must be 10 digits: %w", utils.ErrInvalidInput)
	}
	return nil
}
