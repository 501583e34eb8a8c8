package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type EntryPoint string

const (
	EntryRailwayStation EntryPoint = "railway_station"
	EntryBusStand       EntryPoint = "bus_stand"
	EntryParkingArea    EntryPoint = "parking_area"
	EntryOther          EntryPoint = "other"
)

// Destinations a group can declare at check-in. "Other" requires a
// free-text CustomDestination on the registration.
const (
	DestinationOther = "Other"
)

var Destinations = []string{
	"Tapovan", "Panchvati", "Trambak", "Ramkund", "Kalaram", "Sita Gufa", DestinationOther,
}

func ValidDestination(d string) bool {
	for _, known := range Destinations {
		if d == known {
			return true
		}
	}
	return false
}

func ValidEntryPoint(e EntryPoint) bool {
	switch e {
	case EntryRailwayStation, EntryBusStand, EntryParkingArea, EntryOther:
		return true
	}
	return false
}

// Registration is an entry-point QR self-check-in for a group of
// pilgrims. Registrations are append-only: once created they are never
// updated or deleted, which is why no updated_at field exists.
// GroupSelfie is an opaque blob; upstream clients may send a real image
// or the placeholder string "captured".
type Registration struct {
	ID                  primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	QRCodeID            string              `json:"qr_code_id" bson:"qr_code_id" validate:"required"`
	EntryPoint          EntryPoint          `json:"entry_point" bson:"entry_point" validate:"required"`
	EntryPointName      string              `json:"entry_point_name" bson:"entry_point_name"`
	RegisteredBy        *primitive.ObjectID `json:"registered_by,omitempty" bson:"registered_by,omitempty"`
	GroupSize           int                 `json:"group_size" bson:"group_size" validate:"required,min=1,max=50"`
	LuggageCount        int                 `json:"luggage_count" bson:"luggage_count" validate:"required,min=1,max=20"`
	IntendedDestination string              `json:"intended_destination" bson:"intended_destination" validate:"required"`
	CustomDestination   string              `json:"custom_destination,omitempty" bson:"custom_destination,omitempty"`
	GroupSelfie         string              `json:"group_selfie,omitempty" bson:"group_selfie,omitempty"`
	Location            Location            `json:"location" bson:"location" validate:"required"`
	ContactInfo         ContactInfo         `json:"contact_info" bson:"contact_info" validate:"required"`
	RegisteredAt        time.Time           `json:"registered_at" bson:"registered_at"`
}
