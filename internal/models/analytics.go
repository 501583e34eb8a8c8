package models

import (
	"time"
)

// DestinationAggregate is one row of the per-destination registration
// rollup: how many groups declared the destination, how many people and
// bags that adds up to, and when the latest group checked in.
type DestinationAggregate struct {
	Destination        string    `json:"destination" bson:"_id"`
	TotalGroups        int64     `json:"total_groups" bson:"total_groups"`
	TotalPeople        int64     `json:"total_people" bson:"total_people"`
	TotalLuggage       int64     `json:"total_luggage" bson:"total_luggage"`
	LatestRegisteredAt time.Time `json:"latest_registered_at" bson:"latest_registered_at"`
}

// CrowdStatus classifies a destination by people registered toward it in
// the trailing hour.
type CrowdStatus struct {
	Destination      string    `json:"destination"`
	CrowdLevel       string    `json:"crowd_level"`
	EstimatedPeople  int64     `json:"estimated_people"`
	GroupsInLastHour int64     `json:"groups_in_last_hour"`
	Timestamp        time.Time `json:"timestamp"`
}

// AdminDashboard mirrors the admin overview counters.
type AdminDashboard struct {
	Users struct {
		Total        int64 `json:"total"`
		Volunteers   int64 `json:"volunteers"`
		MedicalStaff int64 `json:"medical_staff"`
	} `json:"users"`
	SOS struct {
		Pending  int64 `json:"pending"`
		Resolved int64 `json:"resolved"`
	} `json:"sos"`
	LostFound struct {
		Open     int64 `json:"open"`
		Resolved int64 `json:"resolved"`
	} `json:"lost_found"`
	Medical struct {
		Pending  int64 `json:"pending"`
		Resolved int64 `json:"resolved"`
	} `json:"medical"`
}

// VolunteerDashboard is the work queue summary for field staff.
type VolunteerDashboard struct {
	PendingSOS    int64 `json:"pending_sos"`
	MyAssignedSOS int64 `json:"my_assigned_sos"`
	OpenLostFound int64 `json:"open_lost_found"`
}
