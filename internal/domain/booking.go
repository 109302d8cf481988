package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingApproved  BookingStatus = "approved"
	BookingRejected  BookingStatus = "rejected"
	BookingCancelled BookingStatus = "cancelled"
)

var BookingStatuses = []BookingStatus{
	BookingPending,
	BookingApproved,
	BookingRejected,
	BookingCancelled,
}

func (s BookingStatus) Valid() bool {
	for _, v := range BookingStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// BookingTransitions lists the statuses reachable from each status.
// Every status may currently move to every status, including itself:
// a status update is a plain override. Tighten here, the wire contract
// does not change.
var BookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   BookingStatuses,
	BookingApproved:  BookingStatuses,
	BookingRejected:  BookingStatuses,
	BookingCancelled: BookingStatuses,
}

func CanTransition(from, to BookingStatus) bool {
	for _, s := range BookingTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Schedules offered by the booking form. The stored schedule is free text.
var Schedules = []ScheduleOption{
	{Value: "full-time", Label: "Full Time"},
	{Value: "part-time-morning", Label: "Part Time - Morning"},
	{Value: "part-time-afternoon", Label: "Part Time - Afternoon"},
}

type ScheduleOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type Child struct {
	Name         string `json:"name"`
	Age          int    `json:"age"`
	SpecialNeeds string `json:"specialNeeds"`
	Allergies    string `json:"allergies"`
}

type Booking struct {
	ID            string        `json:"id"`
	ParentID      string        `json:"parentId"`
	DaycareID     string        `json:"daycareId"`
	Child         Child         `json:"child"`
	StartDate     time.Time     `json:"startDate"`
	EndDate       time.Time     `json:"endDate"`
	Schedule      string        `json:"schedule"`
	Status        BookingStatus `json:"status"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	Notes         string        `json:"notes"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`

	Parent  *ParentSummary  `json:"parent,omitempty"`
	Daycare *DaycareSummary `json:"daycare,omitempty"`
}
