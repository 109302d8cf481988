package booking

import "parvarish/internal/domain"

// Actor is the authenticated caller of a booking operation.
type Actor struct {
	UserID string
	Role   domain.UserRole
}

type ChildInput struct {
	Name         string `json:"name"`
	Age          *int   `json:"age"`
	SpecialNeeds string `json:"specialNeeds"`
	Allergies    string `json:"allergies"`
}

// CreateBookingRequest accepts the nested child object or the flat form
// fields (daycare, childName, childAge, ...) posted by the booking form.
type CreateBookingRequest struct {
	DaycareID string      `json:"daycareId"`
	Child     *ChildInput `json:"child"`
	StartDate string      `json:"startDate"`
	EndDate   string      `json:"endDate"`
	Schedule  string      `json:"schedule"`
	Notes     string      `json:"notes"`

	Daycare      string `json:"daycare"`
	ChildName    string `json:"childName"`
	ChildAge     *int   `json:"childAge"`
	SpecialNeeds string `json:"specialNeeds"`
	Allergies    string `json:"allergies"`
}

func (r CreateBookingRequest) daycareID() string {
	if r.DaycareID != "" {
		return r.DaycareID
	}
	return r.Daycare
}

func (r CreateBookingRequest) child() ChildInput {
	if r.Child != nil {
		return *r.Child
	}
	return ChildInput{
		Name:         r.ChildName,
		Age:          r.ChildAge,
		SpecialNeeds: r.SpecialNeeds,
		Allergies:    r.Allergies,
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}
