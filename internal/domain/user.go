package domain

import "time"

type UserRole string

const (
	RoleParent  UserRole = "parent"
	RoleDaycare UserRole = "daycare"
)

// ParseRole maps a login "type" onto a role. Anything other than daycare
// is treated as a parent login.
func ParseRole(s string) UserRole {
	if UserRole(s) == RoleDaycare {
		return RoleDaycare
	}
	return RoleParent
}

// HomePath is the landing view for the role.
func (r UserRole) HomePath() string {
	if r == RoleDaycare {
		return "/daycare/dashboard"
	}
	return "/dashboard"
}

type Parent struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Phone        string    `json:"phone"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Daycare struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	Phone          string    `json:"phone"`
	Address        string    `json:"address"`
	City           string    `json:"city"`
	State          string    `json:"state"`
	ZipCode        string    `json:"zipCode"`
	Capacity       int       `json:"capacity"`
	Description    string    `json:"description"`
	OperatingHours string    `json:"operatingHours"`
	AgeRange       string    `json:"ageRange"`
	LicensingInfo  string    `json:"licensingInfo"`
	IsApproved     bool      `json:"isApproved"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ParentSummary is the part of a parent a daycare sees on its bookings.
type ParentSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// DaycareSummary is the part of a daycare a parent sees on its bookings.
type DaycareSummary struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Address        string `json:"address"`
	City           string `json:"city"`
	State          string `json:"state"`
	OperatingHours string `json:"operatingHours"`
}

func (p *Parent) Summary() *ParentSummary {
	return &ParentSummary{ID: p.ID, Name: p.Name, Email: p.Email, Phone: p.Phone}
}

func (d *Daycare) Summary() *DaycareSummary {
	return &DaycareSummary{
		ID:             d.ID,
		Name:           d.Name,
		Address:        d.Address,
		City:           d.City,
		State:          d.State,
		OperatingHours: d.OperatingHours,
	}
}
