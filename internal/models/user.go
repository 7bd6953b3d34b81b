package models

import "github.com/google/uuid"

// UserRole is a mutually exclusive capability set. Roles are not hierarchical;
// Admin is the only role that bypasses the per-role gates.
type UserRole string

const (
	RoleAdmin    UserRole = "Admin"
	RoleSales    UserRole = "Sales"
	RoleDesigner UserRole = "Designer"
	RolePrinter  UserRole = "Printer"
	RoleShipping UserRole = "Shipping"
)

func AllRoles() []UserRole {
	return []UserRole{RoleAdmin, RoleSales, RoleDesigner, RolePrinter, RoleShipping}
}

func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleSales, RoleDesigner, RolePrinter, RoleShipping:
		return true
	}
	return false
}

type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Role         UserRole  `json:"role"`
	HourlyRate   *float64  `json:"hourly_rate,omitempty"` // Sales only
	StoryRate    *float64  `json:"story_rate,omitempty"`  // Designers only
	PasswordHash string    `json:"-"`
}

func (u User) Validate() error {
	switch {
	case u.Name == "":
		return &ValidationError{Field: "name"}
	case u.Email == "":
		return &ValidationError{Field: "email"}
	case !u.Role.Valid():
		return &ValidationError{Field: "role"}
	}
	return nil
}

// Printer is an external print vendor, not a system user.
type Printer struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	StoryRate *float64  `json:"story_rate,omitempty"`
}

type ShippingType string

const (
	ShippingInternational ShippingType = "International"
	ShippingDomestic      ShippingType = "Domestic"
)

type ShippingCompany struct {
	ID   uuid.UUID    `json:"id"`
	Name string       `json:"name"`
	Type ShippingType `json:"type"`
}

// Actor is the authenticated identity performing an operation. Every
// activity-log entry is stamped with its name and role.
type Actor struct {
	ID   uuid.UUID
	Name string
	Role UserRole
}
