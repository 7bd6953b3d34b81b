package models

import "github.com/google/uuid"

type RegisterRequest struct {
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Password   string   `json:"password"`
	Phone      string   `json:"phone"`
	Role       UserRole `json:"role"`
	HourlyRate *float64 `json:"hourly_rate,omitempty"`
	StoryRate  *float64 `json:"story_rate,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateProfileRequest struct {
	Name            string `json:"name,omitempty"`
	Phone           string `json:"phone,omitempty"`
	CurrentPassword string `json:"current_password,omitempty"`
	NewPassword     string `json:"new_password,omitempty"`
}

// CreateOrderRequest is the JSON part of the multipart order-creation form;
// reference images travel as file parts alongside it.
type CreateOrderRequest struct {
	Customer Customer     `json:"customer"`
	Story    StoryDetails `json:"story"`
	Price    float64      `json:"price"`
}

type EditOrderRequest struct {
	Customer Customer     `json:"customer"`
	Story    StoryDetails `json:"story"`
	Price    float64      `json:"price"`
}

type AssignDesignerRequest struct {
	DesignerID uuid.UUID `json:"designer_id"`
}

type CompletePrintingRequest struct {
	ShippingCompanyID uuid.UUID `json:"shipping_company_id"`
	TrackingNumber    string    `json:"tracking_number"`
}

type ConfirmArrivalRequest struct {
	ShippingCompanyID uuid.UUID `json:"shipping_company_id"`
	TrackingNumber    string    `json:"tracking_number,omitempty"`
}

type BulkAssignDesignerRequest struct {
	OrderIDs   []uuid.UUID `json:"order_ids"`
	DesignerID uuid.UUID   `json:"designer_id"`
}

type BulkDeliverRequest struct {
	OrderIDs []uuid.UUID `json:"order_ids"`
}

type AddHoursRequest struct {
	UserID uuid.UUID `json:"user_id"`
	Hours  float64   `json:"hours"`
}

type AddBonusRequest struct {
	UserID uuid.UUID `json:"user_id"`
	Amount float64   `json:"amount"`
	Notes  string    `json:"notes,omitempty"`
}

type AddPaymentRequest struct {
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	PrinterID *uuid.UUID `json:"printer_id,omitempty"`
	Amount    float64    `json:"amount"`
	Notes     string     `json:"notes,omitempty"`
}

type SetRateRequest struct {
	Rate float64 `json:"rate"`
}

type CreatePrinterRequest struct {
	Name      string   `json:"name"`
	StoryRate *float64 `json:"story_rate,omitempty"`
}

type CreateShippingCompanyRequest struct {
	Name string       `json:"name"`
	Type ShippingType `json:"type"`
}
