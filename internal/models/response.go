package models

import "github.com/google/uuid"

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type TokenResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type OrderListResponse struct {
	Orders []Order `json:"orders"`
}

// BoardColumn is one status lane of the workflow board, already filtered to
// what the requesting role may see.
type BoardColumn struct {
	Status OrderStatus `json:"status"`
	Orders []Order     `json:"orders"`
}

type BoardResponse struct {
	Columns []BoardColumn `json:"columns"`
}

// BulkFailure reports one order that a bulk action could not transition.
// Orders transitioned before the failure stay transitioned.
type BulkFailure struct {
	OrderID uuid.UUID `json:"order_id"`
	Error   string    `json:"error"`
}

type BulkResponse struct {
	Updated  []Order       `json:"updated"`
	Failures []BulkFailure `json:"failures,omitempty"`
}

type UserListResponse struct {
	Users []User `json:"users"`
}

type PrinterListResponse struct {
	Printers []Printer `json:"printers"`
}

type ShippingCompanyListResponse struct {
	Companies []ShippingCompany `json:"companies"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
