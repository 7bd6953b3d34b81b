package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus values match the display strings the workflow board shows, so
// the stored value and the rendered value are the same thing.
type OrderStatus string

const (
	StatusNew                   OrderStatus = "New Order"
	StatusDesigning             OrderStatus = "Designing"
	StatusPrinting              OrderStatus = "Printing"
	StatusInternationalShipping OrderStatus = "International Shipping"
	StatusDomesticShipping      OrderStatus = "Domestic Shipping"
	StatusDelivered             OrderStatus = "Delivered"
	StatusCancelled             OrderStatus = "Cancelled"
)

// AllStatuses returns the statuses in pipeline order, Cancelled last.
func AllStatuses() []OrderStatus {
	return []OrderStatus{
		StatusNew,
		StatusDesigning,
		StatusPrinting,
		StatusInternationalShipping,
		StatusDomesticShipping,
		StatusDelivered,
		StatusCancelled,
	}
}

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusNew, StatusDesigning, StatusPrinting, StatusInternationalShipping,
		StatusDomesticShipping, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transitions leave this status.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Action identifies a guarded order mutation. Every mutating operation on an
// order maps to exactly one of these.
type Action string

const (
	ActionCreateOrder      Action = "create_order"
	ActionAssignDesigner   Action = "assign_designer"
	ActionCompleteDesign   Action = "complete_design"
	ActionCompletePrinting Action = "complete_printing"
	ActionConfirmArrival   Action = "confirm_arrival"
	ActionMarkDelivered    Action = "mark_delivered"
	ActionCancelOrder      Action = "cancel_order"
	ActionEditOrder        Action = "edit_order"
	ActionDeleteOrder      Action = "delete_order"
)

// AllActions lists every order action, used by the policy tests.
func AllActions() []Action {
	return []Action{
		ActionCreateOrder,
		ActionAssignDesigner,
		ActionCompleteDesign,
		ActionCompletePrinting,
		ActionConfirmArrival,
		ActionMarkDelivered,
		ActionCancelOrder,
		ActionEditOrder,
		ActionDeleteOrder,
	}
}

// DomesticCountry is the market the shop prints in. Orders for this country
// skip the international shipping leg.
const DomesticCountry = "مصر"

// CurrencyFor maps a customer country to its currency code.
func CurrencyFor(country string) string {
	if country == DomesticCountry {
		return "EGP"
	}
	return "LYD"
}

type Customer struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Country  string `json:"country"`
	Phone    string `json:"phone"`
	AltPhone string `json:"alt_phone,omitempty"`
}

func (c Customer) Validate() error {
	switch {
	case c.Name == "":
		return &ValidationError{Field: "customer.name"}
	case c.Address == "":
		return &ValidationError{Field: "customer.address"}
	case c.Country == "":
		return &ValidationError{Field: "customer.country"}
	case c.Phone == "":
		return &ValidationError{Field: "customer.phone"}
	}
	return nil
}

type StoryDetails struct {
	OwnerName string `json:"owner_name,omitempty"`
	Details   string `json:"details"`
	Type      string `json:"type"`
	Copies    int    `json:"copies"`
}

func (s StoryDetails) Validate() error {
	switch {
	case s.Details == "":
		return &ValidationError{Field: "story.details"}
	case s.Type == "":
		return &ValidationError{Field: "story.type"}
	case s.Copies < 1:
		return &ValidationError{Field: "story.copies"}
	}
	return nil
}

// FileRef points at an uploaded artifact in storage.
type FileRef struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type ShippingInfo struct {
	Company        string    `json:"company"`
	TrackingNumber string    `json:"tracking_number"`
	Date           time.Time `json:"date"`
}

// ActivityLogEntry is one row of an order's append-only audit trail.
// Entries are never edited or removed.
type ActivityLogEntry struct {
	User      string    `json:"user"`
	Role      UserRole  `json:"role"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
	File      *FileRef  `json:"file,omitempty"`
}

// Order is the aggregate root of the workflow: one customer's book job.
type Order struct {
	ID                        uuid.UUID          `json:"id"`
	Status                    OrderStatus        `json:"status"`
	Customer                  Customer           `json:"customer"`
	Story                     StoryDetails       `json:"story"`
	Price                     float64            `json:"price"`
	ReferenceImages           []FileRef          `json:"reference_images"`
	FinalPDF                  *FileRef           `json:"final_pdf,omitempty"`
	CoverImage                *FileRef           `json:"cover_image,omitempty"`
	CreatedAt                 time.Time          `json:"created_at"`
	CreatedBy                 uuid.UUID          `json:"created_by"`
	AssignedToDesigner        *uuid.UUID         `json:"assigned_to_designer,omitempty"`
	AssignedToPrinter         *uuid.UUID         `json:"assigned_to_printer,omitempty"`
	InternationalShippingInfo *ShippingInfo      `json:"international_shipping_info,omitempty"`
	DomesticShippingInfo      *ShippingInfo      `json:"domestic_shipping_info,omitempty"`
	DeliveryDate              *time.Time         `json:"delivery_date,omitempty"`
	ActivityLog               []ActivityLogEntry `json:"activity_log"`
}

// Clone returns a deep copy so a transition can build the next snapshot
// without touching the current one.
func (o *Order) Clone() *Order {
	next := *o
	next.ReferenceImages = append([]FileRef(nil), o.ReferenceImages...)
	next.ActivityLog = append([]ActivityLogEntry(nil), o.ActivityLog...)
	if o.FinalPDF != nil {
		pdf := *o.FinalPDF
		next.FinalPDF = &pdf
	}
	if o.CoverImage != nil {
		img := *o.CoverImage
		next.CoverImage = &img
	}
	if o.AssignedToDesigner != nil {
		id := *o.AssignedToDesigner
		next.AssignedToDesigner = &id
	}
	if o.AssignedToPrinter != nil {
		id := *o.AssignedToPrinter
		next.AssignedToPrinter = &id
	}
	if o.InternationalShippingInfo != nil {
		info := *o.InternationalShippingInfo
		next.InternationalShippingInfo = &info
	}
	if o.DomesticShippingInfo != nil {
		info := *o.DomesticShippingInfo
		next.DomesticShippingInfo = &info
	}
	if o.DeliveryDate != nil {
		d := *o.DeliveryDate
		next.DeliveryDate = &d
	}
	return &next
}

// FileRefs collects every uploaded artifact the order points at.
func (o *Order) FileRefs() []FileRef {
	refs := append([]FileRef(nil), o.ReferenceImages...)
	if o.CoverImage != nil {
		refs = append(refs, *o.CoverImage)
	}
	if o.FinalPDF != nil {
		refs = append(refs, *o.FinalPDF)
	}
	return refs
}

// FileUpload is raw file content handed to a transition before it is stored.
type FileUpload struct {
	Name string
	Data []byte
}

func (f FileUpload) Empty() bool {
	return f.Name == "" || len(f.Data) == 0
}
