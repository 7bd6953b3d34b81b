package workflow

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/hel20lmy-maker/Nono-Book-Team/internal/models"
	"github.com/hel20lmy-maker/Nono-Book-Team/internal/supabase"
)

// Store is the persistence collaborator the engine writes through.
type Store interface {
	GetOrder(id uuid.UUID) (*models.Order, error)
	InsertOrder(order *models.Order) error
	UpdateOrder(order *models.Order) error
	DeleteOrder(id uuid.UUID) error
	GetUser(id uuid.UUID) (*models.User, error)
	GetPrinter(id uuid.UUID) (*models.Printer, error)
	GetShippingCompany(id uuid.UUID) (*models.ShippingCompany, error)
}

// FileStore is the file-storage collaborator. Uploads happen before any order
// fields change so a stored file reference always resolves.
type FileStore interface {
	Upload(orderID uuid.UUID, filename string, data []byte) (models.FileRef, error)
	DeleteOrderFiles(orderID uuid.UUID) error
}

// EventPublisher receives order lifecycle events after a successful write.
type EventPublisher interface {
	PublishOrderEvent(orderID uuid.UUID, event string, payload map[string]interface{}) error
}

// Engine is the single choke point for order mutation. Every operation
// validates role and status, builds the next snapshot, appends exactly one
// activity-log entry and persists the full changed-field set atomically from
// the caller's point of view: either the new snapshot is stored or the order
// is unchanged.
type Engine struct {
	store  Store
	files  FileStore
	events EventPublisher
	now    func() time.Time
}

func NewEngine(store Store, files FileStore, events EventPublisher) *Engine {
	return &Engine{
		store:  store,
		files:  files,
		events: events,
		now:    time.Now,
	}
}

// CreateOrder validates the input, uploads the reference images and inserts
// the order with its first activity-log entry. The ID is generated up front
// so uploads can land under the order's storage prefix before the insert.
func (e *Engine) CreateOrder(actor models.Actor, req models.CreateOrderRequest, refImages []models.FileUpload) (*models.Order, error) {
	if !CanPerform(actor, nil, models.ActionCreateOrder) {
		return nil, &models.PermissionDenied{Role: actor.Role, Action: models.ActionCreateOrder}
	}
	if err := req.Customer.Validate(); err != nil {
		return nil, err
	}
	if err := req.Story.Validate(); err != nil {
		return nil, err
	}
	if req.Price < 0 {
		return nil, &models.ValidationError{Field: "price"}
	}

	order := &models.Order{
		ID:              uuid.New(),
		Status:          models.StatusNew,
		Customer:        req.Customer,
		Story:           req.Story,
		Price:           req.Price,
		ReferenceImages: []models.FileRef{},
		CreatedAt:       e.now(),
		CreatedBy:       actor.ID,
	}

	for _, img := range refImages {
		if img.Empty() {
			return nil, &models.MissingArtifact{Field: "reference_images"}
		}
		ref, err := e.files.Upload(order.ID, img.Name, img.Data)
		if err != nil {
			return nil, &models.UploadFailure{Err: err}
		}
		order.ReferenceImages = append(order.ReferenceImages, ref)
	}

	e.appendLog(order, actor, "Created Order", nil)

	if err := e.store.InsertOrder(order); err != nil {
		return nil, wrapStoreErr(err)
	}
	e.publish(order, "status_changed")
	return order, nil
}

// AssignDesigner moves a New order into Designing.
func (e *Engine) AssignDesigner(actor models.Actor, orderID, designerID uuid.UUID) (*models.Order, error) {
	return e.assignDesigner(actor, orderID, designerID, false)
}

func (e *Engine) assignDesigner(actor models.Actor, orderID, designerID uuid.UUID, bulk bool) (*models.Order, error) {
	order, err := e.load(orderID)
	if err != nil {
		return nil, err
	}
	if !CanPerform(actor, order, models.ActionAssignDesigner) {
		return nil, &models.PermissionDenied{Role: actor.Role, Action: models.ActionAssignDesigner}
	}
	if order.Status != models.StatusNew {
		return nil, &models.InvalidTransition{Action: models.ActionAssignDesigner, Status: order.Status}
	}
	if designerID == uuid.Nil {
		return nil, &models.MissingArtifact{Field: "designer_id"}
	}

	designer, err := e.store.GetUser(designerID)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	if designer.Role != models.RoleDesigner {
		return nil, &models.ValidationError{Field: "designer_id"}
	}

	next := order.Clone()
	next.Status = models.StatusDesigning
	next.AssignedToDesigner = &designerID

	action := fmt.Sprintf("Assigned to Designer %s", designer.Name)
	if bulk {
		action = fmt.Sprintf("Bulk assigned to Designer %s", designer.Name)
	}
	e.appendLog(next, actor, action, nil)

	return e.persist(next)
}

// CompleteDesign uploads the cover image and print-ready PDF, records the
// printer assignment and moves the order into Printing. All three inputs are
// required up front; nothing is applied until both uploads succeed.
func (e *Engine) CompleteDesign(actor models.Actor, orderID, printerID uuid.UUID, coverImage, finalPDF models.FileUpload) (*models.Order, error) {
	order, err := e.load(orderID)
	if err != nil {
		return nil, err
	}
	if !CanPerform(actor, order, models.ActionCompleteDesign) {
		return nil, &models.PermissionDenied{Role: actor.Role, Action: models.ActionCompleteDesign}
	}
	if order.Status != models.StatusDesigning {
		return nil, &models.InvalidTransition{Action: models.ActionCompleteDesign, Status: order.Status}
	}
	if printerID == uuid.Nil {
		return nil, &models.MissingArtifact{Field: "printer_id"}
	}
	if coverImage.Empty() {
		return nil, &models.MissingArtifact{Field: "cover_image"}
	}
	if finalPDF.Empty() {
		return nil, &models.MissingArtifact{Field: "final_pdf"}
	}

	printer, err := e.store.GetPrinter(printerID)
	if err != nil {
		return nil, wrapStoreErr(err)
	}

	coverRef, err := e.files.Upload(order.ID, coverImage.Name, coverImage.Data)
	if err != nil {
		return nil, &models.UploadFailure{Err: err}
	}
	pdfRef, err := e.files.Upload(order.ID, finalPDF.Name, finalPDF.Data)
	if err != nil {
		return nil, &models.UploadFailure{Err: err}
	}

	next := order.Clone()
	next.Status = models.StatusPrinting
	next.CoverImage = &coverRef
	next.FinalPDF = &pdfRef
	next.AssignedToPrinter = &printerID

	e.appendLog(next, actor, fmt.Sprintf("Completed Design & Assigned to %s", printer.Name), &pdfRef)

	return e.persist(next)
}

// CompletePrinting hands the order to shipping. The customer's country decides
// the branch once, here: domestic orders go straight to Domestic Shipping,
// everything else enters International Shipping first.
func (e *Engine) CompletePrinting(actor models.Actor, orderID, companyID uuid.UUID, trackingNumber string) (*models.Order, error) {
	order, err := e.load(orderID)
	if err != nil {
		return nil, err
	}
	if !CanPerform(actor, order, models.ActionCompletePrinting) {
		return nil, &models.PermissionDenied{Role: actor.Role, Action: models.ActionCompletePrinting}
	}
	if order.Status != models.StatusPrinting {
		return nil, &models.InvalidTransition{Action: models.ActionCompletePrinting, Status: order.Status}
	}
	if companyID == uuid.Nil {
		return nil, &models.MissingArtifact{Field: "shipping_company_id"}
	}
	if trackingNumber == "" {
		return nil, &models.MissingArtifact{Field: "tracking_number"}
	}

	company, err := e.store.GetShippingCompany(companyID)
	if err != nil {
		return nil, wrapStoreErr(err)
	}

	domestic := order.Customer.Country == models.DomesticCountry
	wantType := models.ShippingInternational
	if domestic {
		wantType = models.ShippingDomestic
	}
	if company.Type != wantType {
		return nil, &models.ValidationError{Field: "shipping_company_id"}
	}

	info := &models.ShippingInfo{
		Company:        company.Name,
		TrackingNumber: trackingNumber,
		Date:           e.now(),
	}

	next := order.Clone()
	if domestic {
		next.Status = models.StatusDomesticShipping
		next.DomesticShippingInfo = info
		e.appendLog(next, actor, fmt.Sprintf("Printing Complete. Shipped domestically via %s", company.Name), nil)
	} else {
		next.Status = models.StatusInternationalShipping
		next.InternationalShippingInfo = info
		e.appendLog(next, actor, fmt.Sprintf("Printing Complete. Shipped via %s", company.Name), nil)
	}

	return e.persist(next)
}

// ConfirmInternationalArrival records the in-country handoff to a domestic
// carrier. A missing tracking number gets a generated fallback.
func (e *Engine) ConfirmInternationalArrival(actor models.Actor, orderID, companyID uuid.UUID, trackingNumber string) (*models.Order, error) {
	order, err := e.load(orderID)
	if err != nil {
		return nil, err
	}
	if !CanPerform(actor, order, models.ActionConfirmArrival) {
		return nil, &models.PermissionDenied{Role: actor.Role, Action: models.ActionConfirmArrival}
	}
	if order.Status != models.StatusInternationalShipping {
		return nil, &models.InvalidTransition{Action: models.ActionConfirmArrival, Status: order.Status}
	}
	if companyID == uuid.Nil {
		return nil, &models.MissingArtifact{Field: "shipping_company_id"}
	}

	company, err := e.store.GetShippingCompany(companyID)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	if company.Type != models.ShippingDomestic {
		return nil, &models.ValidationError{Field: "shipping_company_id"}
	}

	if trackingNumber == "" {
		trackingNumber = fmt.Sprintf("DOM-%s", order.ID)
	}

	next := order.Clone()
	next.Status = models.StatusDomesticShipping
	next.DomesticShippingInfo = &models.ShippingInfo{
		Company:        company.Name,
		TrackingNumber: trackingNumber,
		Date:           e.now(),
	}
	e.appendLog(next, actor, fmt.Sprintf("Arrived in country. Forwarded to %s", company.Name), nil)

	return e.persist(next)
}

// MarkDelivered closes out a domestically shipped order.
func (e *Engine) MarkDelivered(actor models.Actor, orderID uuid.UUID) (*models.Order, error) {
	return e.markDelivered(actor, orderID, false)
}

func (e *Engine) markDelivered(actor models.Actor, orderID uuid.UUID, bulk bool) (*models.Order, error) {
	order, err := e.load(orderID)
	if err != nil {
		return nil, err
	}
	if !CanPerform(actor, order, models.ActionMarkDelivered) {
		return nil, &models.PermissionDenied{Role: actor.Role, Action: models.ActionMarkDelivered}
	}
	if order.Status != models.StatusDomesticShipping {
		return nil, &models.InvalidTransition{Action: models.ActionMarkDelivered, Status: order.Status}
	}

	delivered := e.now()
	next := order.Clone()
	next.Status = models.StatusDelivered
	next.DeliveryDate = &delivered

	action := "Marked as Delivered"
	if bulk {
		action = "Bulk marked as Delivered"
	}
	e.appendLog(next, actor, action, nil)

	return e.persist(next)
}

// CancelOrder is the soft side-exit: the order keeps its data and history.
// Admins may cancel from any non-terminal status; creators only from New.
func (e *Engine) CancelOrder(actor models.Actor, orderID uuid.UUID) (*models.Order, error) {
	order, err := e.load(orderID)
	if err != nil {
		return nil, err
	}
	if !CanPerform(actor, order, models.ActionCancelOrder) {
		return nil, &models.PermissionDenied{Role: actor.Role, Action: models.ActionCancelOrder}
	}
	if order.Status.Terminal() {
		return nil, &models.InvalidTransition{Action: models.ActionCancelOrder, Status: order.Status}
	}

	next := order.Clone()
	next.Status = models.StatusCancelled
	e.appendLog(next, actor, "Order Cancelled", nil)

	return e.persist(next)
}

// EditOrderDetails updates customer, story and price without changing status.
func (e *Engine) EditOrderDetails(actor models.Actor, orderID uuid.UUID, req models.EditOrderRequest) (*models.Order, error) {
	order, err := e.load(orderID)
	if err != nil {
		return nil, err
	}
	if !CanPerform(actor, order, models.ActionEditOrder) {
		return nil, &models.PermissionDenied{Role: actor.Role, Action: models.ActionEditOrder}
	}
	if err := req.Customer.Validate(); err != nil {
		return nil, err
	}
	if err := req.Story.Validate(); err != nil {
		return nil, err
	}
	if req.Price < 0 {
		return nil, &models.ValidationError{Field: "price"}
	}

	next := order.Clone()
	next.Customer = req.Customer
	next.Story = req.Story
	next.Price = req.Price
	e.appendLog(next, actor, "Order details updated", nil)

	return e.persist(next)
}

// DeleteOrder permanently removes the order and its uploaded files. The
// record ceases to exist, so this is the one mutation without a log append.
// Storage cleanup is best-effort: a failed file delete does not block the
// database delete.
func (e *Engine) DeleteOrder(actor models.Actor, orderID uuid.UUID) error {
	order, err := e.load(orderID)
	if err != nil {
		return err
	}
	if !CanPerform(actor, order, models.ActionDeleteOrder) {
		return &models.PermissionDenied{Role: actor.Role, Action: models.ActionDeleteOrder}
	}

	if err := e.files.DeleteOrderFiles(order.ID); err != nil {
		// Proceed with the database delete rather than stranding the order.
		log.Printf("Failed to delete files for order %s: %v", order.ID, err)
	}

	if err := e.store.DeleteOrder(order.ID); err != nil {
		return wrapStoreErr(err)
	}
	if e.events != nil {
		e.events.PublishOrderEvent(order.ID, "order_deleted", supabase.OrderDeletedPayload(order.ID))
	}
	return nil
}

func (e *Engine) load(orderID uuid.UUID) (*models.Order, error) {
	order, err := e.store.GetOrder(orderID)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return order, nil
}

func (e *Engine) appendLog(order *models.Order, actor models.Actor, action string, file *models.FileRef) {
	order.ActivityLog = append(order.ActivityLog, models.ActivityLogEntry{
		User:      actor.Name,
		Role:      actor.Role,
		Action:    action,
		Timestamp: e.now(),
		File:      file,
	})
}

func (e *Engine) persist(order *models.Order) (*models.Order, error) {
	if err := e.store.UpdateOrder(order); err != nil {
		return nil, wrapStoreErr(err)
	}
	e.publish(order, "status_changed")
	return order, nil
}

func (e *Engine) publish(order *models.Order, event string) {
	if e.events == nil {
		return
	}
	e.events.PublishOrderEvent(order.ID, event, supabase.StatusChangedPayload(order.ID, string(order.Status)))
}

// wrapStoreErr keeps symbolic categories (not found, conflict) intact and
// folds everything else into PersistenceFailure.
func wrapStoreErr(err error) error {
	if errors.Is(err, models.ErrNotFound) || errors.Is(err, models.ErrConflict) {
		return err
	}
	return &models.PersistenceFailure{Err: err}
}
