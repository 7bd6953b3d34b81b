package handlers

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hel20lmy-maker/Nono-Book-Team/internal/middleware"
	"github.com/hel20lmy-maker/Nono-Book-Team/internal/models"
	"github.com/hel20lmy-maker/Nono-Book-Team/internal/store"
	"github.com/hel20lmy-maker/Nono-Book-Team/internal/workflow"
)

type OrdersHandler struct {
	engine *workflow.Engine
	store  *store.Store
}

func NewOrdersHandler(engine *workflow.Engine, store *store.Store) *OrdersHandler {
	return &OrdersHandler{
		engine: engine,
		store:  store,
	}
}

// CreateOrder godoc
// @Summary     Create an order
// @Description Creates a new book order from a multipart form. The "order"
// @Description field carries the JSON details; "reference_images" file parts
// @Description are uploaded before the order is stored.
// @Tags        orders
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       order formData string true "Order details (JSON)"
// @Param       reference_images formData file false "Customer reference images"
// @Success     200 {object} models.Order
// @Failure     400 {object} models.ErrorResponse
// @Failure     403 {object} models.ErrorResponse
// @Router      /orders [post]
func (h *OrdersHandler) CreateOrder(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid multipart form", Message: err.Error()})
		return
	}

	orderJSON := c.PostForm("order")
	if orderJSON == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "missing order field"})
		return
	}

	var req models.CreateOrderRequest
	if err := json.Unmarshal([]byte(orderJSON), &req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid order JSON", Message: err.Error()})
		return
	}

	var refImages []models.FileUpload
	for _, fileHeader := range form.File["reference_images"] {
		upload, err := readFormFile(fileHeader)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to read file", Message: err.Error()})
			return
		}
		refImages = append(refImages, upload)
	}

	order, err := h.engine.CreateOrder(actor, req, refImages)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// ListOrders godoc
// @Summary     List visible orders
// @Description Lists the orders the requesting role may see, optionally
// @Description narrowed by a free-text search over id, customer and story owner.
// @Tags        orders
// @Produce     json
// @Security    Bearer
// @Param       q query string false "Search text"
// @Success     200 {object} models.OrderListResponse
// @Router      /orders [get]
func (h *OrdersHandler) ListOrders(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	orders, err := h.store.ListOrders()
	if err != nil {
		respondError(c, err)
		return
	}

	visible := workflow.VisibleOrders(actor.Role, actor.ID, orders)
	visible = workflow.FilterByQuery(visible, c.Query("q"))

	c.JSON(http.StatusOK, models.OrderListResponse{Orders: visible})
}

// GetOrder godoc
// @Summary     Get an order
// @Tags        orders
// @Produce     json
// @Security    Bearer
// @Param       order_id path string true "Order ID (UUID)"
// @Success     200 {object} models.Order
// @Failure     404 {object} models.ErrorResponse
// @Router      /orders/{order_id} [get]
func (h *OrdersHandler) GetOrder(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	order, err := h.store.GetOrder(orderID)
	if err != nil {
		respondError(c, err)
		return
	}

	visible := workflow.VisibleOrders(actor.Role, actor.ID, []models.Order{*order})
	if len(visible) == 0 {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "not found"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// EditOrder godoc
// @Summary     Edit order details
// @Description Updates customer, story and price without changing the status.
// @Tags        orders
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       order_id path string true "Order ID (UUID)"
// @Param       request body models.EditOrderRequest true "Updated details"
// @Success     200 {object} models.Order
// @Router      /orders/{order_id} [patch]
func (h *OrdersHandler) EditOrder(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	var req models.EditOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	order, err := h.engine.EditOrderDetails(actor, orderID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// DeleteOrder godoc
// @Summary     Delete an order
// @Description Permanently removes the order and its uploaded files.
// @Tags        orders
// @Produce     json
// @Security    Bearer
// @Param       order_id path string true "Order ID (UUID)"
// @Success     200 {object} models.MessageResponse
// @Router      /orders/{order_id} [delete]
func (h *OrdersHandler) DeleteOrder(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	if err := h.engine.DeleteOrder(actor, orderID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "order deleted"})
}

// AssignDesigner godoc
// @Summary     Assign a designer
// @Description Moves a New order into Designing.
// @Tags        transitions
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       order_id path string true "Order ID (UUID)"
// @Param       request body models.AssignDesignerRequest true "Designer"
// @Success     200 {object} models.Order
// @Router      /orders/{order_id}/assign-designer [post]
func (h *OrdersHandler) AssignDesigner(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	var req models.AssignDesignerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	order, err := h.engine.AssignDesigner(actor, orderID, req.DesignerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// CompleteDesign godoc
// @Summary     Complete the design stage
// @Description Uploads the cover image and print-ready PDF, assigns a printer
// @Description and moves the order into Printing. All three inputs are required.
// @Tags        transitions
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       order_id path string true "Order ID (UUID)"
// @Param       printer_id formData string true "Printer ID (UUID)"
// @Param       cover_image formData file true "Cover image"
// @Param       final_pdf formData file true "Print-ready PDF"
// @Success     200 {object} models.Order
// @Router      /orders/{order_id}/complete-design [post]
func (h *OrdersHandler) CompleteDesign(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	printerID, err := uuid.Parse(c.PostForm("printer_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid printer id"})
		return
	}

	cover, err := readNamedFile(c, "cover_image")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to read cover image", Message: err.Error()})
		return
	}
	pdf, err := readNamedFile(c, "final_pdf")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to read final pdf", Message: err.Error()})
		return
	}

	order, err := h.engine.CompleteDesign(actor, orderID, printerID, cover, pdf)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// CompletePrinting godoc
// @Summary     Complete the printing stage
// @Description Hands the order to shipping. The customer's country decides
// @Description whether it enters international or domestic shipping.
// @Tags        transitions
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       order_id path string true "Order ID (UUID)"
// @Param       request body models.CompletePrintingRequest true "Shipping details"
// @Success     200 {object} models.Order
// @Router      /orders/{order_id}/complete-printing [post]
func (h *OrdersHandler) CompletePrinting(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	var req models.CompletePrintingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	order, err := h.engine.CompletePrinting(actor, orderID, req.ShippingCompanyID, req.TrackingNumber)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// ConfirmArrival godoc
// @Summary     Confirm in-country arrival
// @Description Records the handoff from the international leg to a domestic
// @Description carrier. A missing tracking number gets a generated fallback.
// @Tags        transitions
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       order_id path string true "Order ID (UUID)"
// @Param       request body models.ConfirmArrivalRequest true "Domestic carrier"
// @Success     200 {object} models.Order
// @Router      /orders/{order_id}/confirm-arrival [post]
func (h *OrdersHandler) ConfirmArrival(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	var req models.ConfirmArrivalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	order, err := h.engine.ConfirmInternationalArrival(actor, orderID, req.ShippingCompanyID, req.TrackingNumber)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// MarkDelivered godoc
// @Summary     Mark an order delivered
// @Tags        transitions
// @Produce     json
// @Security    Bearer
// @Param       order_id path string true "Order ID (UUID)"
// @Success     200 {object} models.Order
// @Router      /orders/{order_id}/deliver [post]
func (h *OrdersHandler) MarkDelivered(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	order, err := h.engine.MarkDelivered(actor, orderID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// CancelOrder godoc
// @Summary     Cancel an order
// @Description Soft side-exit: the order keeps its data and activity history.
// @Tags        transitions
// @Produce     json
// @Security    Bearer
// @Param       order_id path string true "Order ID (UUID)"
// @Success     200 {object} models.Order
// @Router      /orders/{order_id}/cancel [post]
func (h *OrdersHandler) CancelOrder(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	order, err := h.engine.CancelOrder(actor, orderID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

func parseOrderID(c *gin.Context) (uuid.UUID, bool) {
	orderID, err := uuid.Parse(c.Param("order_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid order id"})
		return uuid.Nil, false
	}
	return orderID, true
}

func readNamedFile(c *gin.Context, field string) (models.FileUpload, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		// Absent file parts surface as MissingArtifact in the engine.
		return models.FileUpload{}, nil
	}
	return readFormFile(fileHeader)
}

func readFormFile(fileHeader *multipart.FileHeader) (models.FileUpload, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return models.FileUpload{}, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return models.FileUpload{}, err
	}

	return models.FileUpload{Name: fileHeader.Filename, Data: data}, nil
}
