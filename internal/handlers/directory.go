package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hel20lmy-maker/Nono-Book-Team/internal/models"
	"github.com/hel20lmy-maker/Nono-Book-Team/internal/store"
)

// DirectoryHandler serves the team and vendor lookups the workflow forms
// need: users by role, print vendors and shipping companies. The write
// endpoints are admin-gated at the router by middleware.RequireRole.
type DirectoryHandler struct {
	store *store.Store
}

func NewDirectoryHandler(store *store.Store) *DirectoryHandler {
	return &DirectoryHandler{store: store}
}

// ListUsers godoc
// @Summary     List users
// @Tags        directory
// @Produce     json
// @Security    Bearer
// @Param       role query string false "Filter by role"
// @Success     200 {object} models.UserListResponse
// @Router      /users [get]
func (h *DirectoryHandler) ListUsers(c *gin.Context) {
	role := models.UserRole(c.Query("role"))
	if role != "" && !role.Valid() {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid role"})
		return
	}

	users, err := h.store.ListUsers(role)
	if err != nil {
		respondError(c, err)
		return
	}
	if users == nil {
		users = []models.User{}
	}
	c.JSON(http.StatusOK, models.UserListResponse{Users: users})
}

// DeleteUser godoc
// @Summary     Remove a user
// @Tags        directory
// @Produce     json
// @Security    Bearer
// @Param       user_id path string true "User ID (UUID)"
// @Success     200 {object} models.MessageResponse
// @Router      /users/{user_id} [delete]
func (h *DirectoryHandler) DeleteUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid user id"})
		return
	}

	if err := h.store.DeleteUser(userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "user deleted"})
}

// ListPrinters godoc
// @Summary     List print vendors
// @Tags        directory
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.PrinterListResponse
// @Router      /printers [get]
func (h *DirectoryHandler) ListPrinters(c *gin.Context) {
	printers, err := h.store.ListPrinters()
	if err != nil {
		respondError(c, err)
		return
	}
	if printers == nil {
		printers = []models.Printer{}
	}
	c.JSON(http.StatusOK, models.PrinterListResponse{Printers: printers})
}

// CreatePrinter godoc
// @Summary     Add a print vendor
// @Tags        directory
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.CreatePrinterRequest true "Vendor"
// @Success     200 {object} models.Printer
// @Router      /printers [post]
func (h *DirectoryHandler) CreatePrinter(c *gin.Context) {
	var req models.CreatePrinterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}
	if req.Name == "" {
		respondError(c, &models.ValidationError{Field: "name"})
		return
	}

	printer := models.Printer{
		ID:        uuid.New(),
		Name:      req.Name,
		StoryRate: req.StoryRate,
	}
	if err := h.store.CreatePrinter(&printer); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, printer)
}

// DeletePrinter godoc
// @Summary     Remove a print vendor
// @Tags        directory
// @Produce     json
// @Security    Bearer
// @Param       printer_id path string true "Printer ID (UUID)"
// @Success     200 {object} models.MessageResponse
// @Router      /printers/{printer_id} [delete]
func (h *DirectoryHandler) DeletePrinter(c *gin.Context) {
	printerID, err := uuid.Parse(c.Param("printer_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid printer id"})
		return
	}

	if err := h.store.DeletePrinter(printerID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "printer deleted"})
}

// ListShippingCompanies godoc
// @Summary     List shipping companies
// @Tags        directory
// @Produce     json
// @Security    Bearer
// @Param       type query string false "International or Domestic"
// @Success     200 {object} models.ShippingCompanyListResponse
// @Router      /shipping-companies [get]
func (h *DirectoryHandler) ListShippingCompanies(c *gin.Context) {
	shippingType := models.ShippingType(c.Query("type"))
	if shippingType != "" && shippingType != models.ShippingInternational && shippingType != models.ShippingDomestic {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid shipping type"})
		return
	}

	companies, err := h.store.ListShippingCompanies(shippingType)
	if err != nil {
		respondError(c, err)
		return
	}
	if companies == nil {
		companies = []models.ShippingCompany{}
	}
	c.JSON(http.StatusOK, models.ShippingCompanyListResponse{Companies: companies})
}

// CreateShippingCompany godoc
// @Summary     Add a shipping company
// @Tags        directory
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.CreateShippingCompanyRequest true "Company"
// @Success     200 {object} models.ShippingCompany
// @Router      /shipping-companies [post]
func (h *DirectoryHandler) CreateShippingCompany(c *gin.Context) {
	var req models.CreateShippingCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}
	if req.Name == "" {
		respondError(c, &models.ValidationError{Field: "name"})
		return
	}
	if req.Type != models.ShippingInternational && req.Type != models.ShippingDomestic {
		respondError(c, &models.ValidationError{Field: "type"})
		return
	}

	company := models.ShippingCompany{
		ID:   uuid.New(),
		Name: req.Name,
		Type: req.Type,
	}
	if err := h.store.CreateShippingCompany(&company); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

// DeleteShippingCompany godoc
// @Summary     Remove a shipping company
// @Tags        directory
// @Produce     json
// @Security    Bearer
// @Param       company_id path string true "Company ID (UUID)"
// @Success     200 {object} models.MessageResponse
// @Router      /shipping-companies/{company_id} [delete]
func (h *DirectoryHandler) DeleteShippingCompany(c *gin.Context) {
	companyID, err := uuid.Parse(c.Param("company_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid company id"})
		return
	}

	if err := h.store.DeleteShippingCompany(companyID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "shipping company deleted"})
}
