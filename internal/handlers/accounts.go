package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hel20lmy-maker/Nono-Book-Team/internal/accounting"
	"github.com/hel20lmy-maker/Nono-Book-Team/internal/middleware"
	"github.com/hel20lmy-maker/Nono-Book-Team/internal/models"
	"github.com/hel20lmy-maker/Nono-Book-Team/internal/store"
)

type AccountsHandler struct {
	aggregator *accounting.Aggregator
	store      *store.Store
}

func NewAccountsHandler(aggregator *accounting.Aggregator, store *store.Store) *AccountsHandler {
	return &AccountsHandler{
		aggregator: aggregator,
		store:      store,
	}
}

// Payroll godoc
// @Summary     Sales payroll summary
// @Description Hours-based earnings, bonuses and payments for a Sales user.
// @Description Admins may view anyone; others only themselves.
// @Tags        accounts
// @Produce     json
// @Security    Bearer
// @Param       user_id path string true "User ID (UUID)"
// @Success     200 {object} accounting.PayrollSummary
// @Router      /accounts/payroll/{user_id} [get]
func (h *AccountsHandler) Payroll(c *gin.Context) {
	userID, ok := h.selfOrAdmin(c, "user_id")
	if !ok {
		return
	}

	summary, err := h.aggregator.SalesPayroll(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// DesignerEarnings godoc
// @Summary     Designer earnings summary
// @Tags        accounts
// @Produce     json
// @Security    Bearer
// @Param       user_id path string true "User ID (UUID)"
// @Success     200 {object} accounting.EarningsSummary
// @Router      /accounts/earnings/designer/{user_id} [get]
func (h *AccountsHandler) DesignerEarnings(c *gin.Context) {
	userID, ok := h.selfOrAdmin(c, "user_id")
	if !ok {
		return
	}

	summary, err := h.aggregator.DesignerEarnings(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// PrinterEarnings godoc
// @Summary     Printer earnings summary
// @Description Printers are external vendors, so this view is admin only.
// @Tags        accounts
// @Produce     json
// @Security    Bearer
// @Param       printer_id path string true "Printer ID (UUID)"
// @Success     200 {object} accounting.EarningsSummary
// @Router      /accounts/earnings/printer/{printer_id} [get]
func (h *AccountsHandler) PrinterEarnings(c *gin.Context) {
	printerID, err := uuid.Parse(c.Param("printer_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid printer id"})
		return
	}

	summary, err := h.aggregator.PrinterEarnings(printerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// MonthlyReport godoc
// @Summary     Monthly activity report
// @Description Country, status and per-contributor stats for orders created in
// @Description one calendar month. Defaults to the current month. Admin only.
// @Tags        accounts
// @Produce     json
// @Security    Bearer
// @Param       month query string false "Month (YYYY-MM)"
// @Success     200 {object} accounting.MonthlyReport
// @Router      /accounts/reports [get]
func (h *AccountsHandler) MonthlyReport(c *gin.Context) {
	at := time.Now()
	if raw := c.Query("month"); raw != "" {
		parsed, err := time.Parse("2006-01", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid month, expected YYYY-MM"})
			return
		}
		at = parsed
	}

	start, end := accounting.MonthWindow(at)
	report, err := h.aggregator.MonthlyReport(start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// AddHours godoc
// @Summary     Log billable hours
// @Description Records hours for a Sales user at their current hourly rate.
// @Description The rate is captured on the row, so later rate changes do not
// @Description rewrite past earnings.
// @Tags        accounts
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.AddHoursRequest true "Hours"
// @Success     200 {object} models.HoursLog
// @Router      /accounts/hours [post]
func (h *AccountsHandler) AddHours(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	var req models.AddHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}
	if actor.Role != models.RoleAdmin && actor.ID != req.UserID {
		c.JSON(http.StatusForbidden, models.ErrorResponse{Error: "cannot log hours for another user"})
		return
	}
	if req.Hours <= 0 {
		respondError(c, &models.ValidationError{Field: "hours"})
		return
	}

	user, err := h.store.GetUser(req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	if user.Role != models.RoleSales {
		respondError(c, &models.ValidationError{Field: "user_id"})
		return
	}

	rate := 0.0
	if user.HourlyRate != nil {
		rate = *user.HourlyRate
	}

	log := models.HoursLog{
		ID:     uuid.New(),
		UserID: req.UserID,
		Hours:  req.Hours,
		Rate:   rate,
		Date:   time.Now(),
	}
	if err := h.store.InsertHoursLog(&log); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, log)
}

// AddBonus godoc
// @Summary     Grant a bonus
// @Tags        accounts
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.AddBonusRequest true "Bonus"
// @Success     200 {object} models.Bonus
// @Router      /accounts/bonuses [post]
func (h *AccountsHandler) AddBonus(c *gin.Context) {
	var req models.AddBonusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}
	if req.Amount <= 0 {
		respondError(c, &models.ValidationError{Field: "amount"})
		return
	}
	if _, err := h.store.GetUser(req.UserID); err != nil {
		respondError(c, err)
		return
	}

	bonus := models.Bonus{
		ID:     uuid.New(),
		UserID: req.UserID,
		Amount: req.Amount,
		Date:   time.Now(),
		Notes:  req.Notes,
	}
	if err := h.store.InsertBonus(&bonus); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, bonus)
}

// AddPayment godoc
// @Summary     Record a payment
// @Description Records money paid out to a team member or a print vendor.
// @Description Exactly one of user_id and printer_id must be set.
// @Tags        accounts
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.AddPaymentRequest true "Payment"
// @Success     200 {object} models.Payment
// @Router      /accounts/payments [post]
func (h *AccountsHandler) AddPayment(c *gin.Context) {
	var req models.AddPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	payment := models.Payment{
		ID:        uuid.New(),
		UserID:    req.UserID,
		PrinterID: req.PrinterID,
		Amount:    req.Amount,
		Date:      time.Now(),
		Notes:     req.Notes,
	}
	if err := payment.Validate(); err != nil {
		respondError(c, err)
		return
	}

	if payment.UserID != nil {
		if _, err := h.store.GetUser(*payment.UserID); err != nil {
			respondError(c, err)
			return
		}
	} else {
		if _, err := h.store.GetPrinter(*payment.PrinterID); err != nil {
			respondError(c, err)
			return
		}
	}

	if err := h.store.InsertPayment(&payment); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, payment)
}

// SetHourlyRate godoc
// @Summary     Set a Sales user's hourly rate
// @Description Applies to hours logged from now on; past rows keep the rate
// @Description they were logged at.
// @Tags        accounts
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       user_id path string true "User ID (UUID)"
// @Param       request body models.SetRateRequest true "Rate"
// @Success     200 {object} models.MessageResponse
// @Router      /accounts/rates/hourly/{user_id} [put]
func (h *AccountsHandler) SetHourlyRate(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid user id"})
		return
	}

	var req models.SetRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}
	if req.Rate < 0 {
		respondError(c, &models.ValidationError{Field: "rate"})
		return
	}

	if err := h.store.SetUserHourlyRate(userID, req.Rate); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "rate updated"})
}

// SetStoryRate godoc
// @Summary     Set a per-story rate
// @Description Sets the story rate for a designer (payee_type "designer") or
// @Description a print vendor (payee_type "printer").
// @Tags        accounts
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       payee_type path string true "designer or printer"
// @Param       payee_id path string true "Payee ID (UUID)"
// @Param       request body models.SetRateRequest true "Rate"
// @Success     200 {object} models.MessageResponse
// @Router      /accounts/rates/story/{payee_type}/{payee_id} [put]
func (h *AccountsHandler) SetStoryRate(c *gin.Context) {
	payeeID, err := uuid.Parse(c.Param("payee_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid payee id"})
		return
	}

	var req models.SetRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}
	if req.Rate < 0 {
		respondError(c, &models.ValidationError{Field: "rate"})
		return
	}

	switch c.Param("payee_type") {
	case "designer":
		err = h.store.SetUserStoryRate(payeeID, req.Rate)
	case "printer":
		err = h.store.SetPrinterStoryRate(payeeID, req.Rate)
	default:
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid payee type"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "rate updated"})
}

func (h *AccountsHandler) selfOrAdmin(c *gin.Context, param string) (uuid.UUID, bool) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid user id"})
		return uuid.Nil, false
	}

	if actor.Role != models.RoleAdmin && actor.ID != userID {
		c.JSON(http.StatusForbidden, models.ErrorResponse{Error: "cannot view another user's accounts"})
		return uuid.Nil, false
	}
	return userID, true
}
