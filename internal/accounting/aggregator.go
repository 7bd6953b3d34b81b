// Package accounting derives payroll and earnings figures from the append-only
// ledger (hours logs, bonuses, payments) and the order history. Everything
// here is read-side: identical inputs always produce identical outputs.
package accounting

import (
	"github.com/google/uuid"
	"github.com/hel20lmy-maker/Nono-Book-Team/internal/models"
)

// Store is the read-only slice of the persistence collaborator the
// aggregator needs.
type Store interface {
	ListOrders() ([]models.Order, error)
	ListHoursLogs(userID uuid.UUID) ([]models.HoursLog, error)
	ListBonuses(userID uuid.UUID) ([]models.Bonus, error)
	ListUserPayments(userID uuid.UUID) ([]models.Payment, error)
	ListPrinterPayments(printerID uuid.UUID) ([]models.Payment, error)
	GetUser(id uuid.UUID) (*models.User, error)
	GetPrinter(id uuid.UUID) (*models.Printer, error)
	ListUsers(role models.UserRole) ([]models.User, error)
	ListPrinters() ([]models.Printer, error)
}

type Aggregator struct {
	store            Store
	defaultStoryRate float64
}

func NewAggregator(store Store, defaultStoryRate float64) *Aggregator {
	return &Aggregator{store: store, defaultStoryRate: defaultStoryRate}
}

// PayrollSummary is a Sales user's hours-based statement. Balance may be
// negative (overpaid); that is a valid state, not an error.
type PayrollSummary struct {
	TotalHours        float64 `json:"total_hours"`
	EarningsFromHours float64 `json:"earnings_from_hours"`
	TotalBonuses      float64 `json:"total_bonuses"`
	TotalEarnings     float64 `json:"total_earnings"`
	TotalPaid         float64 `json:"total_paid"`
	Balance           float64 `json:"balance"`
}

// EarningsSummary is a per-story statement for a designer or printer.
type EarningsSummary struct {
	CompletedCount int     `json:"completed_count"`
	Rate           float64 `json:"rate"`
	Earnings       float64 `json:"earnings"`
	TotalPaid      float64 `json:"total_paid"`
	Balance        float64 `json:"balance"`
}

// PayeeKind distinguishes the two payee variants explicitly instead of
// sniffing for a role field on an untyped object.
type PayeeKind int

const (
	PayeeUser PayeeKind = iota
	PayeePrinter
)

// Payee is a tagged union: exactly one of User or Printer is set, matching
// Kind.
type Payee struct {
	Kind    PayeeKind
	User    *models.User
	Printer *models.Printer
}

func UserPayee(u *models.User) Payee       { return Payee{Kind: PayeeUser, User: u} }
func PrinterPayee(p *models.Printer) Payee { return Payee{Kind: PayeePrinter, Printer: p} }

// designDoneStatuses: design work counts as done once the order has left the
// Designing stage, not only on delivery.
var designDoneStatuses = map[models.OrderStatus]bool{
	models.StatusPrinting:              true,
	models.StatusInternationalShipping: true,
	models.StatusDomesticShipping:      true,
	models.StatusDelivered:             true,
}

// printDoneStatuses: print work counts as done once the order has left the
// Printing stage.
var printDoneStatuses = map[models.OrderStatus]bool{
	models.StatusInternationalShipping: true,
	models.StatusDomesticShipping:      true,
	models.StatusDelivered:             true,
}

// SalesPayroll sums hours*rate per log entry (the rate captured at logging
// time), adds bonuses and subtracts payments.
func (a *Aggregator) SalesPayroll(userID uuid.UUID) (*PayrollSummary, error) {
	logs, err := a.store.ListHoursLogs(userID)
	if err != nil {
		return nil, err
	}
	bonuses, err := a.store.ListBonuses(userID)
	if err != nil {
		return nil, err
	}
	payments, err := a.store.ListUserPayments(userID)
	if err != nil {
		return nil, err
	}
	summary := PayrollFromLedger(logs, bonuses, payments)
	return &summary, nil
}

// PayrollFromLedger is the pure computation behind SalesPayroll.
func PayrollFromLedger(logs []models.HoursLog, bonuses []models.Bonus, payments []models.Payment) PayrollSummary {
	var s PayrollSummary
	for _, l := range logs {
		s.TotalHours += l.Hours
		s.EarningsFromHours += l.Hours * l.Rate
	}
	for _, b := range bonuses {
		s.TotalBonuses += b.Amount
	}
	for _, p := range payments {
		s.TotalPaid += p.Amount
	}
	s.TotalEarnings = s.EarningsFromHours + s.TotalBonuses
	s.Balance = s.TotalEarnings - s.TotalPaid
	return s
}

// DesignerEarnings counts the designer's orders that have moved past the
// Designing stage and prices them at the designer's story rate, falling back
// to the global default.
func (a *Aggregator) DesignerEarnings(userID uuid.UUID) (*EarningsSummary, error) {
	user, err := a.store.GetUser(userID)
	if err != nil {
		return nil, err
	}
	orders, err := a.store.ListOrders()
	if err != nil {
		return nil, err
	}
	payments, err := a.store.ListUserPayments(userID)
	if err != nil {
		return nil, err
	}

	count := 0
	for _, o := range orders {
		if o.AssignedToDesigner != nil && *o.AssignedToDesigner == userID && designDoneStatuses[o.Status] {
			count++
		}
	}
	summary := EarningsFromCount(count, a.storyRate(user.StoryRate), payments)
	return &summary, nil
}

// PrinterEarnings mirrors DesignerEarnings for print vendors, counting orders
// that have left the Printing stage.
func (a *Aggregator) PrinterEarnings(printerID uuid.UUID) (*EarningsSummary, error) {
	printer, err := a.store.GetPrinter(printerID)
	if err != nil {
		return nil, err
	}
	orders, err := a.store.ListOrders()
	if err != nil {
		return nil, err
	}
	payments, err := a.store.ListPrinterPayments(printerID)
	if err != nil {
		return nil, err
	}

	count := 0
	for _, o := range orders {
		if o.AssignedToPrinter != nil && *o.AssignedToPrinter == printerID && printDoneStatuses[o.Status] {
			count++
		}
	}
	summary := EarningsFromCount(count, a.storyRate(printer.StoryRate), payments)
	return &summary, nil
}

// PayeeEarnings dispatches on the payee variant.
func (a *Aggregator) PayeeEarnings(p Payee) (*EarningsSummary, error) {
	switch p.Kind {
	case PayeeUser:
		return a.DesignerEarnings(p.User.ID)
	case PayeePrinter:
		return a.PrinterEarnings(p.Printer.ID)
	}
	return nil, &models.ValidationError{Field: "payee"}
}

// EarningsFromCount is the pure computation behind the earnings summaries.
func EarningsFromCount(count int, rate float64, payments []models.Payment) EarningsSummary {
	s := EarningsSummary{
		CompletedCount: count,
		Rate:           rate,
		Earnings:       float64(count) * rate,
	}
	for _, p := range payments {
		s.TotalPaid += p.Amount
	}
	s.Balance = s.Earnings - s.TotalPaid
	return s
}

func (a *Aggregator) storyRate(override *float64) float64 {
	if override != nil {
		return *override
	}
	return a.defaultStoryRate
}
