package accounting_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/hel20lmy-maker/Nono-Book-Team/internal/accounting"
	"github.com/hel20lmy-maker/Nono-Book-Team/internal/models"
)

type fakeLedgerStore struct {
	orders          []models.Order
	hours           map[uuid.UUID][]models.HoursLog
	bonuses         map[uuid.UUID][]models.Bonus
	userPayments    map[uuid.UUID][]models.Payment
	printerPayments map[uuid.UUID][]models.Payment
	users           map[uuid.UUID]*models.User
	printers        map[uuid.UUID]*models.Printer
}

func newFakeLedgerStore() *fakeLedgerStore {
	return &fakeLedgerStore{
		hours:           make(map[uuid.UUID][]models.HoursLog),
		bonuses:         make(map[uuid.UUID][]models.Bonus),
		userPayments:    make(map[uuid.UUID][]models.Payment),
		printerPayments: make(map[uuid.UUID][]models.Payment),
		users:           make(map[uuid.UUID]*models.User),
		printers:        make(map[uuid.UUID]*models.Printer),
	}
}

func (s *fakeLedgerStore) ListOrders() ([]models.Order, error) { return s.orders, nil }
func (s *fakeLedgerStore) ListHoursLogs(userID uuid.UUID) ([]models.HoursLog, error) {
	return s.hours[userID], nil
}
func (s *fakeLedgerStore) ListBonuses(userID uuid.UUID) ([]models.Bonus, error) {
	return s.bonuses[userID], nil
}
func (s *fakeLedgerStore) ListUserPayments(userID uuid.UUID) ([]models.Payment, error) {
	return s.userPayments[userID], nil
}
func (s *fakeLedgerStore) ListPrinterPayments(printerID uuid.UUID) ([]models.Payment, error) {
	return s.printerPayments[printerID], nil
}
func (s *fakeLedgerStore) GetUser(id uuid.UUID) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, models.ErrNotFound)
	}
	return user, nil
}
func (s *fakeLedgerStore) GetPrinter(id uuid.UUID) (*models.Printer, error) {
	printer, ok := s.printers[id]
	if !ok {
		return nil, fmt.Errorf("printer %s: %w", id, models.ErrNotFound)
	}
	return printer, nil
}

func (s *fakeLedgerStore) addOrder(status models.OrderStatus, designerID, printerID *uuid.UUID) {
	s.orders = append(s.orders, models.Order{
		ID:                 uuid.New(),
		Status:             status,
		AssignedToDesigner: designerID,
		AssignedToPrinter:  printerID,
	})
}

func TestSalesPayroll(t *testing.T) {
	store := newFakeLedgerStore()
	sales := &models.User{ID: uuid.New(), Name: "sales", Role: models.RoleSales}
	store.users[sales.ID] = sales

	now := time.Now()
	// Two shifts at different historical rates: the row's captured rate
	// counts, not the user's current one.
	store.hours[sales.ID] = []models.HoursLog{
		{ID: uuid.New(), UserID: sales.ID, Hours: 10, Rate: 5, Date: now},
		{ID: uuid.New(), UserID: sales.ID, Hours: 4, Rate: 8, Date: now},
	}
	store.bonuses[sales.ID] = []models.Bonus{
		{ID: uuid.New(), UserID: sales.ID, Amount: 30, Date: now},
	}
	store.userPayments[sales.ID] = []models.Payment{
		{ID: uuid.New(), UserID: &sales.ID, Amount: 50, Date: now},
	}

	agg := accounting.NewAggregator(store, 120)
	summary, err := agg.SalesPayroll(sales.ID)
	require.NoError(t, err)

	assert.Equal(t, 14.0, summary.TotalHours)
	assert.Equal(t, 82.0, summary.EarningsFromHours) // 10*5 + 4*8
	assert.Equal(t, 30.0, summary.TotalBonuses)
	assert.Equal(t, 112.0, summary.TotalEarnings)
	assert.Equal(t, 50.0, summary.TotalPaid)
	assert.Equal(t, 62.0, summary.Balance)
}

func TestSalesPayroll_NegativeBalanceAllowed(t *testing.T) {
	store := newFakeLedgerStore()
	sales := &models.User{ID: uuid.New(), Role: models.RoleSales}
	store.users[sales.ID] = sales
	store.userPayments[sales.ID] = []models.Payment{
		{ID: uuid.New(), UserID: &sales.ID, Amount: 200, Date: time.Now()},
	}

	agg := accounting.NewAggregator(store, 120)
	summary, err := agg.SalesPayroll(sales.ID)
	require.NoError(t, err)

	assert.Equal(t, -200.0, summary.Balance)
}

func TestDesignerEarnings_DefaultRate(t *testing.T) {
	store := newFakeLedgerStore()
	designer := &models.User{ID: uuid.New(), Role: models.RoleDesigner}
	store.users[designer.ID] = designer
	other := uuid.New()

	// Four past the Designing stage count; Designing and another designer's
	// work do not.
	store.addOrder(models.StatusPrinting, &designer.ID, nil)
	store.addOrder(models.StatusInternationalShipping, &designer.ID, nil)
	store.addOrder(models.StatusDomesticShipping, &designer.ID, nil)
	store.addOrder(models.StatusDelivered, &designer.ID, nil)
	store.addOrder(models.StatusDesigning, &designer.ID, nil)
	store.addOrder(models.StatusDelivered, &other, nil)

	agg := accounting.NewAggregator(store, 120)
	summary, err := agg.DesignerEarnings(designer.ID)
	require.NoError(t, err)

	assert.Equal(t, 4, summary.CompletedCount)
	assert.Equal(t, 120.0, summary.Rate)
	assert.Equal(t, 480.0, summary.Earnings)
	assert.Equal(t, 480.0, summary.Balance)
}

func TestDesignerEarnings_RateOverrideAndPayments(t *testing.T) {
	store := newFakeLedgerStore()
	rate := 150.0
	designer := &models.User{ID: uuid.New(), Role: models.RoleDesigner, StoryRate: &rate}
	store.users[designer.ID] = designer
	store.addOrder(models.StatusDelivered, &designer.ID, nil)
	store.addOrder(models.StatusDelivered, &designer.ID, nil)
	store.userPayments[designer.ID] = []models.Payment{
		{ID: uuid.New(), UserID: &designer.ID, Amount: 100, Date: time.Now()},
	}

	agg := accounting.NewAggregator(store, 120)
	summary, err := agg.DesignerEarnings(designer.ID)
	require.NoError(t, err)

	assert.Equal(t, 150.0, summary.Rate)
	assert.Equal(t, 300.0, summary.Earnings)
	assert.Equal(t, 100.0, summary.TotalPaid)
	assert.Equal(t, 200.0, summary.Balance)
}

func TestPrinterEarnings_CountsFromShippingOn(t *testing.T) {
	store := newFakeLedgerStore()
	printer := &models.Printer{ID: uuid.New(), Name: "Cairo Print House"}
	store.printers[printer.ID] = printer

	// Printing itself is not yet done work for the print vendor.
	store.addOrder(models.StatusPrinting, nil, &printer.ID)
	store.addOrder(models.StatusInternationalShipping, nil, &printer.ID)
	store.addOrder(models.StatusDomesticShipping, nil, &printer.ID)
	store.addOrder(models.StatusDelivered, nil, &printer.ID)

	agg := accounting.NewAggregator(store, 120)
	summary, err := agg.PrinterEarnings(printer.ID)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.CompletedCount)
	assert.Equal(t, 360.0, summary.Earnings)
}

// Same inputs, same outputs: the aggregator derives and never mutates.
func TestAggregationIsIdempotent(t *testing.T) {
	store := newFakeLedgerStore()
	designer := &models.User{ID: uuid.New(), Role: models.RoleDesigner}
	store.users[designer.ID] = designer
	store.addOrder(models.StatusDelivered, &designer.ID, nil)

	agg := accounting.NewAggregator(store, 120)
	first, err := agg.DesignerEarnings(designer.ID)
	require.NoError(t, err)
	second, err := agg.DesignerEarnings(designer.ID)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestPayeeEarnings_Dispatch(t *testing.T) {
	store := newFakeLedgerStore()
	designer := &models.User{ID: uuid.New(), Role: models.RoleDesigner}
	printer := &models.Printer{ID: uuid.New(), Name: "vendor"}
	store.users[designer.ID] = designer
	store.printers[printer.ID] = printer
	store.addOrder(models.StatusDelivered, &designer.ID, &printer.ID)

	agg := accounting.NewAggregator(store, 120)

	userSummary, err := agg.PayeeEarnings(accounting.UserPayee(designer))
	require.NoError(t, err)
	assert.Equal(t, 1, userSummary.CompletedCount)

	printerSummary, err := agg.PayeeEarnings(accounting.PrinterPayee(printer))
	require.NoError(t, err)
	assert.Equal(t, 1, printerSummary.CompletedCount)
}

func TestPayrollFromLedger_Empty(t *testing.T) {
	summary := accounting.PayrollFromLedger(nil, nil, nil)
	assert.Zero(t, summary.TotalHours)
	assert.Zero(t, summary.Balance)
}
