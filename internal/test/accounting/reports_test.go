package accounting_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/hel20lmy-maker/Nono-Book-Team/internal/accounting"
	"github.com/hel20lmy-maker/Nono-Book-Team/internal/models"
)

func (s *fakeLedgerStore) ListUsers(role models.UserRole) ([]models.User, error) {
	var out []models.User
	for _, u := range s.users {
		if role == "" || u.Role == role {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (s *fakeLedgerStore) ListPrinters() ([]models.Printer, error) {
	var out []models.Printer
	for _, p := range s.printers {
		out = append(out, *p)
	}
	return out, nil
}

func TestMonthWindow(t *testing.T) {
	start, end := accounting.MonthWindow(time.Date(2026, time.June, 17, 15, 30, 0, 0, time.UTC))

	assert.Equal(t, time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestMonthlyReport(t *testing.T) {
	store := newFakeLedgerStore()
	sales := &models.User{ID: uuid.New(), Name: "sales", Role: models.RoleSales}
	designer := &models.User{ID: uuid.New(), Name: "designer", Role: models.RoleDesigner}
	printer := &models.Printer{ID: uuid.New(), Name: "Cairo Print House"}
	store.users[sales.ID] = sales
	store.users[designer.ID] = designer
	store.printers[printer.ID] = printer

	june := time.Date(2026, time.June, 10, 12, 0, 0, 0, time.UTC)
	july := june.AddDate(0, 1, 0)
	otherCreator := uuid.New()

	store.orders = []models.Order{
		{
			ID:                 uuid.New(),
			Status:             models.StatusDelivered,
			Customer:           models.Customer{Country: models.DomesticCountry},
			Price:              200,
			CreatedAt:          june,
			CreatedBy:          sales.ID,
			AssignedToDesigner: &designer.ID,
			AssignedToPrinter:  &printer.ID,
		},
		{
			ID:                 uuid.New(),
			Status:             models.StatusDesigning,
			Customer:           models.Customer{Country: "ليبيا"},
			Price:              300,
			CreatedAt:          june,
			CreatedBy:          sales.ID,
			AssignedToDesigner: &designer.ID,
		},
		{
			ID:                 uuid.New(),
			Status:             models.StatusPrinting,
			Customer:           models.Customer{Country: "ليبيا"},
			Price:              100,
			CreatedAt:          june,
			CreatedBy:          otherCreator,
			AssignedToDesigner: &designer.ID,
			AssignedToPrinter:  &printer.ID,
		},
		// Created the following month: excluded from the window entirely.
		{
			ID:        uuid.New(),
			Status:    models.StatusDelivered,
			Customer:  models.Customer{Country: models.DomesticCountry},
			Price:     999,
			CreatedAt: july,
			CreatedBy: sales.ID,
		},
	}

	agg := accounting.NewAggregator(store, 120)
	start, end := accounting.MonthWindow(june)
	report, err := agg.MonthlyReport(start, end)
	require.NoError(t, err)

	assert.Equal(t, 3, report.TotalOrders)
	assert.Equal(t, 1, report.Delivered)
	assert.Equal(t, 0, report.Cancelled)
	assert.Equal(t, 1, report.Designing)
	assert.Equal(t, 1, report.Printing)

	assert.Equal(t, accounting.CountryStats{Count: 1, TotalValue: 200}, report.Egypt)
	assert.Equal(t, accounting.CountryStats{Count: 2, TotalValue: 400}, report.Libya)

	require.Len(t, report.Sales, 1)
	assert.Equal(t, sales.ID, report.Sales[0].ID)
	assert.Equal(t, 2, report.Sales[0].Count)

	// Delivered and Printing count as finished design work; Designing does not.
	require.Len(t, report.Designers, 1)
	assert.Equal(t, designer.ID, report.Designers[0].ID)
	assert.Equal(t, 2, report.Designers[0].Count)

	// Only the delivered order has left the Printing stage.
	require.Len(t, report.Printers, 1)
	assert.Equal(t, printer.ID, report.Printers[0].ID)
	assert.Equal(t, 1, report.Printers[0].Count)
}

func TestMonthlyReport_EmptyWindow(t *testing.T) {
	store := newFakeLedgerStore()
	store.orders = []models.Order{
		{
			ID:        uuid.New(),
			Status:    models.StatusNew,
			Customer:  models.Customer{Country: models.DomesticCountry},
			Price:     150,
			CreatedAt: time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC),
			CreatedBy: uuid.New(),
		},
	}

	agg := accounting.NewAggregator(store, 120)
	start, end := accounting.MonthWindow(time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC))
	report, err := agg.MonthlyReport(start, end)
	require.NoError(t, err)

	assert.Zero(t, report.TotalOrders)
	assert.Zero(t, report.Egypt.Count)
	assert.Empty(t, report.Sales)
	assert.Empty(t, report.Printers)
}
