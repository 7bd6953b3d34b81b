package workflow_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/hel20lmy-maker/Nono-Book-Team/internal/models"
	"github.com/hel20lmy-maker/Nono-Book-Team/internal/workflow"
)

func orderWith(status models.OrderStatus, createdBy uuid.UUID, designer *uuid.UUID) models.Order {
	return models.Order{
		ID:                 uuid.New(),
		Status:             status,
		CreatedBy:          createdBy,
		AssignedToDesigner: designer,
	}
}

func TestVisibleOrders(t *testing.T) {
	salesID := uuid.New()
	designerID := uuid.New()
	otherID := uuid.New()

	orders := []models.Order{
		orderWith(models.StatusNew, otherID, nil),                   // 0: new, someone else's
		orderWith(models.StatusDesigning, salesID, &designerID),     // 1: sales' own, assigned
		orderWith(models.StatusDesigning, otherID, &otherID),        // 2: another designer's
		orderWith(models.StatusPrinting, otherID, &designerID),      // 3: printing
		orderWith(models.StatusInternationalShipping, otherID, nil), // 4
		orderWith(models.StatusDelivered, salesID, nil),             // 5: sales' own, delivered
	}

	ids := func(list []models.Order) []uuid.UUID {
		var out []uuid.UUID
		for _, o := range list {
			out = append(out, o.ID)
		}
		return out
	}

	// Admin and Shipping see everything.
	assert.Len(t, workflow.VisibleOrders(models.RoleAdmin, uuid.New(), orders), len(orders))
	assert.Len(t, workflow.VisibleOrders(models.RoleShipping, uuid.New(), orders), len(orders))

	// Sales: New orders plus their own at any status.
	sales := workflow.VisibleOrders(models.RoleSales, salesID, orders)
	assert.ElementsMatch(t, []uuid.UUID{orders[0].ID, orders[1].ID, orders[5].ID}, ids(sales))

	// Designer: only orders assigned to them.
	designer := workflow.VisibleOrders(models.RoleDesigner, designerID, orders)
	assert.ElementsMatch(t, []uuid.UUID{orders[1].ID, orders[3].ID}, ids(designer))

	// Printer: the shared printing queue.
	printer := workflow.VisibleOrders(models.RolePrinter, uuid.New(), orders)
	assert.ElementsMatch(t, []uuid.UUID{orders[3].ID}, ids(printer))
}

func TestMatchesQuery(t *testing.T) {
	order := models.Order{
		ID: uuid.New(),
		Customer: models.Customer{
			Name:     "Aya Hassan",
			Phone:    "٠١٢٣٤٥٦٧٨٩",
			AltPhone: "0100200300",
		},
		Story: models.StoryDetails{OwnerName: "Omar"},
	}

	assert.True(t, workflow.MatchesQuery(&order, "aya"))
	assert.True(t, workflow.MatchesQuery(&order, "omar"))
	assert.True(t, workflow.MatchesQuery(&order, order.ID.String()[:8]))

	// Eastern Arabic digits in the record match ASCII digits in the query.
	assert.True(t, workflow.MatchesQuery(&order, "012"))
	// And the reverse: Arabic digits in the query match ASCII in the record.
	assert.True(t, workflow.MatchesQuery(&order, "٠١٠٠٢"))
	// Persian digits normalize the same way.
	assert.True(t, workflow.MatchesQuery(&order, "۰۱۲"))

	assert.False(t, workflow.MatchesQuery(&order, "nope"))
}

func TestFilterByQuery(t *testing.T) {
	match := models.Order{ID: uuid.New(), Customer: models.Customer{Name: "Aya"}}
	miss := models.Order{ID: uuid.New(), Customer: models.Customer{Name: "Basma"}}
	orders := []models.Order{match, miss}

	// Blank query returns the input untouched.
	assert.Len(t, workflow.FilterByQuery(orders, "  "), 2)

	filtered := workflow.FilterByQuery(orders, "aya")
	assert.Len(t, filtered, 1)
	assert.Equal(t, match.ID, filtered[0].ID)
}

func TestNormalizeDigits(t *testing.T) {
	assert.Equal(t, "0123456789", workflow.NormalizeDigits("٠١٢٣٤٥٦٧٨٩"))
	assert.Equal(t, "0123456789", workflow.NormalizeDigits("۰۱۲۳۴۵۶۷۸۹"))
	assert.Equal(t, "tel: 012", workflow.NormalizeDigits("tel: ٠١٢"))
	assert.Equal(t, "abc", workflow.NormalizeDigits("abc"))
}
