package workflow

import (
	"github.com/google/uuid"
	"github.com/hel20lmy-maker/Nono-Book-Team/internal/models"
)

// BulkResult reports a bulk action's outcome per order. Orders are committed
// one at a time: a failure stops nothing and rolls nothing back.
type BulkResult struct {
	Updated  []*models.Order
	Failures []models.BulkFailure
}

// ValidateSelection enforces the selection-consistency rule: every order in a
// bulk selection must share one current status.
func ValidateSelection(orders []*models.Order) error {
	if len(orders) == 0 {
		return nil
	}
	want := orders[0].Status
	for _, o := range orders[1:] {
		if o.Status != want {
			return &models.SelectionMismatch{Want: want, Got: o.Status}
		}
	}
	return nil
}

// CanAddToSelection checks a candidate against an existing selection's status.
func CanAddToSelection(selectionStatus, candidate models.OrderStatus) error {
	if selectionStatus != candidate {
		return &models.SelectionMismatch{Want: selectionStatus, Got: candidate}
	}
	return nil
}

// BulkAssignDesigner assigns one designer across a selection of New orders.
func (e *Engine) BulkAssignDesigner(actor models.Actor, orderIDs []uuid.UUID, designerID uuid.UUID) *BulkResult {
	result := &BulkResult{}
	for _, id := range orderIDs {
		order, err := e.assignDesigner(actor, id, designerID, true)
		if err != nil {
			result.Failures = append(result.Failures, models.BulkFailure{OrderID: id, Error: err.Error()})
			continue
		}
		result.Updated = append(result.Updated, order)
	}
	return result
}

// BulkMarkDelivered delivers a selection of domestically shipped orders.
func (e *Engine) BulkMarkDelivered(actor models.Actor, orderIDs []uuid.UUID) *BulkResult {
	result := &BulkResult{}
	for _, id := range orderIDs {
		order, err := e.markDelivered(actor, id, true)
		if err != nil {
			result.Failures = append(result.Failures, models.BulkFailure{OrderID: id, Error: err.Error()})
			continue
		}
		result.Updated = append(result.Updated, order)
	}
	return result
}
