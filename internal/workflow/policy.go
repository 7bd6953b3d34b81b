package workflow

import (
	"github.com/hel20lmy-maker/Nono-Book-Team/internal/models"
)

// CanPerform is the pure authorization gate for order actions. It decides on
// role and ownership only; status preconditions belong to the engine.
//
// Ownership rules ride on the order: cancel/edit/delete are creator rights
// with status constraints, and a designer may only complete designs assigned
// to them. Printers are deliberately not restricted to assigned orders: the
// print queue is shared, any printer account may finish any printing order.
func CanPerform(actor models.Actor, order *models.Order, action models.Action) bool {
	if actor.Role == models.RoleAdmin {
		return true
	}

	switch action {
	case models.ActionCreateOrder:
		return actor.Role == models.RoleSales

	case models.ActionAssignDesigner:
		return actor.Role == models.RoleSales

	case models.ActionCompleteDesign:
		return actor.Role == models.RoleDesigner &&
			order != nil &&
			order.AssignedToDesigner != nil &&
			*order.AssignedToDesigner == actor.ID

	case models.ActionCompletePrinting:
		return actor.Role == models.RolePrinter

	case models.ActionConfirmArrival, models.ActionMarkDelivered:
		return actor.Role == models.RoleShipping

	case models.ActionCancelOrder:
		// Creators may cancel only while the order is still New.
		return order != nil && order.CreatedBy == actor.ID && order.Status == models.StatusNew

	case models.ActionEditOrder:
		return order != nil && order.CreatedBy == actor.ID && order.Status != models.StatusDelivered

	case models.ActionDeleteOrder:
		return order != nil && order.CreatedBy == actor.ID &&
			(order.Status == models.StatusNew || order.Status == models.StatusCancelled)
	}

	return false
}

// VisibleStatuses lists the board columns a role works with.
func VisibleStatuses(role models.UserRole) []models.OrderStatus {
	switch role {
	case models.RoleAdmin:
		return models.AllStatuses()
	case models.RoleSales:
		return []models.OrderStatus{models.StatusNew}
	case models.RoleDesigner:
		return []models.OrderStatus{models.StatusDesigning}
	case models.RolePrinter:
		return []models.OrderStatus{models.StatusPrinting}
	case models.RoleShipping:
		return []models.OrderStatus{models.StatusInternationalShipping, models.StatusDomesticShipping}
	}
	return nil
}
