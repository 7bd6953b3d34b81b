package workflow

import (
	"strings"

	"github.com/google/uuid"
	"github.com/hel20lmy-maker/Nono-Book-Team/internal/models"
)

// VisibleOrders projects the full order set down to what a role may see.
// Sales additionally see their own orders at any status, for read.
func VisibleOrders(role models.UserRole, userID uuid.UUID, orders []models.Order) []models.Order {
	visible := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if orderVisible(role, userID, &o) {
			visible = append(visible, o)
		}
	}
	return visible
}

func orderVisible(role models.UserRole, userID uuid.UUID, o *models.Order) bool {
	switch role {
	case models.RoleAdmin, models.RoleShipping:
		return true
	case models.RoleSales:
		return o.Status == models.StatusNew || o.CreatedBy == userID
	case models.RoleDesigner:
		return o.AssignedToDesigner != nil && *o.AssignedToDesigner == userID
	case models.RolePrinter:
		return o.Status == models.StatusPrinting
	}
	return false
}

// FilterByQuery narrows orders to those matching a substring search over the
// order id, customer name/phones and story owner. Phone comparisons are
// digit-normalized so Eastern Arabic and Persian numerals match their ASCII
// forms either way round.
func FilterByQuery(orders []models.Order, query string) []models.Order {
	query = strings.TrimSpace(query)
	if query == "" {
		return orders
	}
	matched := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if MatchesQuery(&o, query) {
			matched = append(matched, o)
		}
	}
	return matched
}

func MatchesQuery(o *models.Order, query string) bool {
	q := strings.ToLower(NormalizeDigits(query))
	candidates := []string{
		o.ID.String(),
		o.Customer.Name,
		o.Customer.Phone,
		o.Customer.AltPhone,
		o.Story.OwnerName,
	}
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if strings.Contains(strings.ToLower(NormalizeDigits(c)), q) {
			return true
		}
	}
	return false
}

// NormalizeDigits converts Eastern Arabic (٠-٩) and Persian (۰-۹) digits to
// their Western forms so numeric searches work across locales.
func NormalizeDigits(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= '٠' && r <= '٩':
			return '0' + (r - '٠')
		case r >= '۰' && r <= '۹':
			return '0' + (r - '۰')
		}
		return r
	}, s)
}
