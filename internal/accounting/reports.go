package accounting

import (
	"time"

	"github.com/google/uuid"
	"github.com/hel20lmy-maker/Nono-Book-Team/internal/models"
)

// libyaCountry is the second market broken out on the country report.
const libyaCountry = "ليبيا"

// CountryStats is one market's slice of a month: how many orders and their
// combined price.
type CountryStats struct {
	Count      int     `json:"count"`
	TotalValue float64 `json:"total_value"`
}

// ContributorStats is one team member's or vendor's line on the report.
type ContributorStats struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Count int       `json:"count"`
}

// MonthlyReport summarizes one calendar month of order activity: pipeline
// counts, per-country volume and value, and per-contributor throughput.
// Orders are bucketed by creation date.
type MonthlyReport struct {
	Start       time.Time          `json:"start"`
	End         time.Time          `json:"end"`
	TotalOrders int                `json:"total_orders"`
	Delivered   int                `json:"delivered"`
	Cancelled   int                `json:"cancelled"`
	Designing   int                `json:"designing"`
	Printing    int                `json:"printing"`
	Egypt       CountryStats       `json:"egypt"`
	Libya       CountryStats       `json:"libya"`
	Sales       []ContributorStats `json:"sales"`
	Designers   []ContributorStats `json:"designers"`
	Printers    []ContributorStats `json:"printers"`
}

// MonthWindow returns the [start, end) range covering the calendar month of t.
func MonthWindow(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 1, 0)
}

// MonthlyReport derives the report for orders created in [start, end).
// Designer and printer counts use the same done-status sets as the earnings
// summaries, so the report and the earnings views never disagree on what
// counts as finished work.
func (a *Aggregator) MonthlyReport(start, end time.Time) (*MonthlyReport, error) {
	orders, err := a.store.ListOrders()
	if err != nil {
		return nil, err
	}

	var window []models.Order
	for _, o := range orders {
		if !o.CreatedAt.Before(start) && o.CreatedAt.Before(end) {
			window = append(window, o)
		}
	}

	report := &MonthlyReport{Start: start, End: end, TotalOrders: len(window)}
	for _, o := range window {
		switch o.Status {
		case models.StatusDelivered:
			report.Delivered++
		case models.StatusCancelled:
			report.Cancelled++
		case models.StatusDesigning:
			report.Designing++
		case models.StatusPrinting:
			report.Printing++
		}
		switch o.Customer.Country {
		case models.DomesticCountry:
			report.Egypt.Count++
			report.Egypt.TotalValue += o.Price
		case libyaCountry:
			report.Libya.Count++
			report.Libya.TotalValue += o.Price
		}
	}

	salesUsers, err := a.store.ListUsers(models.RoleSales)
	if err != nil {
		return nil, err
	}
	for _, u := range salesUsers {
		count := 0
		for _, o := range window {
			if o.CreatedBy == u.ID {
				count++
			}
		}
		report.Sales = append(report.Sales, ContributorStats{ID: u.ID, Name: u.Name, Count: count})
	}

	designers, err := a.store.ListUsers(models.RoleDesigner)
	if err != nil {
		return nil, err
	}
	for _, u := range designers {
		count := 0
		for _, o := range window {
			if o.AssignedToDesigner != nil && *o.AssignedToDesigner == u.ID && designDoneStatuses[o.Status] {
				count++
			}
		}
		report.Designers = append(report.Designers, ContributorStats{ID: u.ID, Name: u.Name, Count: count})
	}

	printers, err := a.store.ListPrinters()
	if err != nil {
		return nil, err
	}
	for _, p := range printers {
		count := 0
		for _, o := range window {
			if o.AssignedToPrinter != nil && *o.AssignedToPrinter == p.ID && printDoneStatuses[o.Status] {
				count++
			}
		}
		report.Printers = append(report.Printers, ContributorStats{ID: p.ID, Name: p.Name, Count: count})
	}

	return report, nil
}
