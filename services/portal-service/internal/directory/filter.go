package directory

import (
	"strings"
	"time"

	"github.com/randevubot/randevubot/services/portal-service/internal/model"
	"golang.org/x/text/cases"
)

// AllServices is the service filter value that matches every appointment.
const AllServices = "all"

// Filter selects the appointments shown in the dashboard list.
type Filter struct {
	Date    string `json:"date"`    // YYYY-MM-DD, exact match
	Service string `json:"service"` // exact, case-sensitive label or AllServices
	Search  string `json:"search"`  // name (case-insensitive) or phone (verbatim) substring
}

// Match reports whether a passes every criterion. An empty Service is
// treated as AllServices.
func (f Filter) Match(a model.Appointment) bool {
	if a.Date != f.Date {
		return false
	}
	if f.Service != "" && f.Service != AllServices && a.Service != f.Service {
		return false
	}
	if f.Search == "" {
		return true
	}
	fold := cases.Fold()
	return strings.Contains(fold.String(a.CustomerName), fold.String(f.Search)) ||
		strings.Contains(a.CustomerPhone, f.Search)
}

// Apply returns the matching appointments in their original order.
func Apply(items []model.Appointment, f Filter) []model.Appointment {
	out := make([]model.Appointment, 0, len(items))
	for _, a := range items {
		if f.Match(a) {
			out = append(out, a)
		}
	}
	return out
}

// Summary holds the dashboard counters. They are computed over the whole
// list, not the filtered view.
type Summary struct {
	Today          int `json:"today"`
	ConfirmedToday int `json:"confirmedToday"`
	PendingToday   int `json:"pendingToday"`
	MonthTotal     int `json:"monthTotal"`
	Total          int `json:"total"`
}

func Summarize(items []model.Appointment, today time.Time) Summary {
	day := today.Format(dateLayout)
	month := today.Format("2006-01-")
	s := Summary{Total: len(items)}
	for _, a := range items {
		if strings.HasPrefix(a.Date, month) {
			s.MonthTotal++
		}
		if a.Date != day {
			continue
		}
		s.Today++
		switch a.Status {
		case model.StatusConfirmed:
			s.ConfirmedToday++
		case model.StatusPending:
			s.PendingToday++
		}
	}
	return s
}

// ServiceOptions lists the service filter choices: AllServices followed by
// the company's service names, without duplicates.
func ServiceOptions(services []model.Service) []string {
	opts := []string{AllServices}
	seen := map[string]bool{AllServices: true}
	for _, svc := range services {
		if svc.Name == "" || seen[svc.Name] {
			continue
		}
		seen[svc.Name] = true
		opts = append(opts, svc.Name)
	}
	return opts
}
