package directory

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/randevubot/randevubot/services/portal-service/internal/model"
	"github.com/randevubot/randevubot/services/portal-service/internal/storage"
)

const defaultServiceMinutes = 30

var (
	leadingFloat = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)`)
	leadingInt   = regexp.MustCompile(`^[+-]?\d+`)
)

// ServiceIsValid reports whether a form row is complete enough to be saved:
// it needs a name and a duration.
func ServiceIsValid(in model.ServiceInput) bool {
	return strings.TrimSpace(in.Name) != "" && strings.TrimSpace(in.Duration) != ""
}

// ParsePrice reads the leading decimal of a price field ("150", "150.5 TL").
// Empty or unreadable input means no price.
func ParsePrice(raw string) *float64 {
	m := leadingFloat.FindString(strings.TrimSpace(raw))
	if m == "" {
		return nil
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return nil
	}
	return &f
}

// ParseDuration reads the leading integer of a duration field ("45",
// "45 dk"). Anything that does not yield a positive number falls back to 30.
func ParseDuration(raw string) int {
	m := leadingInt.FindString(strings.TrimSpace(raw))
	n, err := strconv.Atoi(m)
	if err != nil || n <= 0 {
		return defaultServiceMinutes
	}
	return n
}

func convertServices(inputs []model.ServiceInput, currency string) ([]storage.NewService, []model.Service) {
	rows := make([]storage.NewService, 0, len(inputs))
	out := make([]model.Service, 0, len(inputs))
	for _, in := range inputs {
		if !ServiceIsValid(in) {
			continue
		}
		row := storage.NewService{
			Name:            strings.TrimSpace(in.Name),
			Price:           ParsePrice(in.Price),
			DurationMinutes: ParseDuration(in.Duration),
			Description:     strings.TrimSpace(in.Description),
			Currency:        currency,
		}
		rows = append(rows, row)
		out = append(out, model.Service{
			ID:              in.ID,
			Name:            row.Name,
			Price:           row.Price,
			DurationMinutes: row.DurationMinutes,
			Description:     row.Description,
			Currency:        currency,
		})
	}
	return rows, out
}
