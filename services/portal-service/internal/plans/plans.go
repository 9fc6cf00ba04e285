package plans

// Limits derived from a plan. Zero means unlimited.
type Limits struct {
	MaxMonthlyAppointments int `json:"max_monthly_appointments"`
	MaxCalendars           int `json:"max_calendars"`
	TrialDays              int `json:"trial_days,omitempty"`
}

type Plan struct {
	Type        string   `json:"type"`
	Name        string   `json:"name"`
	Price       string   `json:"price"`
	Period      string   `json:"period"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	Limitations []string `json:"limitations"`
	Popular     bool     `json:"popular"`
	CTA         string   `json:"cta"`
	Limits      Limits   `json:"limits"`
}

const (
	TypeTrial    = "trial"
	TypeStandard = "standard"
	TypePro      = "pro"
)

// All returns the plans in pricing page order.
func All() []Plan {
	return []Plan{ForType(TypeTrial), ForType(TypeStandard), ForType(TypePro)}
}

// Known reports whether planType names a plan.
func Known(planType string) bool {
	switch planType {
	case TypeTrial, TypeStandard, TypePro:
		return true
	}
	return false
}

// ForType maps a company's plan_type onto its plan. Unknown types get the
// trial plan.
func ForType(planType string) Plan {
	switch planType {
	case TypeStandard:
		return Plan{
			Type:        TypeStandard,
			Name:        "Standart",
			Price:       "₺299",
			Period:      "/ay",
			Description: "Küçük ve orta işletmeler için",
			Features: []string{
				"Sınırsız randevu",
				"1 takvim",
				"Gelişmiş AI asistan",
				"Telefon + e-posta desteği",
				"Randevu hatırlatmaları",
				"Detaylı raporlar",
				"SMS bildirimleri",
				"Temel entegrasyonlar",
			},
			Limitations: []string{},
			Popular:     true,
			CTA:         "Hemen Başla",
			Limits:      Limits{MaxCalendars: 1},
		}
	case TypePro:
		return Plan{
			Type:        TypePro,
			Name:        "Pro",
			Price:       "₺599",
			Period:      "/ay",
			Description: "Büyük işletmeler ve zincirler için",
			Features: []string{
				"Sınırsız randevu",
				"Çoklu takvim (5 adete kadar)",
				"Çok dilli AI (TR/EN/UKR)",
				"Öncelikli 7/24 destek",
				"Gelişmiş analitik raporlar",
				"API entegrasyonu",
				"Özel eğitim ve kurulum",
				"Beyaz etiket çözümü",
				"Çoklu lokasyon desteği",
				"Özel alan adı",
			},
			Limitations: []string{},
			CTA:         "Pro'ya Geç",
			Limits:      Limits{MaxCalendars: 5},
		}
	default:
		return Plan{
			Type:        TypeTrial,
			Name:        "Deneme",
			Price:       "Ücretsiz",
			Period:      "14 gün",
			Description: "Sistemi test etmek için ideal",
			Features: []string{
				"50 randevu/ay",
				"1 takvim",
				"Temel WhatsApp entegrasyonu",
				"E-posta desteği",
				"Temel raporlar",
			},
			Limitations: []string{
				"Sınırlı randevu sayısı",
				"Temel özellikler",
			},
			CTA:    "Ücretsiz Başla",
			Limits: Limits{MaxMonthlyAppointments: 50, MaxCalendars: 1, TrialDays: 14},
		}
	}
}

// Usage compares a month's appointment count against the plan limit.
type Usage struct {
	Plan      string `json:"plan"`
	Used      int    `json:"used"`
	Limit     int    `json:"limit"`
	Remaining int    `json:"remaining"`
	Unlimited bool   `json:"unlimited"`
}

func UsageFor(p Plan, monthTotal int) Usage {
	u := Usage{Plan: p.Type, Used: monthTotal, Limit: p.Limits.MaxMonthlyAppointments}
	if u.Limit == 0 {
		u.Unlimited = true
		return u
	}
	u.Remaining = u.Limit - monthTotal
	if u.Remaining < 0 {
		u.Remaining = 0
	}
	return u
}
