package model

import "time"

const (
	PlanTrial         = "trial"
	CompanyStatusLive = "active"
)

// ServiceInput is a service row as typed into the onboarding form. Price and
// Duration are kept as text until the company is created.
type ServiceInput struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       string `json:"price"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

type Service struct {
	ID              string   `json:"id,omitempty"`
	Name            string   `json:"name"`
	Price           *float64 `json:"price"`
	DurationMinutes int      `json:"duration"`
	Description     string   `json:"description,omitempty"`
	Currency        string   `json:"currency,omitempty"`
}

type DayHours struct {
	IsOpen    bool   `json:"isOpen"`
	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`
}

type WorkingHours map[Weekday]DayHours

// AnyOpen reports whether at least one day accepts appointments.
func (wh WorkingHours) AnyOpen() bool {
	for _, d := range AllWeekdays {
		if wh[d].IsOpen {
			return true
		}
	}
	return false
}

// CompanyProfile is what the onboarding wizard submits.
type CompanyProfile struct {
	Sector         string       `json:"sector"`
	Name           string       `json:"companyName"`
	Logo           string       `json:"logo,omitempty"`
	Email          string       `json:"email"`
	WhatsappNumber string       `json:"whatsappNumber"`
	Phone          string       `json:"phone"`
	Address        string       `json:"address"`
	WorkingHours   WorkingHours `json:"workingDays"`
	Holidays       []string     `json:"holidays"`
}

// Company is the local snapshot kept after a successful onboarding: the
// remote row plus fields the remote store does not hold.
type Company struct {
	ID             string       `json:"id"`
	Name           string       `json:"companyName"`
	Sector         string       `json:"sector"`
	Email          string       `json:"email,omitempty"`
	Phone          string       `json:"phone,omitempty"`
	PhoneVerified  bool         `json:"phoneVerified"`
	WhatsappNumber string       `json:"whatsappNumber"`
	Address        string       `json:"address,omitempty"`
	Services       []Service    `json:"services"`
	WorkingHours   WorkingHours `json:"workingHours"`
	PlanType       string       `json:"planType"`
	Status         string       `json:"status"`
	CreatedAt      time.Time    `json:"createdAt"`
}
