package onboarding

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/randevubot/randevubot/services/portal-service/internal/model"
)

type Step string

const (
	StepBasic    Step = "basic"
	StepServices Step = "services"
	StepSchedule Step = "schedule"
)

var Steps = []Step{StepBasic, StepServices, StepSchedule}

var (
	ErrStepIncomplete = errors.New("onboarding: step incomplete")
	ErrLastStep       = errors.New("onboarding: no step after schedule, submit instead")
	ErrNotOnSchedule  = errors.New("onboarding: submit is only possible from the schedule step")
	ErrUnknownService = errors.New("onboarding: unknown service")
)

// Sectors offered in the basic step.
var Sectors = []string{
	"Doktor & Klinik",
	"Berber & Kuaför",
	"Güzellik & Spa",
	"Diş Hekimi",
	"Veteriner",
	"Masaj & Terapi",
	"Fitness & Spor",
	"Eğitim & Kurs",
	"Danışmanlık",
	"Diğer",
}

type Basic struct {
	Sector         string `json:"sector"`
	CompanyName    string `json:"companyName"`
	Email          string `json:"email"`
	WhatsappNumber string `json:"whatsappNumber"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
}

type Form struct {
	Basic
	Logo        string               `json:"logo,omitempty"`
	Services    []model.ServiceInput `json:"services"`
	WorkingDays model.WorkingHours   `json:"workingDays"`
	Holidays    []string             `json:"holidays"`
}

// Creator persists the finished form. directory.Store implements it.
type Creator interface {
	Create(ctx context.Context, profile model.CompanyProfile, services []model.ServiceInput) (model.Company, error)
}

// Wizard is the onboarding state machine. It serialises as JSON so it can be
// kept in the visitor's session between requests.
type Wizard struct {
	Step Step `json:"step"`
	Form Form `json:"form"`
}

// New starts at the basic step with one blank service and the default
// working hours.
func New() *Wizard {
	return &Wizard{
		Step: StepBasic,
		Form: Form{
			Services:    []model.ServiceInput{{ID: uuid.NewString()}},
			WorkingDays: model.DefaultWorkingHours(),
			Holidays:    []string{},
		},
	}
}

// StepComplete reports whether step's required fields are filled in.
func (w *Wizard) StepComplete(step Step) bool {
	switch step {
	case StepBasic:
		return filled(w.Form.Sector) && filled(w.Form.CompanyName) && filled(w.Form.WhatsappNumber)
	case StepServices:
		for _, s := range w.Form.Services {
			if filled(s.Name) && filled(s.Duration) {
				return true
			}
		}
		return false
	case StepSchedule:
		return w.Form.WorkingDays.AnyOpen()
	default:
		return false
	}
}

// Next moves forward one step when the current one is complete.
func (w *Wizard) Next() error {
	if !w.StepComplete(w.Step) {
		return ErrStepIncomplete
	}
	switch w.Step {
	case StepBasic:
		w.Step = StepServices
	case StepServices:
		w.Step = StepSchedule
	default:
		return ErrLastStep
	}
	return nil
}

// Back always succeeds; on the first step it stays put.
func (w *Wizard) Back() {
	switch w.Step {
	case StepSchedule:
		w.Step = StepServices
	case StepServices:
		w.Step = StepBasic
	}
}

func (w *Wizard) SetBasic(b Basic) {
	w.Form.Basic = b
}

// AddService appends a blank service and returns its id.
func (w *Wizard) AddService() string {
	id := uuid.NewString()
	w.Form.Services = append(w.Form.Services, model.ServiceInput{ID: id})
	return id
}

func (w *Wizard) UpdateService(in model.ServiceInput) error {
	for i := range w.Form.Services {
		if w.Form.Services[i].ID == in.ID {
			w.Form.Services[i] = in
			return nil
		}
	}
	return ErrUnknownService
}

// RemoveService drops the service with id, even if it is the last one.
func (w *Wizard) RemoveService(id string) bool {
	for i, s := range w.Form.Services {
		if s.ID == id {
			w.Form.Services = append(w.Form.Services[:i], w.Form.Services[i+1:]...)
			return true
		}
	}
	return false
}

func (w *Wizard) SetWorkingDay(day model.Weekday, h model.DayHours) {
	if w.Form.WorkingDays == nil {
		w.Form.WorkingDays = model.DefaultWorkingHours()
	}
	w.Form.WorkingDays[day] = h
}

func (w *Wizard) Profile() model.CompanyProfile {
	return model.CompanyProfile{
		Sector:         w.Form.Sector,
		Name:           w.Form.CompanyName,
		Logo:           w.Form.Logo,
		Email:          w.Form.Email,
		WhatsappNumber: w.Form.WhatsappNumber,
		Phone:          w.Form.Phone,
		Address:        w.Form.Address,
		WorkingHours:   w.Form.WorkingDays,
		Holidays:       w.Form.Holidays,
	}
}

// Submit hands the form to c. On failure the wizard stays on the schedule
// step so the user can retry.
func (w *Wizard) Submit(ctx context.Context, c Creator) (model.Company, error) {
	if w.Step != StepSchedule {
		return model.Company{}, ErrNotOnSchedule
	}
	if !w.StepComplete(StepSchedule) {
		return model.Company{}, ErrStepIncomplete
	}
	return c.Create(ctx, w.Profile(), w.Form.Services)
}

// filled is a presence check only; whitespace counts as input here and is
// trimmed later when services are converted.
func filled(s string) bool {
	return s != ""
}
