package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/randevubot/randevubot/libs/httpx"
	"github.com/randevubot/randevubot/services/portal-service/internal/directory"
	"github.com/randevubot/randevubot/services/portal-service/internal/model"
	"github.com/randevubot/randevubot/services/portal-service/internal/onboarding"
	"github.com/randevubot/randevubot/services/portal-service/internal/session"
)

type weekdayOption struct {
	Day   model.Weekday `json:"day"`
	Label string        `json:"label"`
}

type onboardingView struct {
	Step     onboarding.Step          `json:"step"`
	Steps    []onboarding.Step        `json:"steps"`
	Complete map[onboarding.Step]bool `json:"complete"`
	Form     onboarding.Form          `json:"form"`
	Sectors  []string                 `json:"sectors"`
	Weekdays []weekdayOption          `json:"weekdays"`
}

func viewOf(wz *onboarding.Wizard) onboardingView {
	complete := make(map[onboarding.Step]bool, len(onboarding.Steps))
	for _, s := range onboarding.Steps {
		complete[s] = wz.StepComplete(s)
	}
	days := make([]weekdayOption, 0, len(model.AllWeekdays))
	for _, d := range model.AllWeekdays {
		days = append(days, weekdayOption{Day: d, Label: d.Label()})
	}
	return onboardingView{
		Step:     wz.Step,
		Steps:    onboarding.Steps,
		Complete: complete,
		Form:     wz.Form,
		Sectors:  onboarding.Sectors,
		Weekdays: days,
	}
}

// wizard loads the visitor's in-progress wizard, starting a fresh one when
// none is stored. Visitors without a user are sent to /register.
func (h *Handler) wizard(w http.ResponseWriter, r *http.Request) (*session.Session, *onboarding.Wizard, bool) {
	sess, ok := sessionFrom(w, r)
	if !ok {
		return nil, nil, false
	}
	hasUser, err := sess.Has(r.Context(), session.KeyUser)
	if err != nil {
		h.logger.Error("session read failed", "err", err)
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return nil, nil, false
	}
	if !hasUser {
		http.Redirect(w, r, session.PathRegister, http.StatusSeeOther)
		return nil, nil, false
	}

	var wz onboarding.Wizard
	if err := sess.Load(r.Context(), session.KeyOnboarding, &wz); err != nil {
		if !errors.Is(err, session.ErrNotFound) {
			h.logger.Warn("onboarding state unreadable; starting over", "err", err)
		}
		return sess, onboarding.New(), true
	}
	return sess, &wz, true
}

// saveAndShow persists the wizard and answers with its current view.
func (h *Handler) saveAndShow(w http.ResponseWriter, r *http.Request, sess *session.Session, wz *onboarding.Wizard, status int) {
	if err := sess.Save(r.Context(), session.KeyOnboarding, wz); err != nil {
		h.logger.Error("onboarding state write failed", "err", err)
		http.Error(w, "failed to save onboarding", http.StatusInternalServerError)
		return
	}
	httpx.WriteJSON(w, status, viewOf(wz))
}

func (h *Handler) GetOnboarding(w http.ResponseWriter, r *http.Request) {
	sess, wz, ok := h.wizard(w, r)
	if !ok {
		return
	}
	h.saveAndShow(w, r, sess, wz, http.StatusOK)
}

func (h *Handler) SetBasic(w http.ResponseWriter, r *http.Request) {
	sess, wz, ok := h.wizard(w, r)
	if !ok {
		return
	}
	var req onboarding.Basic
	if !decodeJSON(w, r, &req) {
		return
	}
	wz.SetBasic(req)
	h.saveAndShow(w, r, sess, wz, http.StatusOK)
}

func (h *Handler) AddService(w http.ResponseWriter, r *http.Request) {
	sess, wz, ok := h.wizard(w, r)
	if !ok {
		return
	}
	wz.AddService()
	h.saveAndShow(w, r, sess, wz, http.StatusCreated)
}

func (h *Handler) UpdateService(w http.ResponseWriter, r *http.Request) {
	sess, wz, ok := h.wizard(w, r)
	if !ok {
		return
	}
	var req model.ServiceInput
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")
	if err := wz.UpdateService(req); err != nil {
		http.Error(w, "service not found", http.StatusNotFound)
		return
	}
	h.saveAndShow(w, r, sess, wz, http.StatusOK)
}

func (h *Handler) RemoveService(w http.ResponseWriter, r *http.Request) {
	sess, wz, ok := h.wizard(w, r)
	if !ok {
		return
	}
	if !wz.RemoveService(chi.URLParam(r, "id")) {
		http.Error(w, "service not found", http.StatusNotFound)
		return
	}
	h.saveAndShow(w, r, sess, wz, http.StatusOK)
}

func (h *Handler) SetWorkingDay(w http.ResponseWriter, r *http.Request) {
	sess, wz, ok := h.wizard(w, r)
	if !ok {
		return
	}
	day, err := model.ParseWeekday(chi.URLParam(r, "day"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req model.DayHours
	if !decodeJSON(w, r, &req) {
		return
	}
	wz.SetWorkingDay(day, req)
	h.saveAndShow(w, r, sess, wz, http.StatusOK)
}

func (h *Handler) NextStep(w http.ResponseWriter, r *http.Request) {
	sess, wz, ok := h.wizard(w, r)
	if !ok {
		return
	}
	if err := wz.Next(); err != nil {
		httpx.WriteError(w, http.StatusConflict, err.Error())
		return
	}
	h.saveAndShow(w, r, sess, wz, http.StatusOK)
}

func (h *Handler) PrevStep(w http.ResponseWriter, r *http.Request) {
	sess, wz, ok := h.wizard(w, r)
	if !ok {
		return
	}
	wz.Back()
	h.saveAndShow(w, r, sess, wz, http.StatusOK)
}

// Submit creates the company. A failed company insert keeps the wizard on
// the schedule step so the visitor can retry.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	sess, wz, ok := h.wizard(w, r)
	if !ok {
		return
	}
	company, err := wz.Submit(r.Context(), h.newStore(sess))
	if err != nil {
		var rerr *directory.RemoteError
		switch {
		case errors.As(err, &rerr):
			httpx.WriteError(w, http.StatusBadGateway, "Firma kaydedilemedi: "+rerr.Err.Error())
		case errors.Is(err, onboarding.ErrNotOnSchedule), errors.Is(err, onboarding.ErrStepIncomplete):
			httpx.WriteError(w, http.StatusConflict, err.Error())
		default:
			h.logger.Error("onboarding submit failed", "err", err)
			http.Error(w, "failed to create company", http.StatusInternalServerError)
		}
		return
	}
	// The company exists now; the wizard must go even if the client left.
	if err := sess.Clear(context.WithoutCancel(r.Context()), session.KeyOnboarding); err != nil {
		h.logger.Warn("onboarding state clear failed", "company_id", company.ID, "err", err)
	}
	httpx.WriteJSON(w, http.StatusCreated, map[string]any{
		"company":  company,
		"redirect": "/dashboard",
	})
}
