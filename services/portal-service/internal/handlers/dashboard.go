package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/randevubot/randevubot/libs/httpx"
	"github.com/randevubot/randevubot/services/portal-service/internal/directory"
	"github.com/randevubot/randevubot/services/portal-service/internal/model"
	"github.com/randevubot/randevubot/services/portal-service/internal/plans"
)

type dashboardView struct {
	Company        model.Company       `json:"company"`
	Plan           plans.Plan          `json:"plan"`
	Usage          plans.Usage         `json:"usage"`
	Seeded         bool                `json:"seeded"`
	Filter         directory.Filter    `json:"filter"`
	Summary        directory.Summary   `json:"summary"`
	Appointments   []model.Appointment `json:"appointments"`
	All            []model.Appointment `json:"all"`
	ServiceOptions []string            `json:"serviceOptions"`
}

func (h *Handler) buildDashboard(company model.Company, store *directory.Store, f directory.Filter) dashboardView {
	items := store.Items()
	summary := directory.Summarize(items, store.Today())
	plan := plans.ForType(company.PlanType)
	return dashboardView{
		Company:        company,
		Plan:           plan,
		Usage:          plans.UsageFor(plan, summary.MonthTotal),
		Seeded:         store.Seeded(),
		Filter:         f,
		Summary:        summary,
		Appointments:   directory.Apply(items, f),
		All:            items,
		ServiceOptions: directory.ServiceOptions(company.Services),
	}
}

// Dashboard reloads the company's appointments and returns the filtered
// view. date defaults to today in the business timezone.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFrom(w, r)
	if !ok || !h.gated(w, r, sess) {
		return
	}
	company, ok := h.loadCompany(w, r, sess)
	if !ok {
		return
	}
	store := h.newStore(sess)

	q := r.URL.Query()
	f := directory.Filter{
		Date:    strings.TrimSpace(q.Get("date")),
		Service: q.Get("service"),
		Search:  q.Get("q"),
	}
	if f.Date == "" {
		f.Date = store.Today().Format(time.DateOnly)
	} else if _, err := time.Parse(time.DateOnly, f.Date); err != nil {
		http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	if f.Service == "" {
		f.Service = directory.AllServices
	}

	store.Load(r.Context(), company.ID)
	httpx.WriteJSON(w, http.StatusOK, h.buildDashboard(company, store, f))
}

// DeleteAppointment works on the list the visitor last saw, falling back to
// a fresh load when the session holds none for this company.
func (h *Handler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFrom(w, r)
	if !ok || !h.gated(w, r, sess) {
		return
	}
	company, ok := h.loadCompany(w, r, sess)
	if !ok {
		return
	}
	store := h.newStore(sess)
	restored, err := store.Restore(r.Context(), company.ID)
	if err != nil {
		h.logger.Warn("appointments mirror unreadable; reloading", "company_id", company.ID, "err", err)
	}
	if !restored {
		store.Load(r.Context(), company.ID)
	}

	if err := store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, directory.ErrRemoteDelete) {
			httpx.WriteError(w, http.StatusBadGateway, "Randevu silinemedi.")
			return
		}
		h.logger.Error("appointment delete failed", "company_id", company.ID, "err", err)
		http.Error(w, "failed to delete appointment", http.StatusInternalServerError)
		return
	}
	f := directory.Filter{Date: store.Today().Format(time.DateOnly), Service: directory.AllServices}
	httpx.WriteJSON(w, http.StatusOK, h.buildDashboard(company, store, f))
}
