package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/randevubot/randevubot/libs/httpx"
	"github.com/randevubot/randevubot/services/portal-service/internal/plans"
)

// Page serves a static page document from the catalog.
func (h *Handler) Page(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := h.catalog.Page(name)
		if !ok {
			http.NotFound(w, r)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, p)
	}
}

func (h *Handler) PricingPage(w http.ResponseWriter, r *http.Request) {
	p, ok := h.catalog.Page("pricing")
	if !ok {
		http.NotFound(w, r)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"page":  p,
		"plans": plans.All(),
	})
}

// DashboardPage applies the session gate before handing out the page.
func (h *Handler) DashboardPage(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFrom(w, r)
	if !ok || !h.gated(w, r, sess) {
		return
	}
	h.Page("dashboard")(w, r)
}

func (h *Handler) ListPlans(w http.ResponseWriter, _ *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, plans.All())
}

// SelectPlan validates the plan type. Checkout itself is not offered yet.
func (h *Handler) SelectPlan(w http.ResponseWriter, r *http.Request) {
	if !plans.Known(chi.URLParam(r, "type")) {
		http.Error(w, "unknown plan", http.StatusNotFound)
		return
	}
	ComingSoon("Plan seçimi")(w, r)
}
