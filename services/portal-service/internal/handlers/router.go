package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/randevubot/randevubot/services/portal-service/internal/session"
)

// Router mounts the portal pages and API behind the session middleware.
func Router(h *Handler, sessions *session.Manager) http.Handler {
	r := chi.NewRouter()
	r.Use(sessions.Middleware)

	r.Get("/", h.Page("home"))
	r.Get("/register", h.Page("register"))
	r.Get("/onboarding", h.Page("onboarding"))
	r.Get("/dashboard", h.DashboardPage)
	r.Get("/pricing", h.PricingPage)
	r.Get("/support", h.Page("support"))
	r.Get("/legal", h.Page("legal"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/logout", h.Logout)

		r.Route("/onboarding", func(r chi.Router) {
			r.Get("/", h.GetOnboarding)
			r.Put("/basic", h.SetBasic)
			r.Post("/services", h.AddService)
			r.Put("/services/{id}", h.UpdateService)
			r.Delete("/services/{id}", h.RemoveService)
			r.Put("/schedule/{day}", h.SetWorkingDay)
			r.Post("/next", h.NextStep)
			r.Post("/back", h.PrevStep)
			r.Post("/submit", h.Submit)
		})

		r.Get("/dashboard", h.Dashboard)
		r.Route("/appointments", func(r chi.Router) {
			r.Post("/", ComingSoon("Randevu ekleme"))
			r.Put("/{id}", ComingSoon("Randevu düzenleme"))
			r.Delete("/{id}", h.DeleteAppointment)
		})
		r.Get("/whatsapp/status", ComingSoon("WhatsApp durum kontrolü"))

		r.Get("/plans", h.ListPlans)
		r.Post("/plans/{type}/select", h.SelectPlan)
		r.Post("/support/contact/{channel}", ComingSoon("Destek iletişimi"))
	})
	return r
}
