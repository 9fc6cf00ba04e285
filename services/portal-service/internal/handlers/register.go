package handlers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/randevubot/randevubot/libs/httpx"
	"github.com/randevubot/randevubot/services/portal-service/internal/events"
	"github.com/randevubot/randevubot/services/portal-service/internal/model"
	"github.com/randevubot/randevubot/services/portal-service/internal/session"
)

const msgAcceptTerms = "Kullanım şartlarını kabul etmelisiniz."

type registerRequest struct {
	Mode        string `json:"mode"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Password    string `json:"password"`
	AcceptTerms bool   `json:"acceptTerms"`
}

// Register records the visitor as a user. There is no authentication: the
// password is accepted and discarded.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFrom(w, r)
	if !ok {
		return
	}
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	login := strings.EqualFold(strings.TrimSpace(req.Mode), "login")
	if !login && !req.AcceptTerms {
		httpx.WriteError(w, http.StatusBadRequest, msgAcceptTerms)
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		http.Error(w, "email is required", http.StatusBadRequest)
		return
	}

	user := model.User{
		ID:           uuid.NewString(),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        req.Email,
		Phone:        strings.TrimSpace(req.Phone),
		RegisteredAt: h.now().UTC(),
	}
	if err := sess.Save(r.Context(), session.KeyUser, user); err != nil {
		h.logger.Error("user snapshot write failed", "err", err)
		http.Error(w, "failed to save user", http.StatusInternalServerError)
		return
	}

	if !login {
		h.metrics.ObserveRegistration()
		evt := events.New(events.TypeUserRegistered, user.ID, events.UserRegistered{
			UserID:       user.ID,
			Email:        user.Email,
			RegisteredAt: user.RegisteredAt,
		})
		events.Emit(r.Context(), h.publisher, h.logger, h.publishTimeout, evt)
	}

	httpx.WriteJSON(w, http.StatusCreated, map[string]any{
		"user":     user,
		"redirect": session.PathOnboarding,
	})
}

// Logout forgets the user, the company snapshot, the appointment mirror and
// any unfinished onboarding.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFrom(w, r)
	if !ok {
		return
	}
	err := sess.Clear(r.Context(), session.KeyUser, session.KeyCompany, session.KeyAppointments, session.KeyOnboarding)
	if err != nil {
		h.logger.Error("logout failed", "err", err)
		http.Error(w, "failed to clear session", http.StatusInternalServerError)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"redirect": "/"})
}
