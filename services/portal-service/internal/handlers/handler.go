package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/randevubot/randevubot/libs/httpx"
	"github.com/randevubot/randevubot/libs/runtime"
	"github.com/randevubot/randevubot/services/portal-service/internal/content"
	"github.com/randevubot/randevubot/services/portal-service/internal/directory"
	"github.com/randevubot/randevubot/services/portal-service/internal/events"
	"github.com/randevubot/randevubot/services/portal-service/internal/metrics"
	"github.com/randevubot/randevubot/services/portal-service/internal/model"
	"github.com/randevubot/randevubot/services/portal-service/internal/session"
)

type Config struct {
	Remote    directory.Remote
	Publisher events.Publisher
	Catalog   *content.Catalog
	Metrics   *metrics.Portal
	Logger    *slog.Logger
	Location  *time.Location
	Now       func() time.Time
	Currency  string

	PublishTimeout time.Duration
}

type Handler struct {
	remote    directory.Remote
	publisher events.Publisher
	catalog   *content.Catalog
	metrics   *metrics.Portal
	logger    *slog.Logger
	loc       *time.Location
	now       func() time.Time
	currency  string

	publishTimeout time.Duration
}

func New(cfg Config) *Handler {
	if cfg.Logger == nil {
		cfg.Logger = runtime.DiscardLogger()
	}
	if cfg.Publisher == nil {
		cfg.Publisher = events.NewLogPublisher(cfg.Logger)
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Handler{
		remote:    cfg.Remote,
		publisher: cfg.Publisher,
		catalog:   cfg.Catalog,
		metrics:   cfg.Metrics,
		logger:    cfg.Logger,
		loc:       cfg.Location,
		now:       cfg.Now,
		currency:  cfg.Currency,

		publishTimeout: cfg.PublishTimeout,
	}
}

// newStore builds a request-scoped directory mirrored into the visitor's session.
func (h *Handler) newStore(sess *session.Session) *directory.Store {
	return directory.NewStore(h.remote, sess, h.publisher, directory.Options{
		Location: h.loc,
		Now:      h.now,
		Currency: h.currency,
		Logger:   h.logger.With("session_id", sess.ID()),
		Metrics:  h.metrics,

		PublishTimeout: h.publishTimeout,
	})
}

func sessionFrom(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess := session.FromContext(r.Context())
	if sess == nil {
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return nil, false
	}
	return sess, true
}

// gated enforces the dashboard gate: visitors without a user go to
// /register, those without a company to /onboarding.
func (h *Handler) gated(w http.ResponseWriter, r *http.Request, sess *session.Session) bool {
	to, err := session.Gate(r.Context(), sess)
	if err != nil {
		h.logger.Error("session gate failed", "err", err)
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return false
	}
	if to != "" {
		http.Redirect(w, r, to, http.StatusSeeOther)
		return false
	}
	return true
}

func (h *Handler) loadCompany(w http.ResponseWriter, r *http.Request, sess *session.Session) (model.Company, bool) {
	var company model.Company
	if err := sess.Load(r.Context(), session.KeyCompany, &company); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			http.Redirect(w, r, session.PathOnboarding, http.StatusSeeOther)
			return model.Company{}, false
		}
		h.logger.Error("company snapshot unreadable", "err", err)
		http.Error(w, "failed to load company", http.StatusInternalServerError)
		return model.Company{}, false
	}
	return company, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return false
	}
	return true
}

// ComingSoon answers features the product announces but does not offer yet.
func ComingSoon(feature string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteJSON(w, http.StatusNotImplemented, map[string]string{
			"feature": feature,
			"message": feature + " özelliği henüz hazır değil.",
		})
	}
}
