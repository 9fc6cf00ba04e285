package directory

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/randevubot/randevubot/libs/runtime"
	"github.com/randevubot/randevubot/services/portal-service/internal/events"
	"github.com/randevubot/randevubot/services/portal-service/internal/metrics"
	"github.com/randevubot/randevubot/services/portal-service/internal/model"
	"github.com/randevubot/randevubot/services/portal-service/internal/session"
	"github.com/randevubot/randevubot/services/portal-service/internal/storage"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// Remote is the row-store the directory reads and writes through.
type Remote interface {
	ListAppointments(ctx context.Context, companyID string) ([]storage.AppointmentRow, error)
	DeleteAppointment(ctx context.Context, companyID, appointmentID string) (bool, error)
	InsertCompany(ctx context.Context, c storage.NewCompany) (storage.CompanyRow, error)
	InsertServices(ctx context.Context, companyID string, services []storage.NewService) error
}

// Mirror is the per-visitor key-value store the list and company snapshot
// are copied into.
type Mirror interface {
	Load(ctx context.Context, key string, v any) error
	Save(ctx context.Context, key string, v any) error
}

type Options struct {
	Location *time.Location
	Now      func() time.Time
	Currency string
	Logger   *slog.Logger
	Metrics  *metrics.Portal

	// PublishTimeout bounds each event publish; zero means
	// events.DefaultPublishTimeout.
	PublishTimeout time.Duration
}

// Store holds one company's appointment list for the duration of a request.
// It is not safe for concurrent use.
type Store struct {
	remote    Remote
	mirror    Mirror
	publisher events.Publisher
	logger    *slog.Logger
	metrics   *metrics.Portal
	loc       *time.Location
	now       func() time.Time
	currency  string

	publishTimeout time.Duration

	companyID string
	items     []model.Appointment
	seeded    bool
}

// snapshot is what gets mirrored under the appointments key.
type snapshot struct {
	CompanyID string              `json:"companyId"`
	Seeded    bool                `json:"seeded"`
	Items     []model.Appointment `json:"items"`
}

func NewStore(remote Remote, mirror Mirror, publisher events.Publisher, opts Options) *Store {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Currency == "" {
		opts.Currency = "GBP"
	}
	if opts.Logger == nil {
		opts.Logger = runtime.DiscardLogger()
	}
	if publisher == nil {
		publisher = events.NewLogPublisher(opts.Logger)
	}
	return &Store{
		remote:    remote,
		mirror:    mirror,
		publisher: publisher,
		logger:    opts.Logger,
		metrics:   opts.Metrics,
		loc:       opts.Location,
		now:       opts.Now,
		currency:  opts.Currency,

		publishTimeout: opts.PublishTimeout,
	}
}

// Today is the current date in the business timezone.
func (s *Store) Today() time.Time {
	return s.now().In(s.loc)
}

// Items returns a copy of the current list in store order.
func (s *Store) Items() []model.Appointment {
	return append([]model.Appointment(nil), s.items...)
}

// Seeded reports whether the list is the sample set rather than remote data.
func (s *Store) Seeded() bool { return s.seeded }

// Load replaces the list with the company's remote appointments, ordered by
// appointment time. An empty result or a failed read yields the sample set,
// which is generated once per company and then kept in the mirror; read
// errors are logged, never returned.
func (s *Store) Load(ctx context.Context, companyID string) []model.Appointment {
	s.companyID = companyID
	rows, err := s.remote.ListAppointments(ctx, companyID)
	switch {
	case err != nil:
		s.logger.Warn("appointments load failed; showing sample data", "company_id", companyID, "err", err)
		s.useSeed(ctx)
		s.metrics.ObserveLoad(metrics.SourceSeedAfterError)
	case len(rows) == 0:
		s.useSeed(ctx)
		s.metrics.ObserveLoad(metrics.SourceSeed)
	default:
		items := make([]model.Appointment, 0, len(rows))
		for _, row := range rows {
			items = append(items, s.fromRow(row))
		}
		s.items = items
		s.seeded = false
		s.metrics.ObserveLoad(metrics.SourceRemote)
	}
	s.persist(ctx)
	return s.Items()
}

// Restore adopts the mirrored list if it belongs to companyID. It reports
// false when there is nothing usable to restore.
func (s *Store) Restore(ctx context.Context, companyID string) (bool, error) {
	var snap snapshot
	if err := s.mirror.Load(ctx, session.KeyAppointments, &snap); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if snap.CompanyID != companyID {
		return false, nil
	}
	s.companyID = companyID
	s.items = snap.Items
	s.seeded = snap.Seeded
	return true, nil
}

// Delete removes one appointment. Unknown ids are a no-op. Remote rows are
// deleted remotely first and the local list only changes once that succeeds;
// sample rows have no remote counterpart and are dropped locally.
func (s *Store) Delete(ctx context.Context, appointmentID string) error {
	idx := -1
	for i, a := range s.items {
		if a.ID == appointmentID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.metrics.ObserveDelete("not_found")
		return nil
	}

	if !s.seeded {
		removed, err := s.remote.DeleteAppointment(ctx, s.companyID, appointmentID)
		if err != nil {
			s.logger.Error("appointment delete failed", "company_id", s.companyID, "appointment_id", appointmentID, "err", err)
			s.metrics.ObserveDelete("remote_error")
			return &RemoteError{Op: ErrRemoteDelete, Err: err}
		}
		if !removed {
			s.logger.Info("appointment already gone remotely", "company_id", s.companyID, "appointment_id", appointmentID)
		}
	}

	items := make([]model.Appointment, 0, len(s.items)-1)
	items = append(items, s.items[:idx]...)
	s.items = append(items, s.items[idx+1:]...)
	s.persist(ctx)

	if s.seeded {
		s.metrics.ObserveDelete("seed")
		return nil
	}
	s.metrics.ObserveDelete("ok")
	evt := events.New(events.TypeAppointmentDeleted, s.companyID, events.AppointmentDeleted{
		AppointmentID: appointmentID,
		CompanyID:     s.companyID,
		DeletedAt:     s.now().UTC(),
	})
	events.Emit(ctx, s.publisher, s.logger, s.publishTimeout, evt)
	return nil
}

// Create inserts the company and then its valid services. A company insert
// failure aborts with a *RemoteError; a services failure is only logged.
// On success the merged company snapshot is mirrored locally.
func (s *Store) Create(ctx context.Context, profile model.CompanyProfile, services []model.ServiceInput) (model.Company, error) {
	row, err := s.remote.InsertCompany(ctx, storage.NewCompany{
		Name:         profile.Name,
		Email:        profile.Email,
		Phone:        profile.Phone,
		Address:      profile.Address,
		Services:     services,
		WorkingHours: profile.WorkingHours,
		PlanType:     model.PlanTrial,
	})
	if err != nil {
		s.logger.Error("company insert failed", "company_name", profile.Name, "err", err)
		s.metrics.ObserveSubmission("company_error")
		return model.Company{}, &RemoteError{Op: ErrCompanyCreate, Err: err}
	}

	// The snapshot keeps the services either way: the company row already
	// holds them, only the company_services copy may be missing.
	rows, converted := convertServices(services, s.currency)
	outcome, saved := "ok", len(rows)
	if err := s.remote.InsertServices(ctx, row.ID, rows); err != nil {
		s.logger.Error("company services insert failed; continuing", "company_id", row.ID, "err", err)
		outcome, saved = "services_error", 0
	}

	company := model.Company{
		ID:             row.ID,
		Name:           row.Name,
		Sector:         profile.Sector,
		Email:          row.Email,
		Phone:          row.Phone,
		PhoneVerified:  row.PhoneVerified,
		WhatsappNumber: profile.WhatsappNumber,
		Address:        row.Address,
		Services:       converted,
		WorkingHours:   profile.WorkingHours,
		PlanType:       row.PlanType,
		Status:         model.CompanyStatusLive,
		CreatedAt:      s.now().UTC(),
	}
	s.companyID = company.ID
	if err := s.mirror.Save(ctx, session.KeyCompany, company); err != nil {
		s.logger.Error("company mirror write failed", "company_id", company.ID, "err", err)
	}
	s.metrics.ObserveSubmission(outcome)

	evt := events.New(events.TypeCompanyCreated, company.ID, events.CompanyCreated{
		CompanyID:     company.ID,
		Name:          company.Name,
		Sector:        company.Sector,
		PlanType:      company.PlanType,
		ServicesSaved: saved,
	})
	events.Emit(ctx, s.publisher, s.logger, s.publishTimeout, evt)
	return company, nil
}

// useSeed keeps a sample list already mirrored for this company, so sample
// rows the visitor deleted stay deleted. Otherwise it generates a fresh set.
func (s *Store) useSeed(ctx context.Context) {
	s.seeded = true
	var snap snapshot
	if err := s.mirror.Load(ctx, session.KeyAppointments, &snap); err == nil && snap.Seeded && snap.CompanyID == s.companyID {
		s.items = snap.Items
		return
	}
	s.items = seedAppointments(s.Today())
}

func (s *Store) fromRow(row storage.AppointmentRow) model.Appointment {
	at := row.AppointmentTime.In(s.loc)
	return model.Appointment{
		ID:              row.ID,
		Date:            at.Format(dateLayout),
		Time:            at.Format(timeLayout),
		CustomerName:    row.CustomerName,
		CustomerPhone:   row.CustomerPhone,
		Service:         row.Service,
		DurationMinutes: row.Duration,
		Status:          row.Status,
		Notes:           row.Notes,
	}
}

func (s *Store) persist(ctx context.Context) {
	snap := snapshot{CompanyID: s.companyID, Seeded: s.seeded, Items: s.items}
	if snap.Items == nil {
		snap.Items = []model.Appointment{}
	}
	if err := s.mirror.Save(ctx, session.KeyAppointments, snap); err != nil {
		s.logger.Warn("appointments mirror write failed", "company_id", s.companyID, "err", err)
	}
}
