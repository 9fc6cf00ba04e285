package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/randevubot/randevubot/libs/db"
	"github.com/randevubot/randevubot/services/portal-service/internal/model"
)

// Repository is the remote row-store behind the dashboard and onboarding.
type Repository struct {
	db db.Querier
}

func NewRepository(q db.Querier) *Repository {
	return &Repository{db: q}
}

type AppointmentRow struct {
	ID              string
	CompanyID       string
	AppointmentTime time.Time
	CustomerName    string
	CustomerPhone   string
	Service         string
	Duration        int
	Status          string
	Notes           string
}

type NewCompany struct {
	Name         string
	Email        string
	Phone        string
	Address      string
	Services     []model.ServiceInput
	WorkingHours model.WorkingHours
	PlanType     string
}

type CompanyRow struct {
	ID            string
	Name          string
	Email         string
	Phone         string
	PhoneVerified bool
	Address       string
	PlanType      string
	CreatedAt     time.Time
}

type NewService struct {
	Name            string
	Price           *float64
	DurationMinutes int
	Description     string
	Currency        string
}

func (r *Repository) ListAppointments(ctx context.Context, companyID string) ([]AppointmentRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id::text, company_id::text, appointment_time, customer_name, customer_phone,
			service, duration, status, COALESCE(notes, '')
		FROM appointments
		WHERE company_id = $1
		ORDER BY appointment_time ASC
	`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []AppointmentRow
	for rows.Next() {
		var a AppointmentRow
		if err := rows.Scan(
			&a.ID,
			&a.CompanyID,
			&a.AppointmentTime,
			&a.CustomerName,
			&a.CustomerPhone,
			&a.Service,
			&a.Duration,
			&a.Status,
			&a.Notes,
		); err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

// DeleteAppointment reports whether a row was removed.
func (r *Repository) DeleteAppointment(ctx context.Context, companyID, appointmentID string) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM appointments
		WHERE id = $1 AND company_id = $2
	`, appointmentID, companyID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repository) InsertCompany(ctx context.Context, c NewCompany) (CompanyRow, error) {
	services, err := json.Marshal(c.Services)
	if err != nil {
		return CompanyRow{}, fmt.Errorf("encode services: %w", err)
	}
	hours, err := json.Marshal(c.WorkingHours)
	if err != nil {
		return CompanyRow{}, fmt.Errorf("encode working hours: %w", err)
	}
	planType := c.PlanType
	if planType == "" {
		planType = model.PlanTrial
	}

	var row CompanyRow
	err = r.db.QueryRow(ctx, `
		INSERT INTO companies
			(name, email, phone, phone_verified, address, services, working_hours, plan_type)
		VALUES ($1, $2, $3, false, $4, $5, $6, $7)
		RETURNING id::text, name, COALESCE(email, ''), COALESCE(phone, ''), phone_verified,
			COALESCE(address, ''), plan_type, created_at
	`, c.Name, nullIfEmpty(c.Email), nullIfEmpty(c.Phone), nullIfEmpty(c.Address), services, hours, planType).Scan(
		&row.ID,
		&row.Name,
		&row.Email,
		&row.Phone,
		&row.PhoneVerified,
		&row.Address,
		&row.PlanType,
		&row.CreatedAt,
	)
	if err != nil {
		return CompanyRow{}, err
	}
	return row, nil
}

// InsertServices writes all services in one statement so the batch either
// lands completely or not at all.
func (r *Repository) InsertServices(ctx context.Context, companyID string, services []NewService) error {
	if len(services) == 0 {
		return nil
	}
	const cols = 6
	var sb strings.Builder
	sb.WriteString(`INSERT INTO company_services
		(company_id, name, price, duration_minutes, description, currency, is_active)
		VALUES `)
	args := make([]any, 0, len(services)*cols)
	for i, s := range services {
		if i > 0 {
			sb.WriteString(", ")
		}
		n := i * cols
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d, $%d, true)", n+1, n+2, n+3, n+4, n+5, n+6)
		args = append(args, companyID, s.Name, s.Price, s.DurationMinutes, nullIfEmpty(s.Description), s.Currency)
	}
	_, err := r.db.Exec(ctx, sb.String(), args...)
	return err
}

func nullIfEmpty(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}
