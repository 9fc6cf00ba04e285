package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/randevubot/randevubot/services/portal-service/internal/model"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	t.Cleanup(mock.Close)
	return mock
}

func TestListAppointmentsOrdersByTime(t *testing.T) {
	mock := newMock(t)
	at := time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC)
	rows := pgxmock.NewRows([]string{"id", "company_id", "appointment_time", "customer_name", "customer_phone", "service", "duration", "status", "notes"}).
		AddRow("a-1", "c-1", at, "Ahmet Yılmaz", "+90 532 123 45 67", "Saç Kesimi", 30, "confirmed", "").
		AddRow("a-2", "c-1", at.Add(time.Hour), "Ayşe Demir", "+90 533 987 65 43", "Sakal", 15, "pending", "kapıda")
	mock.ExpectQuery("SELECT (.+) FROM appointments WHERE company_id = \\$1 ORDER BY appointment_time ASC").
		WithArgs("c-1").
		WillReturnRows(rows)

	got, err := NewRepository(mock).ListAppointments(context.Background(), "c-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].ID != "a-1" || got[1].Notes != "kapıda" || !got[0].AppointmentTime.Equal(at) {
		t.Fatalf("unexpected rows %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestListAppointmentsPropagatesError(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery("FROM appointments").WithArgs("c-1").WillReturnError(errors.New("relation does not exist"))

	if _, err := NewRepository(mock).ListAppointments(context.Background(), "c-1"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestDeleteAppointmentReportsRowsAffected(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec("DELETE FROM appointments").WithArgs("a-1", "c-1").WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec("DELETE FROM appointments").WithArgs("a-2", "c-1").WillReturnResult(pgxmock.NewResult("DELETE", 0))

	repo := NewRepository(mock)
	deleted, err := repo.DeleteAppointment(context.Background(), "c-1", "a-1")
	if err != nil || !deleted {
		t.Fatalf("expected deleted, got %v err=%v", deleted, err)
	}
	deleted, err = repo.DeleteAppointment(context.Background(), "c-1", "a-2")
	if err != nil || deleted {
		t.Fatalf("expected nothing deleted, got %v err=%v", deleted, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestInsertCompanyDefaultsToTrial(t *testing.T) {
	mock := newMock(t)
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery("INSERT INTO companies").
		WithArgs("Berber Ali", "ali@example.com", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), "trial").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "email", "phone", "phone_verified", "address", "plan_type", "created_at"}).
			AddRow("c-1", "Berber Ali", "ali@example.com", "", false, "", "trial", created))

	row, err := NewRepository(mock).InsertCompany(context.Background(), NewCompany{
		Name:         "Berber Ali",
		Email:        "ali@example.com",
		Services:     []model.ServiceInput{{ID: "s1", Name: "Saç Kesimi", Duration: "30"}},
		WorkingHours: model.DefaultWorkingHours(),
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if row.ID != "c-1" || row.PlanType != "trial" || !row.CreatedAt.Equal(created) {
		t.Fatalf("unexpected row %+v", row)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestInsertServicesSingleStatement(t *testing.T) {
	mock := newMock(t)
	price := 150.0
	mock.ExpectExec("INSERT INTO company_services").
		WithArgs(
			"c-1", "Saç Kesimi", &price, 30, pgxmock.AnyArg(), "GBP",
			"c-1", "Sakal", (*float64)(nil), 30, "Ustura ile", "GBP",
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 2))

	err := NewRepository(mock).InsertServices(context.Background(), "c-1", []NewService{
		{Name: "Saç Kesimi", Price: &price, DurationMinutes: 30, Currency: "GBP"},
		{Name: "Sakal", DurationMinutes: 30, Description: "Ustura ile", Currency: "GBP"},
	})
	if err != nil {
		t.Fatalf("insert services: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestInsertServicesEmptyIsNoop(t *testing.T) {
	mock := newMock(t)
	if err := NewRepository(mock).InsertServices(context.Background(), "c-1", nil); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
