package directory

import (
	"time"

	"github.com/randevubot/randevubot/services/portal-service/internal/model"
)

// seedAppointments is the sample list shown when a company has no
// appointments yet (or the remote read failed). It is never written to the
// remote store.
func seedAppointments(today time.Time) []model.Appointment {
	day := today.Format(dateLayout)
	tomorrow := today.AddDate(0, 0, 1).Format(dateLayout)
	return []model.Appointment{
		{
			ID:              "seed-1",
			Date:            day,
			Time:            "10:00",
			CustomerName:    "Ahmet Yılmaz",
			CustomerPhone:   "+90 532 123 45 67",
			Service:         "Saç Kesimi",
			DurationMinutes: 30,
			Status:          model.StatusConfirmed,
			Notes:           "Kısa kesim tercih ediyor",
		},
		{
			ID:              "seed-2",
			Date:            day,
			Time:            "14:30",
			CustomerName:    "Ayşe Demir",
			CustomerPhone:   "+90 533 987 65 43",
			Service:         "Saç Kesimi + Sakal",
			DurationMinutes: 45,
			Status:          model.StatusPending,
		},
		{
			ID:              "seed-3",
			Date:            tomorrow,
			Time:            "11:00",
			CustomerName:    "Mehmet Kaya",
			CustomerPhone:   "+90 534 555 66 77",
			Service:         "Cilt Bakımı",
			DurationMinutes: 60,
			Status:          model.StatusConfirmed,
			Notes:           "Hassas cilt",
		},
	}
}
