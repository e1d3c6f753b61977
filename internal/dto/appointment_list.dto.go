package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barber-backoffice/internal/models"
)

type AppointmentListDTO struct {
	ID              uint            `json:"id"`
	StartTime       time.Time       `json:"start_time"`
	EndTime         time.Time       `json:"end_time"`
	Status          string          `json:"status"`
	Price           decimal.Decimal `json:"price"`
	Notes           string          `json:"notes"`
	ClientID        uint            `json:"client_id"`
	ClientName      string          `json:"client_name"`
	ClientPhone     string          `json:"client_phone"`
	ServiceID       uint            `json:"service_id"`
	ServiceName     string          `json:"service_name"`
	DurationMinutes int             `json:"duration_minutes"`
	BarberID        uint            `json:"barber_id"`
	BarberName      string          `json:"barber_name"`
}

// NewAppointmentList flattens appointments with their preloaded references.
func NewAppointmentList(apps []models.Appointment, loc *time.Location) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(apps))
	for _, ap := range apps {
		item := AppointmentListDTO{
			ID:        ap.ID,
			StartTime: ap.StartTime.In(loc),
			EndTime:   ap.EndTime.In(loc),
			Status:    ap.Status,
			Price:     ap.Price,
			Notes:     ap.Notes,
			ClientID:  ap.ClientID,
			ServiceID: ap.ServiceID,
			BarberID:  ap.BarberID,
		}
		if ap.Client != nil {
			item.ClientName = ap.Client.Name
			item.ClientPhone = ap.Client.Phone
		}
		if ap.Service != nil {
			item.ServiceName = ap.Service.Name
			item.DurationMinutes = ap.Service.DurationMinutes
		}
		if ap.Barber != nil {
			item.BarberName = ap.Barber.FullName
		}
		out = append(out, item)
	}
	return out
}
