package mappers

import (
	"github.com/deskhub/deskhub/internal/domain/holiday"
	"github.com/deskhub/deskhub/internal/infrastructure/persistence/models"
)

func HolidayToModel(h *holiday.Holiday) *models.HolidayModel {
	f := h.Flags()
	return &models.HolidayModel{
		ID:             h.ID(),
		UserID:         h.UserID(),
		From:           h.From(),
		To:             h.To(),
		Notes:          h.Notes(),
		CreatedBy:      h.CreatedBy(),
		IsOkByHr:       f.IsOkByHr,
		IsOkByChef:     f.IsOkByChef,
		IsRejectByHr:   f.IsRejectByHr,
		IsRejectByChef: f.IsRejectByChef,
		Status:         string(h.Status()),
		CreatedAt:      h.CreatedAt(),
		UpdatedAt:      h.UpdatedAt(),
	}
}

func HolidayToDomain(m *models.HolidayModel) (*holiday.Holiday, error) {
	return holiday.ReconstructHoliday(m.ID, m.UserID, m.From, m.To, m.Notes, m.CreatedBy, holiday.Decision{
		IsOkByHr:       m.IsOkByHr,
		IsOkByChef:     m.IsOkByChef,
		IsRejectByHr:   m.IsRejectByHr,
		IsRejectByChef: m.IsRejectByChef,
	}, holiday.Status(m.Status), m.CreatedAt, m.UpdatedAt)
}

func DaysoffToDomain(m *models.DaysoffModel) *holiday.Daysoff {
	return holiday.ReconstructDaysoff(m.ID, m.Name, m.Date, m.CreatedAt)
}
