package dto

import (
	"time"

	"github.com/deskhub/deskhub/internal/domain/holiday"
	"github.com/deskhub/deskhub/internal/shared/mapper"
)

// HolidayDTO keeps the flag names the planning screens read.
type HolidayDTO struct {
	ID             uint      `json:"id"`
	UserID         uint      `json:"user"`
	From           string    `json:"from"`
	To             string    `json:"to"`
	Notes          string    `json:"notes"`
	CreatedBy      *uint     `json:"createdBy"`
	IsOkByHr       bool      `json:"isOkByHr"`
	IsOkByChef     bool      `json:"isOkByChef"`
	IsRejectByHr   bool      `json:"isRejectByHr"`
	IsRejectByChef bool      `json:"isRejectByChef"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type DaysoffDTO struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
}

type HolidayListDTO struct {
	Items      []*HolidayDTO `json:"items"`
	TotalCount int64         `json:"totalCount"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
}

// BalanceDTO reports a ledger movement.
type BalanceDTO struct {
	ActorID uint    `json:"user"`
	Days    int     `json:"days"`
	Solde   float64 `json:"solde"`
}

func ToHolidayDTO(h *holiday.Holiday) *HolidayDTO {
	if h == nil {
		return nil
	}
	flags := h.Flags()
	return &HolidayDTO{
		ID:             h.ID(),
		UserID:         h.UserID(),
		From:           h.From(),
		To:             h.To(),
		Notes:          h.Notes(),
		CreatedBy:      h.CreatedBy(),
		IsOkByHr:       flags.IsOkByHr,
		IsOkByChef:     flags.IsOkByChef,
		IsRejectByHr:   flags.IsRejectByHr,
		IsRejectByChef: flags.IsRejectByChef,
		Status:         string(h.Status()),
		CreatedAt:      h.CreatedAt(),
		UpdatedAt:      h.UpdatedAt(),
	}
}

func ToHolidayDTOs(holidays []*holiday.Holiday) []*HolidayDTO {
	out := mapper.MapSlicePtrSkipNil(holidays, ToHolidayDTO)
	if out == nil {
		return []*HolidayDTO{}
	}
	return out
}

func ToDaysoffDTO(d *holiday.Daysoff) *DaysoffDTO {
	return &DaysoffDTO{
		ID:        d.ID(),
		Name:      d.Name(),
		Date:      d.Date(),
		CreatedAt: d.CreatedAt(),
	}
}

func ToDaysoffDTOs(days []*holiday.Daysoff) []*DaysoffDTO {
	out := mapper.MapSlicePtrSkipNil(days, ToDaysoffDTO)
	if out == nil {
		return []*DaysoffDTO{}
	}
	return out
}
