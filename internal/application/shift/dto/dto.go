package dto

import (
	"time"

	"github.com/deskhub/deskhub/internal/domain/shift"
	"github.com/deskhub/deskhub/internal/shared/mapper"
)

type ShiftDTO struct {
	ID        uint      `json:"id"`
	Value     string    `json:"value"`
	BgColor   string    `json:"bgColor"`
	Holiday   bool      `json:"holiday"`
	Entity    *uint     `json:"entity"`
	User      *uint     `json:"user"`
	Removable bool      `json:"todelete"`
	Deleted   bool      `json:"deleted"`
	CreatedAt time.Time `json:"createdAt"`
}

func ToShiftDTO(s *shift.Shift) *ShiftDTO {
	spec := s.Spec()
	return &ShiftDTO{
		ID:        s.ID(),
		Value:     spec.Value,
		BgColor:   spec.BgColor,
		Holiday:   spec.Holiday,
		Entity:    spec.EntityID,
		User:      spec.UserID,
		Removable: s.Removable(),
		Deleted:   s.Deleted(),
		CreatedAt: s.CreatedAt(),
	}
}

func ToShiftDTOs(list []*shift.Shift) []*ShiftDTO {
	out := mapper.MapSlicePtrSkipNil(list, ToShiftDTO)
	if out == nil {
		return []*ShiftDTO{}
	}
	return out
}

type RecordDTO struct {
	ID       uint      `json:"id"`
	User     uint      `json:"user"`
	UserName string    `json:"userName"`
	Team     *uint     `json:"team"`
	Day      string    `json:"day"`
	BoxDay   int       `json:"boxDay"`
	Shift    *ShiftDTO `json:"shift"`
}

func ToRecordDTO(p *shift.PlannedRecord) *RecordDTO {
	out := &RecordDTO{
		ID:       p.Record.ID(),
		User:     p.Record.UserID(),
		UserName: p.UserName,
		Team:     p.TeamID,
		Day:      p.Record.Day(),
		BoxDay:   p.Record.BoxDay(),
	}
	if p.Shift != nil {
		out.Shift = ToShiftDTO(p.Shift)
	}
	return out
}

func ToRecordDTOs(list []*shift.PlannedRecord) []*RecordDTO {
	out := mapper.MapSlicePtrSkipNil(list, ToRecordDTO)
	if out == nil {
		return []*RecordDTO{}
	}
	return out
}
