package mappers

import (
	"github.com/deskhub/deskhub/internal/domain/shift"
	"github.com/deskhub/deskhub/internal/domain/sponsor"
	"github.com/deskhub/deskhub/internal/domain/tool"
	"github.com/deskhub/deskhub/internal/infrastructure/persistence/models"
)

func SponsorToModel(s *sponsor.Sponsor) *models.SponsorModel {
	l := s.Login()
	return &models.SponsorModel{
		ID:               s.ID(),
		Name:             s.Name(),
		LoginLink:        l.LoginLink,
		HomeLink:         l.HomeLink,
		RestrictedPages:  l.RestrictedPages,
		LoginSelector:    l.LoginSelector,
		PasswordSelector: l.PasswordSelector,
		SubmitSelector:   l.SubmitSelector,
		Username:         l.Username,
		Password:         l.Password,
		Status:           string(s.Status()),
		CreatedAt:        s.CreatedAt(),
		UpdatedAt:        s.UpdatedAt(),
	}
}

func SponsorToDomain(m *models.SponsorModel, entityIDs []uint) *sponsor.Sponsor {
	return sponsor.ReconstructSponsor(m.ID, m.Name, sponsor.Login{
		LoginLink:        m.LoginLink,
		HomeLink:         m.HomeLink,
		RestrictedPages:  m.RestrictedPages,
		LoginSelector:    m.LoginSelector,
		PasswordSelector: m.PasswordSelector,
		SubmitSelector:   m.SubmitSelector,
		Username:         m.Username,
		Password:         m.Password,
	}, entityIDs, sponsor.Status(m.Status), m.CreatedAt, m.UpdatedAt)
}

func ToolToModel(t *tool.Tool) *models.ToolModel {
	s := t.Spec()
	return &models.ToolModel{
		ID:          t.ID(),
		EntityID:    s.EntityID,
		Tool:        s.Tool,
		Name:        s.Name,
		Server:      s.Server,
		Port:        s.Port,
		Password:    s.Password,
		APILink:     s.APILink,
		Active:      s.Active,
		Deploying:   t.Deploying(),
		Logs:        t.Logs(),
		Description: s.Description,
		ClientURL:   s.ClientURL,
		CreatedAt:   t.CreatedAt(),
		UpdatedAt:   t.UpdatedAt(),
	}
}

func ToolToDomain(m *models.ToolModel) *tool.Tool {
	return tool.ReconstructTool(m.ID, tool.Spec{
		EntityID:    m.EntityID,
		Tool:        m.Tool,
		Name:        m.Name,
		Server:      m.Server,
		Port:        m.Port,
		Password:    m.Password,
		APILink:     m.APILink,
		Description: m.Description,
		ClientURL:   m.ClientURL,
		Active:      m.Active,
	}, m.Deploying, m.Logs, m.CreatedAt, m.UpdatedAt)
}

func ShiftToModel(s *shift.Shift) *models.ShiftModel {
	spec := s.Spec()
	return &models.ShiftModel{
		ID:        s.ID(),
		Value:     spec.Value,
		BgColor:   spec.BgColor,
		Holiday:   spec.Holiday,
		ToDelete:  s.Removable(),
		Deleted:   s.Deleted(),
		UserID:    spec.UserID,
		EntityID:  spec.EntityID,
		CreatedAt: s.CreatedAt(),
	}
}

func ShiftToDomain(m *models.ShiftModel) *shift.Shift {
	return shift.ReconstructShift(m.ID, shift.Spec{
		Value:    m.Value,
		BgColor:  m.BgColor,
		Holiday:  m.Holiday,
		EntityID: m.EntityID,
		UserID:   m.UserID,
	}, m.ToDelete, m.Deleted, m.CreatedAt)
}

func RecordToModel(r *shift.Record) *models.UserShiftModel {
	return &models.UserShiftModel{
		ID:      r.ID(),
		UserID:  r.UserID(),
		ShiftID: r.ShiftID(),
		Day:     r.Day(),
		BoxDay:  r.BoxDay(),
	}
}

func RecordToDomain(m *models.UserShiftModel) *shift.Record {
	return shift.ReconstructRecord(m.ID, m.UserID, m.ShiftID, m.Day, m.BoxDay)
}
