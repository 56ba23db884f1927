package dto

import (
	"time"

	"github.com/deskhub/deskhub/internal/domain/sponsor"
	"github.com/deskhub/deskhub/internal/shared/mapper"
)

// SponsorDTO is the admin view, credentials included.
type SponsorDTO struct {
	ID               uint      `json:"id"`
	Name             string    `json:"name"`
	LoginLink        string    `json:"login_link"`
	HomeLink         string    `json:"home_link"`
	RestrictedPages  []string  `json:"restricted_pages"`
	LoginSelector    string    `json:"login_selector"`
	PasswordSelector string    `json:"password_selector"`
	SubmitSelector   string    `json:"submit_selector"`
	Username         string    `json:"username"`
	Password         string    `json:"password"`
	Entities         []uint    `json:"entities"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"createdAt"`
}

// SponsorSummaryDTO is what agents see in listings.
type SponsorSummaryDTO struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Entities []uint `json:"entities"`
}

// SponsorLoginDTO is handed to an agent opening the portal.
type SponsorLoginDTO struct {
	LoginLink        string   `json:"login_link"`
	HomeLink         string   `json:"home_link"`
	RestrictedPages  []string `json:"restricted_pages"`
	LoginSelector    string   `json:"login_selector"`
	PasswordSelector string   `json:"password_selector"`
	SubmitSelector   string   `json:"submit_selector"`
	Username         string   `json:"username"`
	Password         string   `json:"password"`
}

type EntityGroupDTO struct {
	ID       uint                 `json:"id"`
	Name     string               `json:"name"`
	Sponsors []*SponsorSummaryDTO `json:"sponsors"`
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}

func ToSponsorDTO(s *sponsor.Sponsor) *SponsorDTO {
	l := s.Login()
	return &SponsorDTO{
		ID:               s.ID(),
		Name:             s.Name(),
		LoginLink:        l.LoginLink,
		HomeLink:         l.HomeLink,
		RestrictedPages:  nonNil(l.RestrictedPages),
		LoginSelector:    l.LoginSelector,
		PasswordSelector: l.PasswordSelector,
		SubmitSelector:   l.SubmitSelector,
		Username:         l.Username,
		Password:         l.Password,
		Entities:         nonNil(s.EntityIDs()),
		Status:           string(s.Status()),
		CreatedAt:        s.CreatedAt(),
	}
}

func ToSponsorDTOs(list []*sponsor.Sponsor) []*SponsorDTO {
	return nonNil(mapper.MapSlicePtrSkipNil(list, ToSponsorDTO))
}

func ToSponsorSummaryDTO(s *sponsor.Sponsor) *SponsorSummaryDTO {
	return &SponsorSummaryDTO{ID: s.ID(), Name: s.Name(), Entities: nonNil(s.EntityIDs())}
}

func ToSponsorSummaryDTOs(list []*sponsor.Sponsor) []*SponsorSummaryDTO {
	return nonNil(mapper.MapSlicePtrSkipNil(list, ToSponsorSummaryDTO))
}

func ToSponsorLoginDTO(s *sponsor.Sponsor) *SponsorLoginDTO {
	l := s.Login()
	return &SponsorLoginDTO{
		LoginLink:        l.LoginLink,
		HomeLink:         l.HomeLink,
		RestrictedPages:  nonNil(l.RestrictedPages),
		LoginSelector:    l.LoginSelector,
		PasswordSelector: l.PasswordSelector,
		SubmitSelector:   l.SubmitSelector,
		Username:         l.Username,
		Password:         l.Password,
	}
}

func ToEntityGroupDTOs(groups []sponsor.EntityGroup) []*EntityGroupDTO {
	out := make([]*EntityGroupDTO, 0, len(groups))
	for _, g := range groups {
		out = append(out, &EntityGroupDTO{ID: g.EntityID, Name: g.EntityName, Sponsors: ToSponsorSummaryDTOs(g.Sponsors)})
	}
	return out
}
