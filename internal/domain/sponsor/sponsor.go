// Package sponsor holds the partner portals agents sign in to on behalf of
// an entity. Login credentials are only disclosed to actors of a granted
// entity.
package sponsor

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusInactive
}

// Login is what an agent needs to open the portal.
type Login struct {
	LoginLink        string
	HomeLink         string
	RestrictedPages  []string
	LoginSelector    string
	PasswordSelector string
	SubmitSelector   string
	Username         string
	Password         string
}

func (l Login) validate() error {
	if strings.TrimSpace(l.LoginLink) == "" {
		return fmt.Errorf("login link is required")
	}
	if l.LoginSelector == "" || l.PasswordSelector == "" || l.SubmitSelector == "" {
		return fmt.Errorf("login, password and submit selectors are required")
	}
	return nil
}

type Sponsor struct {
	id        uint
	name      string
	login     Login
	entityIDs []uint
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

func NewSponsor(name string, login Login, entityIDs []uint) (*Sponsor, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if err := login.validate(); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &Sponsor{
		name:      name,
		login:     login,
		entityIDs: normalizeEntities(entityIDs),
		status:    StatusActive,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructSponsor(id uint, name string, login Login, entityIDs []uint, status Status, createdAt, updatedAt time.Time) *Sponsor {
	return &Sponsor{
		id:        id,
		name:      name,
		login:     login,
		entityIDs: entityIDs,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (s *Sponsor) ID() uint             { return s.id }
func (s *Sponsor) Name() string         { return s.name }
func (s *Sponsor) Login() Login         { return s.login }
func (s *Sponsor) EntityIDs() []uint    { return s.entityIDs }
func (s *Sponsor) Status() Status       { return s.status }
func (s *Sponsor) CreatedAt() time.Time { return s.createdAt }
func (s *Sponsor) UpdatedAt() time.Time { return s.updatedAt }

func (s *Sponsor) IsActive() bool { return s.status == StatusActive }

func (s *Sponsor) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("sponsor ID is already set")
	}
	s.id = id
	return nil
}

// Edit replaces the name, credentials and entity list.
func (s *Sponsor) Edit(name string, login Login, entityIDs []uint) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if err := login.validate(); err != nil {
		return err
	}
	s.name = name
	s.login = login
	s.entityIDs = normalizeEntities(entityIDs)
	s.updatedAt = time.Now().UTC()
	return nil
}

func normalizeEntities(ids []uint) []uint {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}
