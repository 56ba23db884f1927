// Package shift is the catalogue of working slots used by the planning,
// for example "09h00-19h00" or "Day Off".
package shift

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// DefaultColor is used when a shift is created without one.
const DefaultColor = "#3ea8ea"

type Spec struct {
	Value    string
	BgColor  string
	Holiday  bool
	EntityID *uint
	UserID   *uint
}

type Shift struct {
	id        uint
	spec      Spec
	removable bool
	deleted   bool
	createdAt time.Time
}

// NewShift creates a removable shift.
func NewShift(spec Spec) (*Shift, error) {
	spec.Value = strings.TrimSpace(spec.Value)
	if spec.Value == "" {
		return nil, fmt.Errorf("value is required")
	}
	if spec.BgColor == "" {
		spec.BgColor = DefaultColor
	}
	if !colorPattern.MatchString(spec.BgColor) {
		return nil, fmt.Errorf("bgColor %q is not a #rrggbb color", spec.BgColor)
	}
	return &Shift{spec: spec, removable: true, createdAt: time.Now().UTC()}, nil
}

func ReconstructShift(id uint, spec Spec, removable, deleted bool, createdAt time.Time) *Shift {
	return &Shift{id: id, spec: spec, removable: removable, deleted: deleted, createdAt: createdAt}
}

func (s *Shift) ID() uint             { return s.id }
func (s *Shift) Spec() Spec           { return s.spec }
func (s *Shift) Value() string        { return s.spec.Value }
func (s *Shift) Removable() bool      { return s.removable }
func (s *Shift) Deleted() bool        { return s.deleted }
func (s *Shift) CreatedAt() time.Time { return s.createdAt }

func (s *Shift) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("shift ID is already set")
	}
	s.id = id
	return nil
}

// SetDeleted hides or restores the shift. Built-in shifts cannot be hidden.
func (s *Shift) SetDeleted(deleted bool) error {
	if deleted && !s.removable {
		return fmt.Errorf("shift %q is built in", s.spec.Value)
	}
	s.deleted = deleted
	return nil
}

// Defaults is the built-in catalogue seeded on an empty table.
func Defaults() []*Shift {
	builtin := []Spec{
		{Value: "09h00-19h00", BgColor: "#3ea8ea"},
		{Value: "10h00-20h00", BgColor: "#8ef0ac"},
		{Value: "12h00-22h00", BgColor: "#dbf08e"},
		{Value: "14h30-00h00", BgColor: "#2e661a"},
		{Value: "Day Off", BgColor: "#f4a22f", Holiday: true},
	}
	now := time.Now().UTC()
	out := make([]*Shift, 0, len(builtin))
	for _, spec := range builtin {
		out = append(out, &Shift{spec: spec, createdAt: now})
	}
	return out
}
