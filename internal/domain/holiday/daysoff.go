package holiday

import (
	"fmt"
	"time"

	"github.com/deskhub/deskhub/internal/shared/biztime"
)

// Daysoff is a public holiday excluded from leave counting.
type Daysoff struct {
	id        uint
	name      string
	date      string
	createdAt time.Time
}

func NewDaysoff(name, date string) (*Daysoff, error) {
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if _, err := biztime.ParseDate(date); err != nil {
		return nil, err
	}
	return &Daysoff{name: name, date: date, createdAt: time.Now().UTC()}, nil
}

func ReconstructDaysoff(id uint, name, date string, createdAt time.Time) *Daysoff {
	return &Daysoff{id: id, name: name, date: date, createdAt: createdAt}
}

func (d *Daysoff) ID() uint             { return d.id }
func (d *Daysoff) Name() string         { return d.name }
func (d *Daysoff) Date() string         { return d.date }
func (d *Daysoff) CreatedAt() time.Time { return d.createdAt }

func (d *Daysoff) SetID(id uint) error {
	if d.id != 0 {
		return fmt.Errorf("daysoff ID is already set")
	}
	d.id = id
	return nil
}

func (d *Daysoff) Rename(name, date string) error {
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if _, err := biztime.ParseDate(date); err != nil {
		return err
	}
	d.name, d.date = name, date
	return nil
}
