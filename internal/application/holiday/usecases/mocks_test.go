package usecases

import (
	"context"
	"sync"
	"time"

	"github.com/deskhub/deskhub/internal/application/holiday/dto"
	"github.com/deskhub/deskhub/internal/domain/directory"
	"github.com/deskhub/deskhub/internal/domain/holiday"
	"github.com/deskhub/deskhub/internal/domain/shared/events"
	"github.com/deskhub/deskhub/internal/domain/visibility"
	"github.com/deskhub/deskhub/internal/shared/query"
)

// memHolidays backs both the write and the query repository.
type memHolidays struct {
	mu     sync.Mutex
	rows   map[uint]*holiday.Holiday
	nextID uint
}

func newMemHolidays(rows ...*holiday.Holiday) *memHolidays {
	m := &memHolidays{rows: map[uint]*holiday.Holiday{}, nextID: 100}
	for _, h := range rows {
		m.rows[h.ID()] = h
	}
	return m
}

func (m *memHolidays) Create(ctx context.Context, h *holiday.Holiday) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	if err := h.SetID(m.nextID); err != nil {
		return err
	}
	m.rows[h.ID()] = h
	return nil
}

func (m *memHolidays) Update(ctx context.Context, h *holiday.Holiday) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[h.ID()] = h
	return nil
}

func (m *memHolidays) GetByID(ctx context.Context, id uint) (*holiday.Holiday, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rows[id], nil
}

func (m *memHolidays) Delete(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rows, id)
	return nil
}

func (m *memHolidays) List(ctx context.Context, scope visibility.Scope, params query.Params) ([]*holiday.Holiday, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*holiday.Holiday
	for _, h := range m.rows {
		out = append(out, h)
	}
	return out, int64(len(out)), nil
}

func (m *memHolidays) GetVisible(ctx context.Context, scope visibility.Scope, id uint) (*holiday.Holiday, error) {
	return m.GetByID(ctx, id)
}

type memDaysoff struct {
	days []*holiday.Daysoff
}

func (m *memDaysoff) Create(ctx context.Context, d *holiday.Daysoff) error {
	if err := d.SetID(uint(len(m.days) + 1)); err != nil {
		return err
	}
	m.days = append(m.days, d)
	return nil
}

func (m *memDaysoff) Update(ctx context.Context, d *holiday.Daysoff) error { return nil }

func (m *memDaysoff) GetByID(ctx context.Context, id uint) (*holiday.Daysoff, error) {
	for _, d := range m.days {
		if d.ID() == id {
			return d, nil
		}
	}
	return nil, nil
}

func (m *memDaysoff) Delete(ctx context.Context, id uint) error { return nil }

func (m *memDaysoff) List(ctx context.Context) ([]*holiday.Daysoff, error) {
	return m.days, nil
}

// memDirectory serves actor lookups and records balance writes.
type memDirectory struct {
	mu     sync.Mutex
	actors map[uint]*directory.Actor
	soldes map[uint]float64
}

func newMemDirectory(actors ...*directory.Actor) *memDirectory {
	d := &memDirectory{actors: map[uint]*directory.Actor{}, soldes: map[uint]float64{}}
	for _, a := range actors {
		d.actors[a.ID()] = a
		d.soldes[a.ID()] = a.Solde()
	}
	return d
}

// GetByID returns a fresh copy carrying the stored balance, as a database
// read would.
func (d *memDirectory) GetByID(ctx context.Context, id uint) (*directory.Actor, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	a, ok := d.actors[id]
	if !ok {
		return nil, nil
	}
	return reconstruct(a, d.soldes[id]), nil
}

func (d *memDirectory) GetByIDs(ctx context.Context, ids []uint) ([]*directory.Actor, error) {
	var out []*directory.Actor
	for _, id := range ids {
		if a, _ := d.GetByID(ctx, id); a != nil {
			out = append(out, a)
		}
	}
	return out, nil
}

func (d *memDirectory) UpdateSolde(ctx context.Context, id uint, solde float64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.soldes[id] = solde
	return nil
}

func (d *memDirectory) solde(id uint) float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.soldes[id]
}

func reconstruct(a *directory.Actor, solde float64) *directory.Actor {
	out, err := directory.ReconstructActor(a.ID(), directory.ActorParams{
		Name:          a.Name(),
		Username:      a.Username(),
		Role:          a.Role(),
		UserType:      a.UserType(),
		TeamID:        a.TeamID(),
		EntityID:      a.EntityID(),
		DepartmentIDs: a.DepartmentIDs(),
		Solde:         solde,
	}, a.Activity(), a.Status(), a.Visible(), "", a.CreatedAt(), a.UpdatedAt())
	if err != nil {
		panic(err)
	}
	return out
}

func newActor(id uint, role directory.Role, userType directory.UserType, solde float64) *directory.Actor {
	a, err := directory.ReconstructActor(id, directory.ActorParams{
		Name:     "actor",
		Username: "actor",
		Role:     role,
		UserType: userType,
		Solde:    solde,
	}, directory.ActivityOffline, "active", true, "", time.Now(), time.Now())
	if err != nil {
		panic(err)
	}
	return a
}

func openHoliday(id, owner uint, from, to string) *holiday.Holiday {
	h, err := holiday.ReconstructHoliday(id, owner, from, to, "", nil, holiday.Decision{}, holiday.StatusOpen, time.Now(), time.Now())
	if err != nil {
		panic(err)
	}
	return h
}

type inlineTx struct{}

func (inlineTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type recordingPublisher struct {
	events []events.Event
}

func (p *recordingPublisher) Publish(e events.Event) {
	p.events = append(p.events, e)
}

type recordingNotifier struct {
	sent []*dto.HolidayDTO
	err  error
}

func (n *recordingNotifier) NotifyDecision(ctx context.Context, owner *directory.Actor, h *dto.HolidayDTO) error {
	n.sent = append(n.sent, h)
	return n.err
}
