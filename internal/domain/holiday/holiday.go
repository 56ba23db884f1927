// Package holiday models leave requests, their two-party approval and the
// public days off excluded from leave counting.
package holiday

import (
	"fmt"
	"time"

	"github.com/deskhub/deskhub/internal/shared/biztime"
)

type Status string

const (
	StatusOpen    Status = "Open"
	StatusApprove Status = "Approve"
	StatusReject  Status = "Reject"
	StatusCancel  Status = "Cancel"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusOpen, StatusApprove, StatusReject, StatusCancel:
		return true
	}
	return false
}

// Decision is the full set of approval flags submitted by a reviewer.
type Decision struct {
	IsOkByHr       bool
	IsOkByChef     bool
	IsRejectByHr   bool
	IsRejectByChef bool
}

type Holiday struct {
	id        uint
	userID    uint
	from      string
	to        string
	notes     string
	createdBy *uint
	flags     Decision
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

// NewHoliday creates a request for userID. A request created directly as
// Approve carries both approvals; a chef's own request is pre-approved by
// the chef side.
func NewHoliday(userID uint, from, to, notes string, createdBy *uint, status Status, ownerIsChef bool) (*Holiday, error) {
	if userID == 0 {
		return nil, fmt.Errorf("holiday owner is required")
	}
	if status == "" {
		status = StatusOpen
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid holiday status: %s", status)
	}
	if err := validateSpan(from, to); err != nil {
		return nil, err
	}

	h := &Holiday{
		userID:    userID,
		from:      from,
		to:        to,
		notes:     notes,
		createdBy: createdBy,
		status:    status,
	}
	if status == StatusApprove {
		h.flags.IsOkByChef = true
		h.flags.IsOkByHr = true
	}
	if ownerIsChef {
		h.flags.IsOkByChef = true
	}
	now := time.Now().UTC()
	h.createdAt, h.updatedAt = now, now
	return h, nil
}

func ReconstructHoliday(id, userID uint, from, to, notes string, createdBy *uint, flags Decision, status Status, createdAt, updatedAt time.Time) (*Holiday, error) {
	if id == 0 {
		return nil, fmt.Errorf("holiday ID cannot be zero")
	}
	return &Holiday{
		id:        id,
		userID:    userID,
		from:      from,
		to:        to,
		notes:     notes,
		createdBy: createdBy,
		flags:     flags,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func validateSpan(from, to string) error {
	start, err := biztime.ParseDate(from)
	if err != nil {
		return fmt.Errorf("from: %w", err)
	}
	end, err := biztime.ParseDate(to)
	if err != nil {
		return fmt.Errorf("to: %w", err)
	}
	if end.Before(start) {
		return fmt.Errorf("holiday ends before it starts")
	}
	return nil
}

func (h *Holiday) ID() uint             { return h.id }
func (h *Holiday) UserID() uint         { return h.userID }
func (h *Holiday) From() string         { return h.from }
func (h *Holiday) To() string           { return h.to }
func (h *Holiday) Notes() string        { return h.notes }
func (h *Holiday) CreatedBy() *uint     { return h.createdBy }
func (h *Holiday) Flags() Decision      { return h.flags }
func (h *Holiday) Status() Status       { return h.status }
func (h *Holiday) CreatedAt() time.Time { return h.createdAt }
func (h *Holiday) UpdatedAt() time.Time { return h.updatedAt }

func (h *Holiday) SetID(id uint) error {
	if h.id != 0 {
		return fmt.Errorf("holiday ID is already set")
	}
	h.id = id
	return nil
}

// Span returns the inclusive first and last day of the request.
func (h *Holiday) Span() (time.Time, time.Time, error) {
	start, err := biztime.ParseDate(h.from)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := biztime.ParseDate(h.to)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

// IsApproved is true only when both sides approved and the status says so.
func (h *Holiday) IsApproved() bool {
	return h.status == StatusApprove && h.flags.IsOkByChef && h.flags.IsOkByHr
}

func (h *Holiday) Edit(from, to, notes string) error {
	if err := validateSpan(from, to); err != nil {
		return err
	}
	h.from, h.to, h.notes = from, to, notes
	h.updatedAt = time.Now().UTC()
	return nil
}

// Decide stores the flags and derives the status. It returns true when the
// request just became approved and the balance must be recomputed.
func (h *Holiday) Decide(d Decision) bool {
	h.flags = d
	h.updatedAt = time.Now().UTC()

	switch {
	case d.IsOkByChef && d.IsOkByHr:
		h.status = StatusApprove
		return true
	case d.IsRejectByHr || d.IsRejectByChef:
		h.status = StatusReject
	}
	return false
}

// Cancel moves the request to Cancel and returns the status it had.
func (h *Holiday) Cancel() (Status, error) {
	if h.status == StatusCancel {
		return h.status, fmt.Errorf("holiday is already cancelled")
	}
	prev := h.status
	h.status = StatusCancel
	h.updatedAt = time.Now().UTC()
	return prev, nil
}

// ResetAfterCancel clears approvals once the balance has been credited.
// A chef loses only the HR approval; others have both cleared only when
// neither was set.
func (h *Holiday) ResetAfterCancel(ownerIsChef bool) {
	if ownerIsChef {
		h.flags.IsOkByHr = false
		return
	}
	if !h.flags.IsOkByChef && !h.flags.IsOkByHr {
		h.flags.IsOkByChef = false
		h.flags.IsOkByHr = false
	}
}
