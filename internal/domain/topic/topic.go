// Package topic models 1:1 chat threads and their conversation entries.
package topic

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusOpen      Status = "OPEN"
	StatusCompleted Status = "COMPLETED"
)

func (s Status) IsValid() bool {
	return s == StatusOpen || s == StatusCompleted
}

type Topic struct {
	id          uint
	fromID      uint
	toID        uint
	subject     string
	status      Status
	updatedByID *uint
	createdAt   time.Time
	updatedAt   time.Time
}

func NewTopic(fromID, toID uint, subject string) (*Topic, error) {
	if fromID == 0 || toID == 0 {
		return nil, fmt.Errorf("both participants are required")
	}
	if fromID == toID {
		return nil, fmt.Errorf("a topic needs two distinct participants")
	}
	if len(subject) == 0 {
		return nil, fmt.Errorf("subject is required")
	}
	now := time.Now().UTC()
	return &Topic{
		fromID:    fromID,
		toID:      toID,
		subject:   subject,
		status:    StatusOpen,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructTopic(id, fromID, toID uint, subject string, status Status, updatedByID *uint, createdAt, updatedAt time.Time) (*Topic, error) {
	if id == 0 {
		return nil, fmt.Errorf("topic ID cannot be zero")
	}
	return &Topic{
		id:          id,
		fromID:      fromID,
		toID:        toID,
		subject:     subject,
		status:      status,
		updatedByID: updatedByID,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (t *Topic) ID() uint {
	return t.id
}

func (t *Topic) FromID() uint {
	return t.fromID
}

func (t *Topic) ToID() uint {
	return t.toID
}

func (t *Topic) Subject() string {
	return t.subject
}

func (t *Topic) Status() Status {
	return t.status
}

func (t *Topic) UpdatedByID() *uint {
	return t.updatedByID
}

func (t *Topic) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Topic) UpdatedAt() time.Time {
	return t.updatedAt
}

func (t *Topic) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("topic ID is already set")
	}
	t.id = id
	return nil
}

func (t *Topic) IsParticipant(actorID uint) bool {
	return t.fromID == actorID || t.toID == actorID
}

// Counterpart returns the other participant, or 0 if actorID is not one.
func (t *Topic) Counterpart(actorID uint) uint {
	switch actorID {
	case t.fromID:
		return t.toID
	case t.toID:
		return t.fromID
	}
	return 0
}

func (t *Topic) ChangeStatus(status Status, by uint) error {
	if !status.IsValid() {
		return fmt.Errorf("invalid topic status: %s", status)
	}
	t.status = status
	t.updatedByID = &by
	t.updatedAt = time.Now().UTC()
	return nil
}

func (t *Topic) Touch(at time.Time) {
	t.updatedAt = at
}
