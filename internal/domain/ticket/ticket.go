package ticket

import (
	"fmt"
	"time"

	vo "github.com/deskhub/deskhub/internal/domain/ticket/valueobjects"
)

type Ticket struct {
	id               uint
	userID           uint
	assignedTo       *uint
	entityID         *uint
	departmentID     *uint
	issuerTeamID     *uint
	targetTeamID     *uint
	status           vo.TicketStatus
	severity         vo.Severity
	ticketType       vo.TicketType
	subject          string
	relatedRessource string
	notes            string
	closedBy         *uint
	resolvedBy       *uint
	lastUpdate       *time.Time
	archived         bool
	pinned           bool
	createdAt        time.Time
	updatedAt        time.Time
}

// Routing holds the organisational placement of a ticket.
type Routing struct {
	AssignedTo   *uint
	EntityID     *uint
	DepartmentID *uint
	IssuerTeamID *uint
	TargetTeamID *uint
}

// Content holds the descriptive fields editable after creation.
type Content struct {
	Subject          string
	RelatedRessource string
	Notes            string
	Severity         vo.Severity
	Type             vo.TicketType
}

func NewTicket(userID uint, content Content, routing Routing) (*Ticket, error) {
	if userID == 0 {
		return nil, fmt.Errorf("ticket owner is required")
	}
	if err := content.validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Ticket{
		userID:           userID,
		assignedTo:       routing.AssignedTo,
		entityID:         routing.EntityID,
		departmentID:     routing.DepartmentID,
		issuerTeamID:     routing.IssuerTeamID,
		targetTeamID:     routing.TargetTeamID,
		status:           vo.StatusOpen,
		severity:         content.Severity,
		ticketType:       content.typeOrDefault(),
		subject:          content.Subject,
		relatedRessource: content.RelatedRessource,
		notes:            content.Notes,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

func (c Content) validate() error {
	if len(c.Subject) == 0 {
		return fmt.Errorf("subject is required")
	}
	if len(c.Subject) > 255 {
		return fmt.Errorf("subject exceeds maximum length of 255 characters")
	}
	if !c.Severity.IsValid() {
		return fmt.Errorf("invalid severity: %s", c.Severity)
	}
	if c.Type != "" && !c.Type.IsValid() {
		return fmt.Errorf("invalid ticket type: %s", c.Type)
	}
	return nil
}

func (c Content) typeOrDefault() vo.TicketType {
	if c.Type == "" {
		return vo.TypeSupport
	}
	return c.Type
}

// Snapshot is the persisted state handed to ReconstructTicket.
type Snapshot struct {
	ID         uint
	UserID     uint
	Routing    Routing
	Content    Content
	Status     vo.TicketStatus
	ClosedBy   *uint
	ResolvedBy *uint
	LastUpdate *time.Time
	Archived   bool
	Pinned     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func ReconstructTicket(s Snapshot) (*Ticket, error) {
	if s.ID == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if !s.Status.IsValid() {
		return nil, fmt.Errorf("invalid status: %s", s.Status)
	}
	return &Ticket{
		id:               s.ID,
		userID:           s.UserID,
		assignedTo:       s.Routing.AssignedTo,
		entityID:         s.Routing.EntityID,
		departmentID:     s.Routing.DepartmentID,
		issuerTeamID:     s.Routing.IssuerTeamID,
		targetTeamID:     s.Routing.TargetTeamID,
		status:           s.Status,
		severity:         s.Content.Severity,
		ticketType:       s.Content.typeOrDefault(),
		subject:          s.Content.Subject,
		relatedRessource: s.Content.RelatedRessource,
		notes:            s.Content.Notes,
		closedBy:         s.ClosedBy,
		resolvedBy:       s.ResolvedBy,
		lastUpdate:       s.LastUpdate,
		archived:         s.Archived,
		pinned:           s.Pinned,
		createdAt:        s.CreatedAt,
		updatedAt:        s.UpdatedAt,
	}, nil
}

func (t *Ticket) ID() uint {
	return t.id
}

func (t *Ticket) UserID() uint {
	return t.userID
}

func (t *Ticket) AssignedTo() *uint {
	return t.assignedTo
}

func (t *Ticket) EntityID() *uint {
	return t.entityID
}

func (t *Ticket) DepartmentID() *uint {
	return t.departmentID
}

func (t *Ticket) IssuerTeamID() *uint {
	return t.issuerTeamID
}

func (t *Ticket) TargetTeamID() *uint {
	return t.targetTeamID
}

func (t *Ticket) Status() vo.TicketStatus {
	return t.status
}

func (t *Ticket) Severity() vo.Severity {
	return t.severity
}

func (t *Ticket) Type() vo.TicketType {
	return t.ticketType
}

func (t *Ticket) Subject() string {
	return t.subject
}

func (t *Ticket) RelatedRessource() string {
	return t.relatedRessource
}

func (t *Ticket) Notes() string {
	return t.notes
}

func (t *Ticket) ClosedBy() *uint {
	return t.closedBy
}

func (t *Ticket) ResolvedBy() *uint {
	return t.resolvedBy
}

func (t *Ticket) LastUpdate() *time.Time {
	return t.lastUpdate
}

func (t *Ticket) Archived() bool {
	return t.archived
}

func (t *Ticket) Pinned() bool {
	return t.pinned
}

func (t *Ticket) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Ticket) UpdatedAt() time.Time {
	return t.updatedAt
}

func (t *Ticket) Routing() Routing {
	return Routing{
		AssignedTo:   t.assignedTo,
		EntityID:     t.entityID,
		DepartmentID: t.departmentID,
		IssuerTeamID: t.issuerTeamID,
		TargetTeamID: t.targetTeamID,
	}
}

func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

// IsParticipant reports whether actorID owns or is assigned the ticket.
func (t *Ticket) IsParticipant(actorID uint) bool {
	if t.userID == actorID {
		return true
	}
	return t.assignedTo != nil && *t.assignedTo == actorID
}

func (t *Ticket) Update(content Content, routing Routing) error {
	if err := content.validate(); err != nil {
		return err
	}
	t.subject = content.Subject
	t.relatedRessource = content.RelatedRessource
	t.notes = content.Notes
	t.severity = content.Severity
	t.ticketType = content.typeOrDefault()
	t.assignedTo = routing.AssignedTo
	t.entityID = routing.EntityID
	t.departmentID = routing.DepartmentID
	t.issuerTeamID = routing.IssuerTeamID
	t.targetTeamID = routing.TargetTeamID
	t.updatedAt = time.Now().UTC()
	return nil
}

// ChangeStatus moves the ticket to newStatus. Any status may follow any
// other; closing and resolving record who did it.
func (t *Ticket) ChangeStatus(newStatus vo.TicketStatus, changedBy uint) error {
	if !newStatus.IsValid() {
		return fmt.Errorf("invalid status: %s", newStatus)
	}
	if t.status == newStatus {
		return nil
	}

	t.status = newStatus
	switch {
	case newStatus.IsClosed():
		t.closedBy = &changedBy
	case newStatus.IsResolved():
		t.resolvedBy = &changedBy
	}
	t.updatedAt = time.Now().UTC()
	return nil
}

// Forward reassigns the ticket to another team, clearing the assignee.
func (t *Ticket) Forward(targetTeamID uint) error {
	if targetTeamID == 0 {
		return fmt.Errorf("target team is required")
	}
	t.targetTeamID = &targetTeamID
	t.assignedTo = nil
	t.updatedAt = time.Now().UTC()
	return nil
}

func (t *Ticket) SetPinned(pinned bool) {
	t.pinned = pinned
	t.updatedAt = time.Now().UTC()
}

// Touch records activity on the ticket, e.g. a new message.
func (t *Ticket) Touch(at time.Time) {
	t.lastUpdate = &at
	t.updatedAt = at
}
