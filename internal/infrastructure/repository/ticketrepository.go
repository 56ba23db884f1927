package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/deskhub/deskhub/internal/domain/ticket"
	vo "github.com/deskhub/deskhub/internal/domain/ticket/valueobjects"
	"github.com/deskhub/deskhub/internal/infrastructure/persistence/mappers"
	"github.com/deskhub/deskhub/internal/infrastructure/persistence/models"
	"github.com/deskhub/deskhub/internal/shared/db"
	"github.com/deskhub/deskhub/internal/shared/logger"
)

type TicketRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
	logger logger.Interface
}

func NewTicketRepository(db *gorm.DB, logger logger.Interface) *TicketRepository {
	return &TicketRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
		logger: logger,
	}
}

func (r *TicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create ticket: %w", err)
	}
	return t.SetID(model.ID)
}

func (r *TicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.TicketModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "created_at", "deleted_at").
		Updates(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update ticket: %w", result.Error)
	}
	return nil
}

func (r *TicketRepository) GetByID(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
	var model models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, ticketID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

func (r *TicketRepository) GetByIDs(ctx context.Context, ticketIDs []uint) ([]*ticket.Ticket, error) {
	if len(ticketIDs) == 0 {
		return []*ticket.Ticket{}, nil
	}
	var rows []models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("id IN ?", ticketIDs).Order("updated_at DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get tickets: %w", err)
	}
	return r.mapper.ToDomainList(rows)
}

// Delete soft-deletes the tickets and their messages and drops the read
// markers of those messages.
func (r *TicketRepository) Delete(ctx context.Context, ticketIDs ...uint) error {
	if len(ticketIDs) == 0 {
		return nil
	}
	tx := db.GetTxFromContext(ctx, r.db)

	return tx.Transaction(func(tx *gorm.DB) error {
		messageIDs := tx.Session(&gorm.Session{NewDB: true}).
			Model(&models.MessageModel{}).
			Select("id").
			Where("ticket_id IN ?", ticketIDs)

		if err := tx.Where("message_id IN (?)", messageIDs).Delete(&models.MessageReadModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete message reads: %w", err)
		}
		if err := tx.Where("ticket_id IN ?", ticketIDs).Delete(&models.MessageModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete messages: %w", err)
		}
		if err := tx.Where("id IN ?", ticketIDs).Delete(&models.TicketModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete tickets: %w", err)
		}
		return nil
	})
}

func (r *TicketRepository) UpdateStatus(ctx context.Context, ticketIDs []uint, status vo.TicketStatus, changedBy uint) (int64, error) {
	if len(ticketIDs) == 0 {
		return 0, nil
	}
	updates := map[string]any{"status": status.String()}
	switch {
	case status.IsClosed():
		updates["closed_by"] = changedBy
	case status.IsResolved():
		updates["resolved_by"] = changedBy
	}

	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.TicketModel{}).Where("id IN ?", ticketIDs).Updates(updates)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to update ticket status: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// ArchiveStale flags tickets last updated at or before cutoff. UpdateColumn
// keeps updated_at as it was.
func (r *TicketRepository) ArchiveStale(ctx context.Context, cutoff time.Time) (int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.TicketModel{}).
		Where("archived = ? AND updated_at <= ?", false, cutoff).
		UpdateColumn("archived", true)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to archive tickets: %w", result.Error)
	}
	return result.RowsAffected, nil
}

type MessageRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db, mapper: mappers.NewTicketMapper()}
}

func (r *MessageRepository) Create(ctx context.Context, m *ticket.Message) error {
	model := &models.MessageModel{
		TicketID:  m.TicketID(),
		UserID:    m.UserID(),
		Body:      m.Body(),
		CreatedAt: m.CreatedAt(),
	}
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return m.SetID(model.ID)
}

// Update rewrites the body only; messages are otherwise append-only.
func (r *MessageRepository) Update(ctx context.Context, m *ticket.Message) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.MessageModel{}).Where("id = ?", m.ID()).Update("body", m.Body()).Error; err != nil {
		return fmt.Errorf("failed to update message: %w", err)
	}
	return nil
}

func (r *MessageRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*ticket.Message, error) {
	var rows []models.MessageModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("ticket_id = ?", ticketID).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	if len(rows) == 0 {
		return []*ticket.Message{}, nil
	}

	ids := make([]uint, len(rows))
	for i := range rows {
		ids[i] = rows[i].ID
	}
	var reads []models.MessageReadModel
	if err := tx.Where("message_id IN ?", ids).Order("id ASC").Find(&reads).Error; err != nil {
		return nil, fmt.Errorf("failed to load message reads: %w", err)
	}
	readers := make(map[uint][]uint, len(rows))
	for _, rd := range reads {
		readers[rd.MessageID] = append(readers[rd.MessageID], rd.UserID)
	}

	out := make([]*ticket.Message, 0, len(rows))
	for i := range rows {
		out = append(out, r.mapper.MessageToDomain(&rows[i], readers[rows[i].ID]))
	}
	return out, nil
}
