package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/deskhub/deskhub/internal/domain/ticket"
	vo "github.com/deskhub/deskhub/internal/domain/ticket/valueobjects"
	"github.com/deskhub/deskhub/internal/domain/visibility"
	"github.com/deskhub/deskhub/internal/infrastructure/persistence/mappers"
	"github.com/deskhub/deskhub/internal/infrastructure/persistence/models"
	"github.com/deskhub/deskhub/internal/shared/db"
	"github.com/deskhub/deskhub/internal/shared/logger"
	"github.com/deskhub/deskhub/internal/shared/query"
)

// ticketFilterFields is the whitelist of filter keys the front-end sends.
var ticketFilterFields = map[string]query.Field{
	"id":                {Column: "tickets.id", Kind: query.KindUint},
	"status":            {Column: "tickets.status", Kind: query.KindString},
	"severity":          {Column: "tickets.severity", Kind: query.KindString},
	"type":              {Column: "tickets.type", Kind: query.KindString},
	"user":              {Column: "tickets.user_id", Kind: query.KindUint},
	"assigned_to":       {Column: "tickets.assigned_to", Kind: query.KindUint},
	"entity":            {Column: "tickets.entity_id", Kind: query.KindUint},
	"departement":       {Column: "tickets.departement_id", Kind: query.KindUint},
	"issuer_team":       {Column: "tickets.issuer_team_id", Kind: query.KindUint},
	"target_team":       {Column: "tickets.target_team_id", Kind: query.KindUint},
	"related_ressource": {Column: "tickets.related_ressource", Kind: query.KindString},
	"pinned":            {Column: "tickets.pinned", Kind: query.KindBool},
	"archived":          {Column: "tickets.archived", Kind: query.KindBool},
}

var ticketSortFields = map[string]string{
	"id":         "tickets.id",
	"updatedAt":  "tickets.updated_at",
	"createdAt":  "tickets.created_at",
	"lastUpdate": "tickets.last_update",
	"status":     "tickets.status",
	"severity":   "tickets.severity",
	"subject":    "tickets.subject",
}

const (
	ticketDefaultOrder = "tickets.updated_at DESC"
	ticketPinnedOrder  = "tickets.pinned DESC, tickets.updated_at DESC"
)

type TicketQueryRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
	logger logger.Interface
}

func NewTicketQueryRepository(db *gorm.DB, logger logger.Interface) *TicketQueryRepository {
	return &TicketQueryRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
		logger: logger,
	}
}

// filtered builds the scoped, filtered query shared by List and IDs. Support
// agents get their filters OR-combined inside the entity gate; everyone else
// AND-combines them.
func (r *TicketQueryRepository) filtered(ctx context.Context, scope visibility.Scope, params query.Params) (*gorm.DB, error) {
	conds, err := params.Conditions(ticketFilterFields)
	if err != nil {
		return nil, err
	}

	tx := db.GetTxFromContext(ctx, r.db).
		Model(&models.TicketModel{}).
		Scopes(ticketScope(scope))

	if scope.IsSupport() && !scope.Admin {
		if params.AssignedTo != nil && *params.AssignedTo != 0 {
			tx = tx.Scopes(supportAssignment(*params.AssignedTo))
		}
		return tx.Scopes(orConditions(conds)), nil
	}
	return tx.Scopes(andConditions(conds)), nil
}

func ticketOrder(params query.Params) string {
	if params.SortField == "" {
		return ticketPinnedOrder + ", tickets.id DESC"
	}
	return params.OrderBy(ticketSortFields, ticketDefaultOrder) + ", tickets.id DESC"
}

func (r *TicketQueryRepository) List(ctx context.Context, scope visibility.Scope, params query.Params) ([]*ticket.Ticket, int64, error) {
	q, err := r.filtered(ctx, scope, params)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count tickets", "error", err)
		return nil, 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	var rows []models.TicketModel
	if err := q.Order(ticketOrder(params)).
		Scopes(db.Paginate(params.Page(), params.Size())).
		Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list tickets", "error", err)
		return nil, 0, fmt.Errorf("failed to list tickets: %w", err)
	}

	tickets, err := r.mapper.ToDomainList(rows)
	if err != nil {
		return nil, 0, err
	}
	return tickets, total, nil
}

func (r *TicketQueryRepository) IDs(ctx context.Context, scope visibility.Scope, params query.Params) ([]uint, error) {
	q, err := r.filtered(ctx, scope, params)
	if err != nil {
		return nil, err
	}
	var ids []uint
	if err := q.Order(ticketOrder(params)).Pluck("tickets.id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list ticket ids: %w", err)
	}
	return ids, nil
}

func (r *TicketQueryRepository) CountByStatus(ctx context.Context, scope visibility.Scope) ([]ticket.StatusCount, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.TicketModel{}).
		Scopes(ticketScope(scope)).
		Select("tickets.status AS status, COUNT(*) AS count").
		Group("tickets.status").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count tickets by status: %w", err)
	}

	byStatus := make(map[vo.TicketStatus]int64, len(rows))
	for _, row := range rows {
		byStatus[vo.TicketStatus(row.Status)] = row.Count
	}
	out := make([]ticket.StatusCount, 0, len(vo.AllStatuses))
	for _, s := range vo.AllStatuses {
		out = append(out, ticket.StatusCount{Status: s, Count: byStatus[s]})
	}
	return out, nil
}

// Search matches message bodies and returns their visible parent tickets.
func (r *TicketQueryRepository) Search(ctx context.Context, scope visibility.Scope, text string) ([]*ticket.Ticket, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return []*ticket.Ticket{}, nil
	}
	tx := db.GetTxFromContext(ctx, r.db)

	matching := tx.Session(&gorm.Session{NewDB: true}).
		Model(&models.MessageModel{}).
		Select("ticket_id").
		Scopes(db.ContainsFold("body", text))

	var rows []models.TicketModel
	if err := tx.Model(&models.TicketModel{}).
		Scopes(ticketScope(scope)).
		Where("tickets.id IN (?)", matching).
		Order(ticketDefaultOrder + ", tickets.id DESC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to search tickets: %w", err)
	}
	return r.mapper.ToDomainList(rows)
}

func (r *TicketQueryRepository) GetVisible(ctx context.Context, scope visibility.Scope, ticketID uint) (*ticket.Ticket, error) {
	var model models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.TicketModel{}).
		Scopes(ticketScope(scope)).
		Where("tickets.id = ?", ticketID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	return r.mapper.ToDomain(&model)
}
