package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"vendorbot/internal/core/domain/model/order"
	"vendorbot/internal/core/ports"
	"vendorbot/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// NextID draws from OrderIDSequence. Sequence values are never handed out twice, even
// when the surrounding transaction rolls back.
func (r *GormOrderRepository) NextID(ctx context.Context) (int64, error) {
	var id int64
	if err := r.db.WithContext(ctx).Raw(fmt.Sprintf("SELECT nextval('%s')", OrderIDSequence)).Scan(&id).Error; err != nil {
		return 0, err
	}
	return id, nil
}

// Add saves a new order together with its lines.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update writes the mutable part of an order: state, agent and updated_at.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"status":        dto.Status,
		"agent_contact": dto.AgentContact,
		"updated_at":    dto.UpdatedAt,
	})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID())
	}

	return nil
}

func (r *GormOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate locks the order row until the surrounding transaction ends. Outside a
// transaction the lock is released immediately.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id int64) (*order.Order, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormOrderRepository) get(db *gorm.DB, id int64) (*order.Order, error) {
	var dto OrderDTO
	if err := db.Preload("Lines", preloadLines).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) List(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	query := r.db.WithContext(ctx).Preload("Lines", preloadLines).Order("id")
	if filter.Status != order.Unknown {
		query = query.Where("status = ?", int(filter.Status))
	}

	var dtos []OrderDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

func preloadLines(db *gorm.DB) *gorm.DB {
	return db.Order("position")
}
