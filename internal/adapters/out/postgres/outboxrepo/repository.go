package outboxrepo

import (
	"context"
	"errors"
	"time"

	"vendorbot/internal/core/domain/model/kernel"
	"vendorbot/internal/core/domain/model/notification"
	"vendorbot/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOutboxRepository implements ports.OutboxRepository using GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Add inserts all notifications in one statement.
func (r *GormOutboxRepository) Add(ctx context.Context, notifications ...*notification.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	dtos := make([]NotificationDTO, 0, len(notifications))
	for _, n := range notifications {
		if err := n.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(n))
	}

	return r.db.WithContext(ctx).Create(&dtos).Error
}

// Update writes the delivery bookkeeping of a notification.
func (r *GormOutboxRepository) Update(ctx context.Context, n *notification.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}

	dto := fromDomain(n)
	result := r.db.WithContext(ctx).Model(&NotificationDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"status":     dto.Status,
		"attempts":   dto.Attempts,
		"last_error": dto.LastError,
		"updated_at": dto.UpdatedAt,
	})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("notification", n.ID().String())
	}

	return nil
}

func (r *GormOutboxRepository) Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate locks the entry's row until the surrounding transaction ends.
func (r *GormOutboxRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*notification.Notification, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormOutboxRepository) get(db *gorm.DB, id kernel.UUID) (*notification.Notification, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto NotificationDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("notification", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormOutboxRepository) ListDue(
	ctx context.Context,
	olderThan time.Time,
	maxAttempts, limit int,
) ([]*notification.Notification, error) {
	var dtos []NotificationDTO
	if err := r.db.WithContext(ctx).
		Where("status = ? AND updated_at <= ? AND attempts < ?", int(notification.Pending), olderThan, maxAttempts).
		Order("created_at, id").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}
	return toDomainList(dtos)
}

func (r *GormOutboxRepository) ListByOrder(ctx context.Context, orderID int64) ([]*notification.Notification, error) {
	var dtos []NotificationDTO
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Order("created_at, id").Find(&dtos).Error; err != nil {
		return nil, err
	}
	return toDomainList(dtos)
}

func toDomainList(dtos []NotificationDTO) ([]*notification.Notification, error) {
	out := make([]*notification.Notification, 0, len(dtos))
	for _, dto := range dtos {
		n, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
