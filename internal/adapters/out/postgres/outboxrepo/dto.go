// Package outboxrepo persists notifications committed alongside order changes.
package outboxrepo

import (
	"time"

	"vendorbot/internal/core/domain/model/kernel"
	"vendorbot/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

// NotificationDTO is the "outbox_notifications" row.
type NotificationDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   int64     `gorm:"not null;index"`
	Kind      string    `gorm:"size:32;not null"`
	Recipient string    `gorm:"size:64;not null"`
	Text      string    `gorm:"type:text;not null"`
	Status    int       `gorm:"not null;index:idx_outbox_due,priority:1"`
	Attempts  int       `gorm:"not null"`
	LastError string    `gorm:"size:500"`
	CreatedAt time.Time `gorm:"autoCreateTime:false;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false;not null;index:idx_outbox_due,priority:2"`
}

func (NotificationDTO) TableName() string {
	return "outbox_notifications"
}

func fromDomain(n *notification.Notification) NotificationDTO {
	return NotificationDTO{
		ID:        n.ID().Bytes(),
		OrderID:   n.OrderID(),
		Kind:      n.Kind().String(),
		Recipient: n.Recipient().String(),
		Text:      n.Text(),
		Status:    int(n.Status()),
		Attempts:  n.Attempts(),
		LastError: n.LastError(),
		CreatedAt: n.CreatedAt(),
		UpdatedAt: n.UpdatedAt(),
	}
}

func toDomain(dto NotificationDTO) (*notification.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	recipient, err := kernel.NewContact("recipient", dto.Recipient)
	if err != nil {
		return nil, err
	}

	return notification.RestoreNotification(
		id,
		dto.OrderID,
		notification.Kind(dto.Kind),
		recipient,
		dto.Text,
		notification.DeliveryStatus(dto.Status),
		dto.Attempts,
		dto.LastError,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
