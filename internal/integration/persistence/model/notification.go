// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pairfin/backend/internal/domain/entity"
)

// NotificationModel represents the notifications table in the database.
type NotificationModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type           string          `gorm:"type:varchar(30);not null;index"`
	ObligationID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	TransactionID  uuid.UUID       `gorm:"type:uuid;not null"`
	ExpectedAmount decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	ObservedAmount decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	ActionedAt     *time.Time      `gorm:"type:timestamp;index"`
	DeliveryStatus string          `gorm:"type:varchar(10);not null;index"`
	Attempts       int             `gorm:"default:0"`
	LastError      string          `gorm:"type:text"`
	SentAt         *time.Time      `gorm:"type:timestamp"`
	ProviderID     string          `gorm:"type:varchar(255)"`
	CreatedAt      time.Time       `gorm:"not null"`
	UpdatedAt      time.Time       `gorm:"not null"`

	User       *UserModel       `gorm:"foreignKey:UserID;references:ID"`
	Obligation *ObligationModel `gorm:"foreignKey:ObligationID;references:ID"`
}

// TableName returns the table name for the NotificationModel.
func (NotificationModel) TableName() string {
	return "notifications"
}

// ToEntity converts a NotificationModel to a domain Notification entity.
func (m *NotificationModel) ToEntity() *entity.Notification {
	return &entity.Notification{
		ID:             m.ID,
		UserID:         m.UserID,
		Type:           entity.NotificationType(m.Type),
		ObligationID:   m.ObligationID,
		TransactionID:  m.TransactionID,
		ExpectedAmount: m.ExpectedAmount,
		ObservedAmount: m.ObservedAmount,
		ActionedAt:     m.ActionedAt,
		DeliveryStatus: entity.DeliveryStatus(m.DeliveryStatus),
		Attempts:       m.Attempts,
		LastError:      m.LastError,
		SentAt:         m.SentAt,
		ProviderID:     m.ProviderID,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// NotificationFromEntity creates a NotificationModel from a domain Notification entity.
func NotificationFromEntity(n *entity.Notification) *NotificationModel {
	return &NotificationModel{
		ID:             n.ID,
		UserID:         n.UserID,
		Type:           string(n.Type),
		ObligationID:   n.ObligationID,
		TransactionID:  n.TransactionID,
		ExpectedAmount: n.ExpectedAmount,
		ObservedAmount: n.ObservedAmount,
		ActionedAt:     n.ActionedAt,
		DeliveryStatus: string(n.DeliveryStatus),
		Attempts:       n.Attempts,
		LastError:      n.LastError,
		SentAt:         n.SentAt,
		ProviderID:     n.ProviderID,
		CreatedAt:      n.CreatedAt,
		UpdatedAt:      n.UpdatedAt,
	}
}
