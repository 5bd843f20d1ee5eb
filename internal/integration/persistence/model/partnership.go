// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/pairfin/backend/internal/domain/entity"
)

// PartnershipModel represents the partnerships table in the database.
type PartnershipModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Timezone  string    `gorm:"type:varchar(64);not null;default:'UTC'"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the PartnershipModel.
func (PartnershipModel) TableName() string {
	return "partnerships"
}

// ToEntity converts a PartnershipModel to a domain Partnership entity.
func (m *PartnershipModel) ToEntity() *entity.Partnership {
	return &entity.Partnership{
		ID:        m.ID,
		Name:      m.Name,
		Timezone:  m.Timezone,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// AccountModel represents the accounts table in the database.
type AccountModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	PartnershipID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name          string    `gorm:"type:varchar(255);not null"`
	ExternalID    string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Active        bool      `gorm:"default:true"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`

	Partnership *PartnershipModel `gorm:"foreignKey:PartnershipID;references:ID"`
}

// TableName returns the table name for the AccountModel.
func (AccountModel) TableName() string {
	return "accounts"
}

// ToEntity converts an AccountModel to a domain Account entity.
func (m *AccountModel) ToEntity() *entity.Account {
	return &entity.Account{
		ID:            m.ID,
		PartnershipID: m.PartnershipID,
		Name:          m.Name,
		ExternalID:    m.ExternalID,
		Active:        m.Active,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// UserModel represents the users table in the database.
type UserModel struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	PartnershipID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Email              string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Name               string    `gorm:"type:varchar(255);not null"`
	PasswordHash       string    `gorm:"type:varchar(255);not null"`
	NotifyPriceChanges bool      `gorm:"default:true"`
	CreatedAt          time.Time `gorm:"not null"`
	UpdatedAt          time.Time `gorm:"not null"`

	Partnership *PartnershipModel `gorm:"foreignKey:PartnershipID;references:ID"`
}

// TableName returns the table name for the UserModel.
func (UserModel) TableName() string {
	return "users"
}

// ToEntity converts a UserModel to a domain User entity.
func (m *UserModel) ToEntity() *entity.User {
	return &entity.User{
		ID:                 m.ID,
		PartnershipID:      m.PartnershipID,
		Email:              m.Email,
		Name:               m.Name,
		PasswordHash:       m.PasswordHash,
		NotifyPriceChanges: m.NotifyPriceChanges,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}
