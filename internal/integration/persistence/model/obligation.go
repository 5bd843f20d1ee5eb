// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pairfin/backend/internal/domain/entity"
	"github.com/pairfin/backend/internal/domain/valueobject"
)

// ObligationModel represents the obligations table in the database.
type ObligationModel struct {
	ID              uuid.UUID        `gorm:"type:uuid;primaryKey"`
	PartnershipID   uuid.UUID        `gorm:"type:uuid;not null;index"`
	Name            string           `gorm:"type:varchar(255);not null"`
	MerchantPattern *string          `gorm:"type:varchar(255)"`
	ExpectedAmount  *decimal.Decimal `gorm:"type:decimal(15,2)"`
	Recurrence      string           `gorm:"type:varchar(20);not null"`
	NextDue         time.Time        `gorm:"type:date;not null;index"`
	Kind            string           `gorm:"type:varchar(10);not null;index"`
	Active          bool             `gorm:"default:true;index"`
	IncomeType      *string          `gorm:"type:varchar(50)"`
	CreatedAt       time.Time        `gorm:"not null"`
	UpdatedAt       time.Time        `gorm:"not null"`

	Partnership *PartnershipModel `gorm:"foreignKey:PartnershipID;references:ID"`
}

// TableName returns the table name for the ObligationModel.
func (ObligationModel) TableName() string {
	return "obligations"
}

// ToEntity converts an ObligationModel to a domain Obligation entity.
func (m *ObligationModel) ToEntity() *entity.Obligation {
	return &entity.Obligation{
		ID:              m.ID,
		PartnershipID:   m.PartnershipID,
		Name:            m.Name,
		MerchantPattern: m.MerchantPattern,
		ExpectedAmount:  m.ExpectedAmount,
		Recurrence:      valueobject.Recurrence(m.Recurrence),
		NextDue:         m.NextDue,
		Kind:            entity.ObligationKind(m.Kind),
		Active:          m.Active,
		IncomeType:      m.IncomeType,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// ObligationFromEntity creates an ObligationModel from a domain Obligation entity.
func ObligationFromEntity(ob *entity.Obligation) *ObligationModel {
	return &ObligationModel{
		ID:              ob.ID,
		PartnershipID:   ob.PartnershipID,
		Name:            ob.Name,
		MerchantPattern: ob.MerchantPattern,
		ExpectedAmount:  ob.ExpectedAmount,
		Recurrence:      string(ob.Recurrence),
		NextDue:         ob.NextDue,
		Kind:            string(ob.Kind),
		Active:          ob.Active,
		IncomeType:      ob.IncomeType,
		CreatedAt:       ob.CreatedAt,
		UpdatedAt:       ob.UpdatedAt,
	}
}
