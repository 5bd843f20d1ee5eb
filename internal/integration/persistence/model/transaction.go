// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pairfin/backend/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
type TransactionModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	AccountID   uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_transactions_account_external"`
	ExternalID  string          `gorm:"type:varchar(255);not null;uniqueIndex:idx_transactions_account_external"`
	Description string          `gorm:"type:varchar(255);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Currency    string          `gorm:"type:varchar(3);not null"`
	SettledAt   *time.Time      `gorm:"type:timestamp;index"`
	IsIncome    bool            `gorm:"default:false"`
	IncomeType  *string         `gorm:"type:varchar(50)"`
	CreatedAt   time.Time       `gorm:"not null;index"`
	UpdatedAt   time.Time       `gorm:"not null"`

	Account *AccountModel `gorm:"foreignKey:AccountID;references:ID"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	return &entity.Transaction{
		ID:          m.ID,
		AccountID:   m.AccountID,
		ExternalID:  m.ExternalID,
		Description: m.Description,
		Amount:      m.Amount,
		Currency:    m.Currency,
		SettledAt:   m.SettledAt,
		IsIncome:    m.IsIncome,
		IncomeType:  m.IncomeType,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(txn *entity.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:          txn.ID,
		AccountID:   txn.AccountID,
		ExternalID:  txn.ExternalID,
		Description: txn.Description,
		Amount:      txn.Amount,
		Currency:    txn.Currency,
		SettledAt:   txn.SettledAt,
		IsIncome:    txn.IsIncome,
		IncomeType:  txn.IncomeType,
		CreatedAt:   txn.CreatedAt,
		UpdatedAt:   txn.UpdatedAt,
	}
}
