// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Partnership is a household: the ownership scope for accounts, obligations
// and matching. Webhook transactions are evaluated against every active
// obligation of the owning partnership.
type Partnership struct {
	ID        uuid.UUID
	Name      string
	Timezone  string // IANA name; billing periods are computed in local time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Account is a financial account at the bank feed provider, owned by a
// partnership. Every transaction belongs to exactly one account.
type Account struct {
	ID            uuid.UUID
	PartnershipID uuid.UUID
	Name          string
	ExternalID    string // account ID at the bank feed provider
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// User is a member of a partnership. Notification preferences live here.
type User struct {
	ID                 uuid.UUID
	PartnershipID      uuid.UUID
	Email              string
	Name               string
	PasswordHash       string
	NotifyPriceChanges bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
