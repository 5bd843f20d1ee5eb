// Package matching contains the transaction-to-obligation reconciliation use cases.
package matching

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/pairfin/backend/internal/application/adapter"
	"github.com/pairfin/backend/internal/domain/entity"
	domainerror "github.com/pairfin/backend/internal/domain/error"
)

// In-memory repository fakes used across the matching tests. They implement
// the same contracts as the gorm repositories, including conflict-ignore
// insert semantics on the (obligation, transaction) pair.

type fakeObligationRepo struct {
	obligations map[uuid.UUID]*entity.Obligation
	updateErr   error
}

func newFakeObligationRepo(obligations ...*entity.Obligation) *fakeObligationRepo {
	r := &fakeObligationRepo{obligations: make(map[uuid.UUID]*entity.Obligation)}
	for _, ob := range obligations {
		r.obligations[ob.ID] = ob
	}
	return r
}

func (r *fakeObligationRepo) Create(_ context.Context, ob *entity.Obligation) error {
	r.obligations[ob.ID] = ob
	return nil
}

func (r *fakeObligationRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Obligation, error) {
	ob, ok := r.obligations[id]
	if !ok {
		return nil, domainerror.ErrObligationNotFound
	}
	return ob, nil
}

func (r *fakeObligationRepo) ListByPartnership(_ context.Context, partnershipID uuid.UUID, activeOnly bool) ([]*entity.Obligation, error) {
	var out []*entity.Obligation
	for _, ob := range r.obligations {
		if ob.PartnershipID != partnershipID {
			continue
		}
		if activeOnly && !ob.Active {
			continue
		}
		out = append(out, ob)
	}
	return out, nil
}

func (r *fakeObligationRepo) ListMatchable(_ context.Context, partnershipID uuid.UUID, kind entity.ObligationKind) ([]*entity.Obligation, error) {
	var out []*entity.Obligation
	for _, ob := range r.obligations {
		if ob.PartnershipID != partnershipID || ob.Kind != kind {
			continue
		}
		if !ob.Active || !ob.HasMatchCriteria() {
			continue
		}
		out = append(out, ob)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeObligationRepo) Update(_ context.Context, ob *entity.Obligation) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.obligations[ob.ID] = ob
	return nil
}

func (r *fakeObligationRepo) UpdateNextDue(_ context.Context, id uuid.UUID, nextDue time.Time) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	ob, ok := r.obligations[id]
	if !ok {
		return domainerror.ErrObligationNotFound
	}
	ob.NextDue = nextDue
	return nil
}

func (r *fakeObligationRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	ob, ok := r.obligations[id]
	if !ok {
		return domainerror.ErrObligationNotFound
	}
	ob.Active = false
	return nil
}

type fakeAccountRepo struct {
	accounts map[uuid.UUID]*entity.Account
}

func newFakeAccountRepo(accounts ...*entity.Account) *fakeAccountRepo {
	r := &fakeAccountRepo{accounts: make(map[uuid.UUID]*entity.Account)}
	for _, a := range accounts {
		r.accounts[a.ID] = a
	}
	return r
}

func (r *fakeAccountRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Account, error) {
	a, ok := r.accounts[id]
	if !ok {
		return nil, domainerror.ErrAccountNotFound
	}
	return a, nil
}

func (r *fakeAccountRepo) GetByExternalID(_ context.Context, externalID string) (*entity.Account, error) {
	for _, a := range r.accounts {
		if a.ExternalID == externalID {
			return a, nil
		}
	}
	return nil, domainerror.ErrAccountNotFound
}

func (r *fakeAccountRepo) ListByPartnership(_ context.Context, partnershipID uuid.UUID) ([]*entity.Account, error) {
	var out []*entity.Account
	for _, a := range r.accounts {
		if a.PartnershipID == partnershipID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeTransactionRepo struct {
	transactions map[uuid.UUID]*entity.Transaction
	incomeMarks  map[uuid.UUID]*string
}

func newFakeTransactionRepo(txns ...*entity.Transaction) *fakeTransactionRepo {
	r := &fakeTransactionRepo{
		transactions: make(map[uuid.UUID]*entity.Transaction),
		incomeMarks:  make(map[uuid.UUID]*string),
	}
	for _, txn := range txns {
		r.transactions[txn.ID] = txn
	}
	return r
}

func (r *fakeTransactionRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Transaction, error) {
	txn, ok := r.transactions[id]
	if !ok {
		return nil, domainerror.ErrTransactionNotFound
	}
	return txn, nil
}

func (r *fakeTransactionRepo) ListByAccounts(_ context.Context, accountIDs []uuid.UUID, since *time.Time, sign adapter.AmountSign) ([]*entity.Transaction, error) {
	wanted := make(map[uuid.UUID]struct{}, len(accountIDs))
	for _, id := range accountIDs {
		wanted[id] = struct{}{}
	}

	var out []*entity.Transaction
	for _, txn := range r.transactions {
		if _, ok := wanted[txn.AccountID]; !ok {
			continue
		}
		if since != nil && txn.EffectiveDate().Before(*since) {
			continue
		}
		switch sign {
		case adapter.AmountNegative:
			if !txn.Amount.IsNegative() {
				continue
			}
		case adapter.AmountPositive:
			if !txn.Amount.IsPositive() {
				continue
			}
		}
		out = append(out, txn)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].EffectiveDate().After(out[j].EffectiveDate())
	})
	return out, nil
}

func (r *fakeTransactionRepo) UpsertByExternalID(_ context.Context, txn *entity.Transaction) (*entity.Transaction, error) {
	for _, existing := range r.transactions {
		if existing.AccountID == txn.AccountID && existing.ExternalID == txn.ExternalID {
			return existing, nil
		}
	}
	r.transactions[txn.ID] = txn
	return txn, nil
}

func (r *fakeTransactionRepo) MarkIncome(_ context.Context, id uuid.UUID, incomeType *string) error {
	txn, ok := r.transactions[id]
	if !ok {
		return domainerror.ErrTransactionNotFound
	}
	txn.IsIncome = true
	txn.IncomeType = incomeType
	r.incomeMarks[id] = incomeType
	return nil
}

type pairKey struct {
	obligationID  uuid.UUID
	transactionID uuid.UUID
}

type fakeMatchRepo struct {
	matches   map[pairKey]*entity.Match
	insertErr error
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{matches: make(map[pairKey]*entity.Match)}
}

func (r *fakeMatchRepo) InsertIgnoringDuplicates(_ context.Context, matches []*entity.Match) ([]*entity.Match, error) {
	if r.insertErr != nil {
		return nil, r.insertErr
	}
	var inserted []*entity.Match
	for _, m := range matches {
		key := pairKey{m.ObligationID, m.TransactionID}
		if _, exists := r.matches[key]; exists {
			continue
		}
		r.matches[key] = m
		inserted = append(inserted, m)
	}
	return inserted, nil
}

func (r *fakeMatchRepo) ListMatchedTransactionIDs(_ context.Context, obligationID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	out := make(map[uuid.UUID]struct{})
	for key := range r.matches {
		if key.obligationID == obligationID {
			out[key.transactionID] = struct{}{}
		}
	}
	return out, nil
}

func (r *fakeMatchRepo) ExistsForPair(_ context.Context, obligationID, transactionID uuid.UUID) (bool, error) {
	_, ok := r.matches[pairKey{obligationID, transactionID}]
	return ok, nil
}

func (r *fakeMatchRepo) ListByObligation(_ context.Context, obligationID uuid.UUID) ([]*entity.Match, error) {
	var out []*entity.Match
	for key, m := range r.matches {
		if key.obligationID == obligationID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MatchedAt.After(out[j].MatchedAt) })
	return out, nil
}

type fakeMatchRunRepo struct {
	runs []*entity.MatchRun
}

func (r *fakeMatchRunRepo) Create(_ context.Context, run *entity.MatchRun) error {
	r.runs = append(r.runs, run)
	return nil
}

func (r *fakeMatchRunRepo) ListByObligation(_ context.Context, obligationID uuid.UUID, limit int) ([]*entity.MatchRun, error) {
	var out []*entity.MatchRun
	for _, run := range r.runs {
		if run.ObligationID == obligationID {
			out = append(out, run)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeNotificationRepo struct {
	notifications map[uuid.UUID]*entity.Notification
	createErr     error
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{notifications: make(map[uuid.UUID]*entity.Notification)}
}

func (r *fakeNotificationRepo) Create(_ context.Context, n *entity.Notification) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.notifications[n.ID] = n
	return nil
}

func (r *fakeNotificationRepo) HasUnactioned(_ context.Context, obligationID uuid.UUID, notificationType entity.NotificationType) (bool, error) {
	for _, n := range r.notifications {
		if n.ObligationID == obligationID && n.Type == notificationType && !n.IsActioned() {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeNotificationRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Notification, error) {
	n, ok := r.notifications[id]
	if !ok {
		return nil, domainerror.ErrNotificationNotFound
	}
	return n, nil
}

func (r *fakeNotificationRepo) ListByUser(_ context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Notification, error) {
	var out []*entity.Notification
	for _, n := range r.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeNotificationRepo) ListPendingDelivery(_ context.Context, limit int) ([]*entity.Notification, error) {
	var out []*entity.Notification
	for _, n := range r.notifications {
		if n.DeliveryStatus == entity.DeliveryStatusPending {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeNotificationRepo) Update(_ context.Context, n *entity.Notification) error {
	r.notifications[n.ID] = n
	return nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domainerror.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (r *fakeUserRepo) ListByPartnership(_ context.Context, partnershipID uuid.UUID) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		if u.PartnershipID == partnershipID {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

// Interface conformance checks.
var (
	_ adapter.ObligationRepository   = (*fakeObligationRepo)(nil)
	_ adapter.AccountRepository      = (*fakeAccountRepo)(nil)
	_ adapter.TransactionRepository  = (*fakeTransactionRepo)(nil)
	_ adapter.MatchRepository        = (*fakeMatchRepo)(nil)
	_ adapter.MatchRunRepository     = (*fakeMatchRunRepo)(nil)
	_ adapter.NotificationRepository = (*fakeNotificationRepo)(nil)
	_ adapter.UserRepository         = (*fakeUserRepo)(nil)
)
