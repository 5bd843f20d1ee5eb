// Package matching contains the transaction-to-obligation reconciliation use cases.
package matching

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pairfin/backend/internal/domain/entity"
	"github.com/pairfin/backend/internal/domain/valueobject"
)

type batchFixture struct {
	partnershipID uuid.UUID
	account       *entity.Account
	obligations   *fakeObligationRepo
	accounts      *fakeAccountRepo
	transactions  *fakeTransactionRepo
	matches       *fakeMatchRepo
	matchRuns     *fakeMatchRunRepo
	useCase       *RematchObligationUseCase
}

func newBatchFixture(t *testing.T, obligations ...*entity.Obligation) *batchFixture {
	t.Helper()

	partnershipID := uuid.New()
	for _, ob := range obligations {
		ob.PartnershipID = partnershipID
	}

	account := &entity.Account{
		ID:            uuid.New(),
		PartnershipID: partnershipID,
		Name:          "Joint checking",
		ExternalID:    "acc-ext-1",
		Active:        true,
	}

	f := &batchFixture{
		partnershipID: partnershipID,
		account:       account,
		obligations:   newFakeObligationRepo(obligations...),
		accounts:      newFakeAccountRepo(account),
		transactions:  newFakeTransactionRepo(),
		matches:       newFakeMatchRepo(),
		matchRuns:     &fakeMatchRunRepo{},
	}

	config := valueobject.DefaultMatchingConfig()
	advancer := NewDueDateAdvancer(f.obligations, config)
	f.useCase = NewRematchObligationUseCase(
		f.obligations, f.accounts, f.transactions, f.matches, f.matchRuns,
		advancer, config,
	)
	return f
}

func (f *batchFixture) addTransaction(description string, amount string, settled time.Time) *entity.Transaction {
	txn := entity.NewTransaction(
		f.account.ID, uuid.NewString(), description,
		decimal.RequireFromString(amount), "EUR", &settled,
	)
	f.transactions.transactions[txn.ID] = txn
	return txn
}

func TestRematchObligation_MatchesHistory(t *testing.T) {
	ob := entity.NewObligation(
		uuid.Nil, "Netflix", nil, amountPtr("17.99"),
		valueobject.RecurrenceMonthly, date(2026, time.January, 1), entity.ObligationKindExpense,
	)
	f := newBatchFixture(t, ob)

	f.addTransaction("NETFLIX.COM AMSTERDAM", "-17.99", date(2026, time.January, 2))
	f.addTransaction("NETFLIX.COM AMSTERDAM", "-17.99", date(2026, time.February, 2))
	latest := f.addTransaction("NETFLIX.COM AMSTERDAM", "-17.99", date(2026, time.March, 2))
	f.addTransaction("ALBERT HEIJN 1482", "-52.30", date(2026, time.February, 10)) // different merchant
	f.addTransaction("NETFLIX.COM AMSTERDAM", "-35.00", date(2026, time.March, 15)) // out of tolerance

	out := f.useCase.Execute(context.Background(), RematchObligationInput{ObligationID: ob.ID})

	if out.Failed() {
		t.Fatalf("unexpected failure: %s", out.FailureReason)
	}
	if out.Matched != 3 {
		t.Fatalf("expected 3 matches, got %d", out.Matched)
	}

	// One catch-up past the latest matched date.
	if want := date(2026, time.April, 1); !ob.NextDue.Equal(want) {
		t.Errorf("expected next due %s, got %s", want, ob.NextDue)
	}

	// Period assignment follows each transaction's own settlement date.
	matches, _ := f.matches.ListByObligation(context.Background(), ob.ID)
	periods := make(map[string]bool)
	for _, m := range matches {
		periods[m.ForPeriod] = true
	}
	for _, want := range []string{"2026-01-01", "2026-02-01", "2026-03-01"} {
		if !periods[want] {
			t.Errorf("expected a match for period %s, got %v", want, periods)
		}
	}

	if len(f.matchRuns.runs) != 1 {
		t.Fatalf("expected one audit run, got %d", len(f.matchRuns.runs))
	}
	run := f.matchRuns.runs[0]
	if run.MatchedCount != 3 {
		t.Errorf("expected audit count 3, got %d", run.MatchedCount)
	}
	found := false
	for _, id := range run.TransactionIDs {
		if id == latest.ID {
			found = true
		}
	}
	if !found {
		t.Error("expected the audit run to record the latest matched transaction")
	}
}

func TestRematchObligation_RerunIsIdempotent(t *testing.T) {
	ob := entity.NewObligation(
		uuid.Nil, "Netflix", nil, amountPtr("17.99"),
		valueobject.RecurrenceMonthly, date(2026, time.January, 1), entity.ObligationKindExpense,
	)
	f := newBatchFixture(t, ob)
	f.addTransaction("NETFLIX.COM AMSTERDAM", "-17.99", date(2026, time.January, 2))

	input := RematchObligationInput{ObligationID: ob.ID}

	first := f.useCase.Execute(context.Background(), input)
	if first.Matched != 1 {
		t.Fatalf("first run: expected 1 match, got %d", first.Matched)
	}

	second := f.useCase.Execute(context.Background(), input)
	if second.Failed() {
		t.Fatalf("second run: unexpected failure: %s", second.FailureReason)
	}
	if second.Matched != 0 {
		t.Errorf("second run: expected 0 new matches, got %d", second.Matched)
	}

	matches, _ := f.matches.ListByObligation(context.Background(), ob.ID)
	if len(matches) != 1 {
		t.Errorf("expected one persisted match after rerun, got %d", len(matches))
	}
}

func TestRematchObligation_WindowRestrictsHistory(t *testing.T) {
	ob := entity.NewObligation(
		uuid.Nil, "Gym", nil, amountPtr("30.00"),
		valueobject.RecurrenceMonthly, time.Now().AddDate(0, 0, 14), entity.ObligationKindExpense,
	)
	f := newBatchFixture(t, ob)

	f.addTransaction("GYM MEMBERSHIP", "-30.00", time.Now().AddDate(0, -1, 0))
	f.addTransaction("GYM MEMBERSHIP", "-30.00", time.Now().AddDate(0, -6, 0))

	out := f.useCase.Execute(context.Background(), RematchObligationInput{
		ObligationID: ob.ID,
		WindowMonths: 3,
	})

	if out.Matched != 1 {
		t.Errorf("expected the window to exclude the 6-month-old transaction, got %d matches", out.Matched)
	}
}

func TestRematchObligation_SoftFailures(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(t *testing.T) (*batchFixture, uuid.UUID)
		reason string
	}{
		{
			name: "unknown obligation",
			setup: func(t *testing.T) (*batchFixture, uuid.UUID) {
				return newBatchFixture(t), uuid.New()
			},
			reason: "obligation not found",
		},
		{
			name: "no merchant criteria",
			setup: func(t *testing.T) (*batchFixture, uuid.UUID) {
				ob := entity.NewObligation(
					uuid.Nil, "", nil, amountPtr("10.00"),
					valueobject.RecurrenceMonthly, date(2026, time.March, 1), entity.ObligationKindExpense,
				)
				return newBatchFixture(t, ob), ob.ID
			},
			reason: "no merchant name or pattern set",
		},
		{
			name: "no accounts",
			setup: func(t *testing.T) (*batchFixture, uuid.UUID) {
				ob := entity.NewObligation(
					uuid.Nil, "Netflix", nil, amountPtr("17.99"),
					valueobject.RecurrenceMonthly, date(2026, time.March, 1), entity.ObligationKindExpense,
				)
				f := newBatchFixture(t, ob)
				f.accounts.accounts = map[uuid.UUID]*entity.Account{}
				return f, ob.ID
			},
			reason: "no accounts found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, obligationID := tt.setup(t)

			out := f.useCase.Execute(context.Background(), RematchObligationInput{ObligationID: obligationID})

			if !out.Failed() {
				t.Fatal("expected a soft failure")
			}
			if out.FailureReason != tt.reason {
				t.Errorf("expected reason %q, got %q", tt.reason, out.FailureReason)
			}
			if out.Matched != 0 {
				t.Errorf("expected 0 matches, got %d", out.Matched)
			}
		})
	}
}

func TestRematchObligation_IncomeKindSelectsPositiveAmounts(t *testing.T) {
	ob := entity.NewObligation(
		uuid.Nil, "Acme Payroll", nil, amountPtr("3200.00"),
		valueobject.RecurrenceMonthly, date(2026, time.January, 25), entity.ObligationKindIncome,
	)
	f := newBatchFixture(t, ob)

	f.addTransaction("ACME PAYROLL JAN", "3200.00", date(2026, time.January, 25))
	f.addTransaction("ACME PAYROLL REFUND", "-3200.00", date(2026, time.January, 26))

	out := f.useCase.Execute(context.Background(), RematchObligationInput{ObligationID: ob.ID})

	if out.Matched != 1 {
		t.Errorf("expected only the positive-amount transaction to match, got %d", out.Matched)
	}
}
