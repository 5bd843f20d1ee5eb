// Package matching contains the transaction-to-obligation reconciliation use cases.
package matching

import (
	"github.com/pairfin/backend/internal/domain/entity"
	"github.com/pairfin/backend/internal/domain/valueobject"
)

// Candidate is a transient (obligation, transaction) pairing under
// evaluation. It is never persisted: it resolves into a match row or a
// price-change notification, or is discarded.
type Candidate struct {
	Obligation  *entity.Obligation
	Transaction *entity.Transaction
}

// partitionObligations evaluates one transaction against many obligations
// (the webhook path). Obligations whose merchant identifier is contained in
// the description split into amount-compatible candidates and price-changed
// ones; everything else is dropped.
func partitionObligations(
	cfg valueobject.MatchingConfig,
	txn *entity.Transaction,
	obligations []*entity.Obligation,
) (compatible, priceChanged []Candidate) {
	for _, ob := range obligations {
		if !valueobject.MerchantMatches(ob.MerchantIdentifier(), txn.Description) {
			continue
		}
		c := Candidate{Obligation: ob, Transaction: txn}
		if cfg.WithinTolerance(ob.ExpectedAmount, txn.Amount) {
			compatible = append(compatible, c)
		} else {
			priceChanged = append(priceChanged, c)
		}
	}
	return compatible, priceChanged
}

// selectTransactions evaluates one obligation against many transactions
// (the batch path), keeping only amount-compatible candidates. Price-change
// detection is a webhook-path concern.
func selectTransactions(
	cfg valueobject.MatchingConfig,
	ob *entity.Obligation,
	txns []*entity.Transaction,
) []*entity.Transaction {
	merchant := ob.MerchantIdentifier()

	var selected []*entity.Transaction
	for _, txn := range txns {
		if !valueobject.MerchantMatches(merchant, txn.Description) {
			continue
		}
		if !cfg.WithinTolerance(ob.ExpectedAmount, txn.Amount) {
			continue
		}
		selected = append(selected, txn)
	}
	return selected
}
