package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/familybudget/teller-gateway/interfaces"
)

// Pipeline aggregates a user's Teller data: it resolves the stored access
// token, lists accounts, lists each account's transactions, and normalizes
// everything into one flat result set.
type Pipeline struct {
	provider    interfaces.ProviderClient
	credentials interfaces.CredentialStore
	log         *slog.Logger
}

// New creates an aggregation pipeline over the given provider client and
// credential store.
func New(provider interfaces.ProviderClient, credentials interfaces.CredentialStore, log *slog.Logger) *Pipeline {
	return &Pipeline{
		provider:    provider,
		credentials: credentials,
		log:         log,
	}
}

// ListTransactions returns every transaction across all of the user's
// accounts, normalized and concatenated in account-iteration order. A
// non-empty startDate is passed upstream as a start_date query filter.
//
// Accounts are walked sequentially in upstream order. Any upstream failure
// aborts the whole aggregation; there is no partial-result return and no
// per-account isolation. Repeated calls re-fetch the same upstream data
// without dedup; downstream consumers upsert by external_id.
func (p *Pipeline) ListTransactions(ctx context.Context, userID interfaces.UserID, startDate string) ([]interfaces.NormalizedTransaction, error) {
	start := time.Now()

	cred, err := p.credentials.GetCredential(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cred.AccessToken == "" {
		return nil, interfaces.ErrEmptyAccessToken
	}

	var accounts []interfaces.Account
	if err := p.provider.Get(ctx, cred.AccessToken, "/accounts", &accounts); err != nil {
		return nil, err
	}

	// One page of accounts is the full set; the upstream API is not
	// paginated further here.
	results := []interfaces.NormalizedTransaction{}
	for _, account := range accounts {
		path := fmt.Sprintf("/accounts/%s/transactions", account.ID)
		if startDate != "" {
			path += "?start_date=" + url.QueryEscape(startDate)
		}

		var txns []interfaces.Transaction
		if err := p.provider.Get(ctx, cred.AccessToken, path, &txns); err != nil {
			return nil, err
		}

		for _, txn := range txns {
			results = append(results, normalize(account, txn))
		}
	}

	p.log.Info("Aggregated transactions",
		slog.String("userId", userID.String()),
		slog.Int("accounts", len(accounts)),
		slog.Int("transactions", len(results)),
		slog.Duration("duration", time.Since(start)))

	return results, nil
}

// normalize maps one upstream transaction into the flat output shape,
// tagged with its account's id and resolved display name. Category stays
// null; a downstream system fills it in.
func normalize(account interfaces.Account, txn interfaces.Transaction) interfaces.NormalizedTransaction {
	return interfaces.NormalizedTransaction{
		ExternalID:  txn.ID,
		AccountID:   account.ID,
		AccountName: account.DisplayName(),
		Amount:      txn.Amount,
		Date:        txn.Date,
		Description: resolveDescription(txn),
		Category:    nil,
		Note:        resolveNote(txn),
	}
}

// resolveDescription picks the first non-empty of: description, nested
// counterparty name, "Unknown".
func resolveDescription(txn interfaces.Transaction) string {
	if txn.Description != "" {
		return txn.Description
	}
	if txn.Details != nil && txn.Details.Counterparty != nil && txn.Details.Counterparty.Name != "" {
		return txn.Details.Counterparty.Name
	}
	return "Unknown"
}

// resolveNote returns the nested processing status, or nil when absent.
func resolveNote(txn interfaces.Transaction) *string {
	if txn.Details == nil || txn.Details.ProcessingStatus == "" {
		return nil
	}
	status := txn.Details.ProcessingStatus
	return &status
}
