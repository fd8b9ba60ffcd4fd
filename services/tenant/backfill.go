package tenant

import (
	"fmt"

	"go.uber.org/zap"
)

// BackfillFailure records one account the backfill could not process.
type BackfillFailure struct {
	AccountID string
	Reason    string
}

// BackfillSummary reports the outcome of a backfill run.
type BackfillSummary struct {
	Processed int
	Succeeded int
	Skipped   int
	Failures  []BackfillFailure
}

// BackfillSubdomains assigns subdomains to every account that has none. The
// run is idempotent: accounts that already carry a subdomain are not
// returned by the listing and are skipped if one sneaks in. One account's
// failure never stops the rest.
func (r *Resolver) BackfillSubdomains(logger *zap.Logger) (BackfillSummary, error) {
	var summary BackfillSummary

	accounts, err := r.Accounts.ListMissingSubdomain()
	if err != nil {
		return summary, fmt.Errorf("failed to list accounts for backfill: %w", err)
	}

	for _, account := range accounts {
		summary.Processed++

		if account.Subdomain != "" {
			summary.Skipped++
			continue
		}

		label, err := r.GenerateUniqueSubdomain(account.ID, account.BusinessName)
		if err != nil {
			logger.Warn("backfill: subdomain assignment failed",
				zap.String("account_id", account.ID), zap.Error(err))
			summary.Failures = append(summary.Failures, BackfillFailure{
				AccountID: account.ID,
				Reason:    err.Error(),
			})
			continue
		}

		logger.Info("backfill: subdomain assigned",
			zap.String("account_id", account.ID), zap.String("subdomain", label))
		summary.Succeeded++
	}

	return summary, nil
}
