// Command backfill assigns subdomains to accounts created before subdomains
// existed. It is safe to run repeatedly: accounts that already carry one are
// skipped, and one account's failure never stops the rest.
package main

import (
	"fmt"
	"os"

	"bookable/config"
	"bookable/database"
	accountRepo "bookable/database/repository/account"
	"bookable/services/tenant"
	"bookable/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()

	resolver := tenant.NewResolver(accountRepo.NewMongoAccountRepo())

	summary, err := resolver.BackfillSubdomains(logger)
	if err != nil {
		logger.Sugar().Fatalf("backfill: %v", err)
	}

	fmt.Printf("backfill finished: processed=%d succeeded=%d skipped=%d failed=%d\n",
		summary.Processed, summary.Succeeded, summary.Skipped, len(summary.Failures))
	for _, f := range summary.Failures {
		fmt.Printf("  account %s: %s\n", f.AccountID, f.Reason)
	}

	if len(summary.Failures) > 0 {
		os.Exit(1)
	}
}
