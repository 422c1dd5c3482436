package jobs

import (
	"context"

	"library-backend/internal/logger"
	"library-backend/internal/metrics"
)

// AuditLedger reports rentals whose book or member no longer exists.
// It only reads; nothing is repaired.
func (jr *JobRunner) AuditLedger() {
	jr.runWithRecovery("AuditLedger", func(ctx context.Context) {
		dangling, err := jr.rentals.ListDangling(ctx)
		if err != nil {
			logger.Error("Failed to audit rental ledger", "error", err)
			return
		}

		for _, d := range dangling {
			logger.Warn("Dangling rental",
				"rental_id", d.RentalID,
				"book_id", d.BookID,
				"member_id", d.MemberID,
				"missing_book", d.MissingBook,
				"missing_member", d.MissingMember,
			)
		}
		metrics.DanglingRentals.Set(float64(len(dangling)))
		logger.Info("Rental ledger audited", "dangling", len(dangling))
	})
}
