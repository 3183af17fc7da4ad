package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/josh-kwaku/codemart/internal/domain"
	"github.com/josh-kwaku/codemart/internal/payerr"
)

// SeedFailure inserts a classified failure for userID created at createdAt.
func SeedFailure(t *testing.T, db *sql.DB, userID uuid.UUID, message string, createdAt time.Time) *domain.PaymentFailure {
	t.Helper()

	info := payerr.Classify(message)
	f := &domain.PaymentFailure{
		ID:          uuid.New(),
		UserID:      userID,
		ItemID:      "repo-" + uuid.NewString()[:8],
		Source:      domain.FailureSourceWallet,
		RawMessage:  message,
		Code:        info.Code,
		Recoverable: info.Recoverable,
		CreatedAt:   createdAt.UTC(),
	}

	_, err := db.Exec(
		`INSERT INTO payment_failures (id, user_id, item_id, source, raw_message, code, recoverable, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		f.ID, f.UserID, f.ItemID, f.Source, f.RawMessage, f.Code, f.Recoverable, f.CreatedAt,
	)
	if err != nil {
		t.Fatalf("seed payment failure: %v", err)
	}
	return f
}

func CountFailures(t *testing.T, db *sql.DB, userID uuid.UUID) int {
	t.Helper()

	var n int
	if err := db.QueryRow(`SELECT count(*) FROM payment_failures WHERE user_id = $1`, userID).Scan(&n); err != nil {
		t.Fatalf("count payment failures: %v", err)
	}
	return n
}
