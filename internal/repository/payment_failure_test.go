package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/codemart/internal/domain"
	"github.com/josh-kwaku/codemart/internal/payerr"
	"github.com/josh-kwaku/codemart/internal/repository"
	"github.com/josh-kwaku/codemart/internal/testutil"
)

func ptr[T any](v T) *T { return &v }

func TestPaymentFailureRepository_CreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewPaymentFailureRepository(db)
	ctx := context.Background()

	eth := domain.CurrencyETH
	f := &domain.PaymentFailure{
		ID:            uuid.New(),
		UserID:        uuid.New(),
		ItemID:        "repo-starter-kit",
		ReportID:      ptr("report-1"),
		Source:        domain.FailureSourceChain,
		WalletAddress: ptr("0x52908400098527886e0f7030069857d2e4169ee7"),
		TxHash:        ptr("0xabc"),
		Amount:        decimal.NewNullDecimal(decimal.RequireFromString("0.015")),
		Currency:      &eth,
		RawMessage:    "execution reverted",
		Code:          payerr.KindContractError,
		Recoverable:   true,
		CreatedAt:     time.Now().UTC().Truncate(time.Microsecond),
	}
	require.NoError(t, repo.Create(ctx, f))

	got, err := repo.GetByID(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, f.UserID, got.UserID)
	assert.Equal(t, "report-1", *got.ReportID)
	assert.Equal(t, domain.FailureSourceChain, got.Source)
	assert.True(t, got.Amount.Valid)
	assert.True(t, decimal.RequireFromString("0.015").Equal(got.Amount.Decimal))
	require.NotNil(t, got.Currency)
	assert.Equal(t, domain.CurrencyETH, *got.Currency)
	assert.Equal(t, payerr.KindContractError, got.Code)
	assert.True(t, got.CreatedAt.Equal(f.CreatedAt))

	byReport, err := repo.GetByReportID(ctx, f.UserID, "report-1")
	require.NoError(t, err)
	assert.Equal(t, f.ID, byReport.ID)
}

func TestPaymentFailureRepository_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewPaymentFailureRepository(db)

	_, err := repo.GetByID(context.Background(), uuid.New())
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPaymentFailureRepository_DuplicateReportID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewPaymentFailureRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	newFailure := func() *domain.PaymentFailure {
		return &domain.PaymentFailure{
			ID:         uuid.New(),
			UserID:     userID,
			ItemID:     "repo-1",
			ReportID:   ptr("same-report"),
			Source:     domain.FailureSourceWallet,
			RawMessage: "User rejected the transaction",
			Code:       payerr.KindTxRejected,
			CreatedAt:  time.Now().UTC(),
		}
	}

	require.NoError(t, repo.Create(ctx, newFailure()))
	err := repo.Create(ctx, newFailure())
	require.Error(t, err)
	assert.True(t, repository.IsDuplicateKey(err))
}

func TestPaymentFailureRepository_ListCountDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewPaymentFailureRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	otherUser := uuid.New()
	now := time.Now().UTC()

	testutil.SeedFailure(t, db, userID, "User rejected the transaction", now.Add(-time.Minute))
	testutil.SeedFailure(t, db, userID, "User denied transaction signature", now)
	old := testutil.SeedFailure(t, db, userID, "Network request timed out", now.Add(-100*24*time.Hour))
	testutil.SeedFailure(t, db, otherUser, "insufficient balance", now)

	list, err := repo.ListByUser(ctx, userID, 10)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "User denied transaction signature", list[0].RawMessage)
	assert.Equal(t, old.ID, list[2].ID)

	limited, err := repo.ListByUser(ctx, userID, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	counts, err := repo.CountByKind(ctx, userID)
	require.NoError(t, err)
	byCode := map[payerr.Kind]int64{}
	for _, c := range counts {
		byCode[c.Code] = c.Count
	}
	assert.Equal(t, int64(2), byCode[payerr.KindTxRejected])
	assert.Equal(t, int64(1), byCode[payerr.KindNetworkError])
	assert.NotContains(t, byCode, payerr.KindInsufficientBalance)

	n, err := repo.DeleteOlderThan(ctx, now.Add(-90*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, 2, testutil.CountFailures(t, db, userID))
	assert.Equal(t, 1, testutil.CountFailures(t, db, otherUser))
}

func TestPaymentFailureRepository_ListEmpty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewPaymentFailureRepository(db)

	list, err := repo.ListByUser(context.Background(), uuid.New(), 10)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}
