package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/codemart/internal/domain"
	"github.com/josh-kwaku/codemart/internal/logging"
	"github.com/josh-kwaku/codemart/internal/payerr"
	"github.com/josh-kwaku/codemart/internal/repository"
)

// maxStoredMessage bounds the raw message persisted with a failure. The full
// message is still used for classification.
const maxStoredMessage = 4096

type ReportRequest struct {
	UserID        uuid.UUID
	ItemID        string
	ReportID      string
	Source        domain.FailureSource
	WalletAddress string
	TxHash        string
	Amount        *decimal.Decimal
	Currency      domain.Currency
	Message       string
}

type FailureService struct {
	failures failureRepository
	maxLimit int
	now      func() time.Time
}

func NewFailureService(failures failureRepository, maxLimit int) *FailureService {
	return &FailureService{
		failures: failures,
		maxLimit: maxLimit,
		now:      time.Now,
	}
}

// Report classifies and stores a failure. When the caller's report id was
// already used, the stored record is returned with created set to false.
func (s *FailureService) Report(ctx context.Context, req ReportRequest) (*domain.PaymentFailure, bool, error) {
	log := logging.FromContext(ctx)

	req.ItemID = storable(req.ItemID)
	req.ReportID = storable(req.ReportID)
	req.TxHash = storable(req.TxHash)
	req.Message = storable(req.Message)

	if err := validateReport(req); err != nil {
		return nil, false, fmt.Errorf("Report: %w", err)
	}

	info := payerr.Classify(req.Message)

	f := &domain.PaymentFailure{
		ID:          uuid.New(),
		UserID:      req.UserID,
		ItemID:      req.ItemID,
		ReportID:    optional(req.ReportID),
		Source:      req.Source,
		TxHash:      optional(req.TxHash),
		RawMessage:  truncate(req.Message, maxStoredMessage),
		Code:        info.Code,
		Recoverable: info.Recoverable,
		CreatedAt:   s.now().UTC(),
	}
	if req.WalletAddress != "" {
		f.WalletAddress = &req.WalletAddress
	}
	if req.Amount != nil {
		f.Amount = decimal.NewNullDecimal(*req.Amount)
	}
	if req.Currency != "" {
		c := req.Currency
		f.Currency = &c
	}

	if err := s.failures.Create(ctx, f); err != nil {
		if req.ReportID != "" && repository.IsDuplicateKey(err) {
			existing, getErr := s.failures.GetByReportID(ctx, req.UserID, req.ReportID)
			if getErr != nil {
				return nil, false, fmt.Errorf("Report: load existing report: %w", getErr)
			}
			log.Info("duplicate failure report", "report_id", req.ReportID, "payment_failure_id", existing.ID)
			return existing, false, nil
		}
		return nil, false, fmt.Errorf("Report: %w", err)
	}

	log.Warn("payment failure classified",
		"payment_failure_id", f.ID,
		"item_id", f.ItemID,
		"source", f.Source,
		"code", f.Code,
		"recoverable", f.Recoverable,
		"raw_message", f.RawMessage,
	)

	return f, true, nil
}

func (s *FailureService) Get(ctx context.Context, id, userID uuid.UUID) (*domain.PaymentFailure, error) {
	f, err := s.failures.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	if f.UserID != userID {
		return nil, fmt.Errorf("Get: %w", domain.ErrNotFound)
	}
	return f, nil
}

// List returns the user's most recent failures. A non-positive or oversized
// limit is replaced by the configured maximum.
func (s *FailureService) List(ctx context.Context, userID uuid.UUID, limit int) ([]domain.PaymentFailure, error) {
	if limit <= 0 || limit > s.maxLimit {
		limit = s.maxLimit
	}
	failures, err := s.failures.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	return failures, nil
}

// Stats returns one count per kind, in catalog order, zero-filled.
func (s *FailureService) Stats(ctx context.Context, userID uuid.UUID) ([]domain.KindCount, error) {
	counts, err := s.failures.CountByKind(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("Stats: %w", err)
	}

	byCode := make(map[payerr.Kind]int64, len(counts))
	for _, c := range counts {
		byCode[c.Code] += c.Count
	}

	kinds := payerr.Kinds()
	out := make([]domain.KindCount, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, domain.KindCount{Code: k, Count: byCode[k]})
	}
	return out, nil
}

func validateReport(req ReportRequest) error {
	if req.ItemID == "" {
		return fmt.Errorf("item id required: %w", domain.ErrInvalidRequest)
	}
	if !req.Source.IsValid() {
		return domain.ErrInvalidSource
	}
	if req.WalletAddress != "" && !domain.IsWalletAddress(req.WalletAddress) {
		return domain.ErrInvalidWallet
	}
	if req.Amount != nil && !req.Amount.IsPositive() {
		return domain.ErrInvalidAmount
	}
	if req.Currency != "" && !req.Currency.IsValid() {
		return domain.ErrInvalidCurrency
	}
	if req.Amount != nil && req.Currency == "" {
		return fmt.Errorf("currency required with amount: %w", domain.ErrInvalidCurrency)
	}
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// storable drops NUL bytes and invalid UTF-8, neither of which a postgres
// TEXT column accepts.
func storable(s string) string {
	return strings.ReplaceAll(strings.ToValidUTF8(s, ""), "\x00", "")
}

// truncate cuts a valid UTF-8 string to at most n bytes on a rune boundary.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
