package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/codemart/internal/auth"
	"github.com/josh-kwaku/codemart/internal/domain"
	"github.com/josh-kwaku/codemart/internal/logging"
	"github.com/josh-kwaku/codemart/internal/payerr"
	"github.com/josh-kwaku/codemart/internal/service"
)

type failureService interface {
	Report(ctx context.Context, req service.ReportRequest) (*domain.PaymentFailure, bool, error)
	Get(ctx context.Context, id, userID uuid.UUID) (*domain.PaymentFailure, error)
	List(ctx context.Context, userID uuid.UUID, limit int) ([]domain.PaymentFailure, error)
	Stats(ctx context.Context, userID uuid.UUID) ([]domain.KindCount, error)
}

type PaymentFailureHandler struct {
	failures failureService
}

func NewPaymentFailureHandler(failures failureService) *PaymentFailureHandler {
	return &PaymentFailureHandler{failures: failures}
}

type reportFailureRequest struct {
	ItemID        string           `json:"item_id"`
	ReportID      string           `json:"report_id"`
	Source        string           `json:"source"`
	WalletAddress string           `json:"wallet_address"`
	TxHash        string           `json:"tx_hash"`
	Amount        *decimal.Decimal `json:"amount"`
	Currency      string           `json:"currency"`
	Message       string           `json:"message"`
}

func (r reportFailureRequest) Validate() []FieldError {
	var errs []FieldError

	if r.ItemID == "" {
		errs = append(errs, FieldError{Field: "item_id", Message: "required"})
	}

	if r.Source == "" {
		errs = append(errs, FieldError{Field: "source", Message: "required"})
	} else if !domain.FailureSource(r.Source).IsValid() {
		errs = append(errs, FieldError{Field: "source", Message: "must be wallet, api, or chain"})
	}

	if r.Currency != "" && !domain.Currency(r.Currency).IsValid() {
		errs = append(errs, FieldError{Field: "currency", Message: "must be ETH, USDC, or MATIC"})
	}

	return errs
}

type paymentFailureDTO struct {
	ID            uuid.UUID        `json:"id"`
	ItemID        string           `json:"item_id"`
	ReportID      *string          `json:"report_id,omitempty"`
	Source        string           `json:"source"`
	WalletAddress *string          `json:"wallet_address,omitempty"`
	TxHash        *string          `json:"tx_hash,omitempty"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	Currency      *string          `json:"currency,omitempty"`
	Message       string           `json:"message"`
	Code          payerr.Kind      `json:"code"`
	Recoverable   bool             `json:"recoverable"`
	CreatedAt     time.Time        `json:"created_at"`
}

func toPaymentFailureDTO(f *domain.PaymentFailure) paymentFailureDTO {
	dto := paymentFailureDTO{
		ID:            f.ID,
		ItemID:        f.ItemID,
		ReportID:      f.ReportID,
		Source:        string(f.Source),
		WalletAddress: f.WalletAddress,
		TxHash:        f.TxHash,
		Message:       f.RawMessage,
		Code:          f.Code,
		Recoverable:   f.Recoverable,
		CreatedAt:     f.CreatedAt,
	}
	if f.Amount.Valid {
		a := f.Amount.Decimal
		dto.Amount = &a
	}
	if f.Currency != nil {
		c := string(*f.Currency)
		dto.Currency = &c
	}
	return dto
}

type reportFailureResponse struct {
	Status       string            `json:"status"`
	Failure      paymentFailureDTO `json:"failure"`
	PaymentError payerr.Info       `json:"payment_error"`
}

type kindCountDTO struct {
	Code  payerr.Kind `json:"code"`
	Count int64       `json:"count"`
}

func (h *PaymentFailureHandler) Report(w http.ResponseWriter, r *http.Request) {
	log := logging.FromContext(r.Context())

	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		RespondAppError(w, ErrMissingToken, nil)
		return
	}

	var req reportFailureRequest
	if err := decodeBody(w, r, &req); err != nil {
		RespondAppError(w, bodyError(err), nil)
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	if req.ReportID == "" {
		req.ReportID = r.Header.Get("Idempotency-Key")
	}

	f, created, err := h.failures.Report(r.Context(), service.ReportRequest{
		UserID:        userID,
		ItemID:        req.ItemID,
		ReportID:      req.ReportID,
		Source:        domain.FailureSource(req.Source),
		WalletAddress: req.WalletAddress,
		TxHash:        req.TxHash,
		Amount:        req.Amount,
		Currency:      domain.Currency(req.Currency),
		Message:       req.Message,
	})
	if err != nil {
		log.Warn("payment failure report rejected", "error", err)
		RespondDomainError(w, err)
		return
	}

	resp := reportFailureResponse{
		Status:       "received",
		Failure:      toPaymentFailureDTO(f),
		PaymentError: payerr.MustLookup(f.Code),
	}
	if !created {
		resp.Status = "already_received"
		RespondSuccess(w, http.StatusOK, resp)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/v1/payment-failures/%s", f.ID))
	RespondSuccess(w, http.StatusCreated, resp)
}

func (h *PaymentFailureHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		RespondAppError(w, ErrMissingToken, nil)
		return
	}

	var limit int
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			RespondValidationError(w, []FieldError{{Field: "limit", Message: "must be a positive integer"}})
			return
		}
		limit = n
	}

	failures, err := h.failures.List(r.Context(), userID, limit)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to list payment failures", "error", err)
		RespondDomainError(w, err)
		return
	}

	dtos := make([]paymentFailureDTO, 0, len(failures))
	for i := range failures {
		dtos = append(dtos, toPaymentFailureDTO(&failures[i]))
	}
	RespondSuccess(w, http.StatusOK, dtos)
}

func (h *PaymentFailureHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		RespondAppError(w, ErrMissingToken, nil)
		return
	}

	counts, err := h.failures.Stats(r.Context(), userID)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to load payment failure stats", "error", err)
		RespondDomainError(w, err)
		return
	}

	var total int64
	dtos := make([]kindCountDTO, 0, len(counts))
	for _, c := range counts {
		dtos = append(dtos, kindCountDTO{Code: c.Code, Count: c.Count})
		total += c.Count
	}
	RespondSuccess(w, http.StatusOK, map[string]any{
		"total":   total,
		"by_code": dtos,
	})
}

func (h *PaymentFailureHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, id, appErr := resourceFromPath(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	f, err := h.failures.Get(r.Context(), id, userID)
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, toPaymentFailureDTO(f))
}
