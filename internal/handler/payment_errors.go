package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/josh-kwaku/codemart/internal/logging"
	"github.com/josh-kwaku/codemart/internal/payerr"
)

type PaymentErrorHandler struct{}

func NewPaymentErrorHandler() *PaymentErrorHandler {
	return &PaymentErrorHandler{}
}

type classifyRequest struct {
	Message *string `json:"message"`
}

func (h *PaymentErrorHandler) List(w http.ResponseWriter, r *http.Request) {
	RespondSuccess(w, http.StatusOK, payerr.All())
}

func (h *PaymentErrorHandler) Get(w http.ResponseWriter, r *http.Request) {
	kind, err := payerr.ParseKind(r.PathValue("code"))
	if err != nil {
		RespondDomainError(w, err)
		return
	}
	RespondSuccess(w, http.StatusOK, payerr.MustLookup(kind))
}

func (h *PaymentErrorHandler) Classify(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	if err := decodeBody(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		RespondAppError(w, bodyError(err), nil)
		return
	}

	var message string
	if req.Message != nil {
		message = *req.Message
	}

	info := payerr.Classify(message)
	logging.FromContext(r.Context()).Debug("message classified", "code", info.Code)
	RespondSuccess(w, http.StatusOK, info)
}
