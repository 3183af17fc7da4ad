// Package payerr maps raw payment failure messages from wallets, the API and
// the chain onto a fixed taxonomy of user-facing errors.
package payerr

import (
	"errors"
	"fmt"
	"strings"
)

type Kind string

const (
	KindInsufficientBalance Kind = "INSUFFICIENT_BALANCE"
	KindWalletDisconnected  Kind = "WALLET_DISCONNECTED"
	KindTxRejected          Kind = "TX_REJECTED"
	KindTxFailed            Kind = "TX_FAILED"
	KindVerificationFailed  Kind = "VERIFICATION_FAILED"
	KindAccessGrantFailed   Kind = "ACCESS_GRANT_FAILED"
	KindAlreadyHasAccess    Kind = "ALREADY_HAS_ACCESS"
	KindInvalidAmount       Kind = "INVALID_AMOUNT"
	KindNetworkError        Kind = "NETWORK_ERROR"
	KindContractError       Kind = "CONTRACT_ERROR"
	KindUnknownError        Kind = "UNKNOWN_ERROR"
)

var ErrUnknownKind = errors.New("unknown payment error kind")

// kinds is the declaration order. Name matching in Classify walks it front to
// back, so reordering changes results.
var kinds = []Kind{
	KindInsufficientBalance,
	KindWalletDisconnected,
	KindTxRejected,
	KindTxFailed,
	KindVerificationFailed,
	KindAccessGrantFailed,
	KindAlreadyHasAccess,
	KindInvalidAmount,
	KindNetworkError,
	KindContractError,
	KindUnknownError,
}

func (k Kind) String() string { return string(k) }

func (k Kind) Valid() bool {
	_, ok := catalog[k]
	return ok
}

// Words returns the code as lowercase words, e.g. "insufficient balance".
func (k Kind) Words() string {
	return strings.ReplaceAll(strings.ToLower(string(k)), "_", " ")
}

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	return out
}

func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToUpper(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", fmt.Errorf("ParseKind: %q: %w", s, ErrUnknownKind)
	}
	return k, nil
}
