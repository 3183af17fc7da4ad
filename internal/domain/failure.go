package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/codemart/internal/payerr"
)

type Currency string

const (
	CurrencyETH   Currency = "ETH"
	CurrencyUSDC  Currency = "USDC"
	CurrencyMATIC Currency = "MATIC"
)

func (c Currency) IsValid() bool {
	switch c {
	case CurrencyETH, CurrencyUSDC, CurrencyMATIC:
		return true
	}
	return false
}

// FailureSource records which layer surfaced the raw message.
type FailureSource string

const (
	FailureSourceWallet FailureSource = "wallet"
	FailureSourceAPI    FailureSource = "api"
	FailureSourceChain  FailureSource = "chain"
)

func (s FailureSource) IsValid() bool {
	switch s {
	case FailureSourceWallet, FailureSourceAPI, FailureSourceChain:
		return true
	}
	return false
}

type PaymentFailure struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	ItemID        string
	ReportID      *string
	Source        FailureSource
	WalletAddress *string
	TxHash        *string
	Amount        decimal.NullDecimal
	Currency      *Currency
	RawMessage    string
	Code          payerr.Kind
	Recoverable   bool
	CreatedAt     time.Time
}

type KindCount struct {
	Code  payerr.Kind
	Count int64
}

// IsWalletAddress reports whether s is a 0x-prefixed 20-byte hex address.
func IsWalletAddress(s string) bool {
	if len(s) != 42 || (s[:2] != "0x" && s[:2] != "0X") {
		return false
	}
	for _, c := range s[2:] {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
