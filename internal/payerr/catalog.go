package payerr

import "slices"

type Info struct {
	Code            Kind     `json:"code" yaml:"code"`
	UserMessage     string   `json:"userMessage" yaml:"userMessage"`
	ActionableSteps []string `json:"actionableSteps" yaml:"actionableSteps"`
	Recoverable     bool     `json:"recoverable" yaml:"recoverable"`
}

var catalog = map[Kind]Info{
	KindInsufficientBalance: {
		Code:        KindInsufficientBalance,
		UserMessage: "Insufficient balance to complete this purchase",
		ActionableSteps: []string{
			"Add funds to your wallet to cover the price and network fees",
			"Or switch to a wallet with enough balance",
			"Try the purchase again",
		},
		Recoverable: true,
	},
	KindWalletDisconnected: {
		Code:        KindWalletDisconnected,
		UserMessage: "Your wallet is not connected",
		ActionableSteps: []string{
			"Reconnect your wallet from the wallet menu",
			"Unlock your wallet extension if it is locked",
			"Try the purchase again",
		},
		Recoverable: true,
	},
	KindTxRejected: {
		Code:        KindTxRejected,
		UserMessage: "The transaction was rejected in your wallet",
		ActionableSteps: []string{
			"Review the transaction details in your wallet",
			"Approve the transaction when prompted",
			"Try the purchase again",
		},
		Recoverable: true,
	},
	KindTxFailed: {
		Code:        KindTxFailed,
		UserMessage: "The transaction failed on the network",
		ActionableSteps: []string{
			"Check the transaction status in a block explorer",
			"Make sure you have enough funds for network fees",
			"Try the purchase again",
		},
		Recoverable: true,
	},
	KindVerificationFailed: {
		Code:        KindVerificationFailed,
		UserMessage: "We could not verify your payment yet",
		ActionableSteps: []string{
			"Wait a few minutes for the transaction to be confirmed",
			"Keep your transaction hash for reference",
			"Contact support if access is not granted within an hour",
		},
		Recoverable: false,
	},
	KindAccessGrantFailed: {
		Code:        KindAccessGrantFailed,
		UserMessage: "Payment received, but access could not be granted",
		ActionableSteps: []string{
			"Refresh the page to check your access",
			"Contact support with your transaction hash",
		},
		Recoverable: false,
	},
	KindAlreadyHasAccess: {
		Code:        KindAlreadyHasAccess,
		UserMessage: "You already have access to this item",
		ActionableSteps: []string{
			"Open the item from your library",
		},
		Recoverable: false,
	},
	KindInvalidAmount: {
		Code:        KindInvalidAmount,
		UserMessage: "The payment amount is invalid",
		ActionableSteps: []string{
			"Refresh the page to load the current price",
			"Try the purchase again",
		},
		Recoverable: true,
	},
	KindNetworkError: {
		Code:        KindNetworkError,
		UserMessage: "Network connection problem",
		ActionableSteps: []string{
			"Check your internet connection",
			"Try the purchase again in a moment",
		},
		Recoverable: true,
	},
	KindContractError: {
		Code:        KindContractError,
		UserMessage: "The payment contract returned an error",
		ActionableSteps: []string{
			"Make sure your wallet is on the correct network",
			"Try the purchase again",
			"Contact support if the problem persists",
		},
		Recoverable: true,
	},
	KindUnknownError: {
		Code:        KindUnknownError,
		UserMessage: "Something went wrong",
		ActionableSteps: []string{
			"Try again",
			"Contact support if the problem persists",
		},
		Recoverable: true,
	},
}

// Lookup returns a copy of the entry for k. Callers may modify the returned
// steps without affecting the catalog.
func Lookup(k Kind) (Info, bool) {
	info, ok := catalog[k]
	if !ok {
		return Info{}, false
	}
	info.ActionableSteps = slices.Clone(info.ActionableSteps)
	return info, true
}

// MustLookup is Lookup that falls back to the unknown-error entry.
func MustLookup(k Kind) Info {
	if info, ok := Lookup(k); ok {
		return info
	}
	info, _ := Lookup(KindUnknownError)
	return info
}

// All returns every entry in declaration order.
func All() []Info {
	out := make([]Info, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, MustLookup(k))
	}
	return out
}
