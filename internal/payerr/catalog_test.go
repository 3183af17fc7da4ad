package payerr

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_Complete(t *testing.T) {
	require.Len(t, Kinds(), 11)
	require.Len(t, catalog, 11)

	for _, k := range Kinds() {
		info, ok := Lookup(k)
		require.True(t, ok, "missing entry for %s", k)
		assert.Equal(t, k, info.Code)
		assert.NotEmpty(t, info.UserMessage)
		assert.NotEmpty(t, info.ActionableSteps)
	}
}

func TestAll_DeclarationOrder(t *testing.T) {
	all := All()
	kinds := Kinds()
	require.Len(t, all, len(kinds))
	for i := range all {
		assert.Equal(t, kinds[i], all[i].Code)
	}
	assert.Equal(t, KindInsufficientBalance, all[0].Code)
	assert.Equal(t, KindUnknownError, all[len(all)-1].Code)
}

func TestLookup_ReturnsCopy(t *testing.T) {
	info, ok := Lookup(KindNetworkError)
	require.True(t, ok)
	original := info.ActionableSteps[0]

	info.ActionableSteps[0] = "changed"
	info.UserMessage = "changed"

	again, _ := Lookup(KindNetworkError)
	assert.Equal(t, original, again.ActionableSteps[0])
	assert.NotEqual(t, "changed", again.UserMessage)
}

func TestLookup_Unknown(t *testing.T) {
	_, ok := Lookup(Kind("NOPE"))
	assert.False(t, ok)
	assert.Equal(t, KindUnknownError, MustLookup(Kind("NOPE")).Code)
}

func TestRecoverable(t *testing.T) {
	tests := []struct {
		kind Kind
		want bool
	}{
		{KindInsufficientBalance, true},
		{KindWalletDisconnected, true},
		{KindTxRejected, true},
		{KindTxFailed, true},
		{KindVerificationFailed, false},
		{KindAccessGrantFailed, false},
		{KindAlreadyHasAccess, false},
		{KindInvalidAmount, true},
		{KindNetworkError, true},
		{KindContractError, true},
		{KindUnknownError, true},
	}

	for _, tc := range tests {
		t.Run(string(tc.kind), func(t *testing.T) {
			assert.Equal(t, tc.want, MustLookup(tc.kind).Recoverable)
		})
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{in: "TX_REJECTED", want: KindTxRejected},
		{in: "tx_rejected", want: KindTxRejected},
		{in: " network_error ", want: KindNetworkError},
		{in: "tx rejected", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseKind(tc.in)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrUnknownKind)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestKind_Words(t *testing.T) {
	assert.Equal(t, "insufficient balance", KindInsufficientBalance.Words())
	assert.Equal(t, "access grant failed", KindAccessGrantFailed.Words())
}

func TestInfo_JSON(t *testing.T) {
	b, err := json.Marshal(MustLookup(KindAlreadyHasAccess))
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, "ALREADY_HAS_ACCESS", got["code"])
	assert.Equal(t, "You already have access to this item", got["userMessage"])
	assert.Equal(t, false, got["recoverable"])
	assert.Len(t, got["actionableSteps"], 1)
}
