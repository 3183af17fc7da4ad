package commands

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/josh-kwaku/codemart/internal/auth"
	"github.com/josh-kwaku/codemart/internal/payerr"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("PAYERR_PRETTY_JSON", "")

	root := NewRootCmd("test")
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func decode(t *testing.T, raw string) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal([]byte(raw), &env))
	return env
}

func TestClassifyCmd_Args(t *testing.T) {
	out, err := run(t, "", "classify", "User", "rejected", "the", "transaction")
	require.NoError(t, err)

	env := decode(t, out)
	require.True(t, env.Success)
	var info payerr.Info
	require.NoError(t, json.Unmarshal(env.Data, &info))
	assert.Equal(t, payerr.KindTxRejected, info.Code)
	assert.True(t, info.Recoverable)
}

func TestClassifyCmd_Stdin(t *testing.T) {
	out, err := run(t, "execution reverted: Paused()\n", "classify", "--code-only")
	require.NoError(t, err)
	assert.Equal(t, "CONTRACT_ERROR\n", out)
}

func TestClassifyCmd_EmptyStdin(t *testing.T) {
	out, err := run(t, "", "classify", "--code-only")
	require.NoError(t, err)
	assert.Equal(t, "UNKNOWN_ERROR\n", out)
}

func TestCatalogCmd(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		out, err := run(t, "", "catalog")
		require.NoError(t, err)

		env := decode(t, out)
		var entries []payerr.Info
		require.NoError(t, json.Unmarshal(env.Data, &entries))
		assert.Len(t, entries, len(payerr.Kinds()))
	})

	t.Run("yaml", func(t *testing.T) {
		out, err := run(t, "", "catalog", "--format", "yaml")
		require.NoError(t, err)

		var entries []payerr.Info
		require.NoError(t, yaml.Unmarshal([]byte(out), &entries))
		require.Len(t, entries, len(payerr.Kinds()))
		assert.Equal(t, payerr.KindInsufficientBalance, entries[0].Code)
	})

	t.Run("single entry", func(t *testing.T) {
		out, err := run(t, "", "catalog", "already_has_access")
		require.NoError(t, err)

		env := decode(t, out)
		var info payerr.Info
		require.NoError(t, json.Unmarshal(env.Data, &info))
		assert.Equal(t, payerr.KindAlreadyHasAccess, info.Code)
		assert.False(t, info.Recoverable)
	})

	t.Run("unknown code", func(t *testing.T) {
		out, err := run(t, "", "catalog", "NOPE")
		require.Error(t, err)
		require.IsType(t, printedError{}, err)
		require.ErrorIs(t, err, payerr.ErrUnknownKind)

		env := decode(t, out)
		assert.False(t, env.Success)
		assert.Contains(t, env.Error, "NOPE")
	})

	t.Run("bad format", func(t *testing.T) {
		_, err := run(t, "", "catalog", "--format", "xml")
		require.IsType(t, printedError{}, err)
	})
}

func TestRulesCmd(t *testing.T) {
	out, err := run(t, "", "rules")
	require.NoError(t, err)

	env := decode(t, out)
	var rules []payerr.Rule
	require.NoError(t, json.Unmarshal(env.Data, &rules))
	require.Len(t, rules, len(payerr.Rules()))
	assert.Equal(t, payerr.KindInsufficientBalance, rules[0].Kind)
}

func TestTokenCmd(t *testing.T) {
	userID := uuid.New()
	t.Setenv("JWT_SECRET", "cli-secret")

	out, err := run(t, "", "token", "--user-id", userID.String(), "--ttl", "5m")
	require.NoError(t, err)

	env := decode(t, out)
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &resp))

	claims, err := auth.ValidateToken(resp.Token, "cli-secret")
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)

	t.Run("missing secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		_, err := run(t, "", "token")
		require.IsType(t, printedError{}, err)
	})

	t.Run("bad user id", func(t *testing.T) {
		_, err := run(t, "", "token", "--user-id", "nope", "--ttl", time.Minute.String())
		require.IsType(t, printedError{}, err)
	})
}

func TestRootCmd_Version(t *testing.T) {
	out, err := run(t, "", "--version")
	require.NoError(t, err)
	assert.Contains(t, out, `"version":"test"`)
}
