package payerr

import "strings"

type rule struct {
	name  string
	match func(msg string) bool
	kind  Kind
}

func containsAny(msg string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(msg, w) {
			return true
		}
	}
	return false
}

func containsAll(msg string, words ...string) bool {
	for _, w := range words {
		if !strings.Contains(msg, w) {
			return false
		}
	}
	return true
}

// rules run in order against the lowercased message, after name matching has
// failed. First match wins.
var rules = []rule{
	{"insufficient-balance", func(m string) bool { return containsAny(m, "insufficient", "balance") }, KindInsufficientBalance},
	{"rejected", func(m string) bool { return containsAny(m, "rejected", "denied") }, KindTxRejected},
	{"already-has-access", func(m string) bool { return containsAll(m, "already", "access") }, KindAlreadyHasAccess},
	{"network", func(m string) bool { return containsAny(m, "network", "timeout", "connection") }, KindNetworkError},
	{"contract", func(m string) bool { return containsAny(m, "contract", "revert") }, KindContractError},
	{"verification", func(m string) bool { return strings.Contains(m, "verification") }, KindVerificationFailed},
	{"grant", func(m string) bool { return strings.Contains(m, "grant") }, KindAccessGrantFailed},
}

// Rule describes one keyword heuristic, for inspection.
type Rule struct {
	Name string `json:"name" yaml:"name"`
	Kind Kind   `json:"kind" yaml:"kind"`
}

// Rules returns the keyword heuristics in priority order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	for i, r := range rules {
		out[i] = Rule{Name: r.name, Kind: r.kind}
	}
	return out
}

// Classify maps a raw failure message to a catalog entry. It never fails: an
// empty or unrecognized message yields the unknown-error entry.
func Classify(message string) Info {
	return MustLookup(classifyKind(message))
}

// ClassifyError classifies err.Error(). A nil error is unknown.
func ClassifyError(err error) Info {
	if err == nil {
		return MustLookup(KindUnknownError)
	}
	return Classify(err.Error())
}

func classifyKind(message string) Kind {
	msg := strings.ToLower(strings.TrimSpace(message))
	if msg == "" {
		return KindUnknownError
	}

	if k, ok := matchName(msg); ok {
		return k
	}
	if k, ok := matchKeywords(msg); ok {
		return k
	}
	return KindUnknownError
}

func matchName(msg string) (Kind, bool) {
	for _, k := range kinds {
		if strings.Contains(msg, k.Words()) {
			return k, true
		}
	}
	return "", false
}

func matchKeywords(msg string) (Kind, bool) {
	for _, r := range rules {
		if r.match(msg) {
			return r.kind, true
		}
	}
	return "", false
}
