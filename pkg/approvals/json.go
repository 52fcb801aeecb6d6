package approvals

import (
	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/approvalkit/approvalkit/pkg/options"
)

// VerifyJSON canonicalizes data (two-space indent, deterministic map order)
// and verifies it under the .json extension, so formatting-only changes in
// the producer never break a baseline. Invalid JSON is a configuration
// error, not a mismatch.
func VerifyJSON(t T, data []byte, opt ...options.Options) {
	t.Helper()
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatalf("approvals: invalid JSON: %v", err)
		return
	}
	pretty, err := json.Marshal(v, json.Deterministic(true), jsontext.WithIndent("  "))
	if err != nil {
		t.Fatalf("approvals: formatting JSON: %v", err)
		return
	}
	Verify(t, string(pretty)+"\n", pick(opt).ForFile(".json"))
}

// VerifyAsJSON marshals v and verifies the canonical JSON form, for
// approving structs and maps directly.
func VerifyAsJSON(t T, v any, opt ...options.Options) {
	t.Helper()
	pretty, err := json.Marshal(v, json.Deterministic(true), jsontext.WithIndent("  "))
	if err != nil {
		t.Fatalf("approvals: marshaling %T: %v", v, err)
		return
	}
	Verify(t, string(pretty)+"\n", pick(opt).ForFile(".json"))
}
