package options

import (
	"testing"

	"github.com/approvalkit/approvalkit/pkg/namer"
	"github.com/approvalkit/approvalkit/pkg/reporter"
	"github.com/approvalkit/approvalkit/pkg/scrub"
)

func TestZeroValueDefaults(t *testing.T) {
	t.Parallel()
	o := New()
	if got := o.Extension(); got != DefaultExtension {
		t.Errorf("Extension() = %q, want %q", got, DefaultExtension)
	}
	if o.Scrubber() != nil || o.Reporter() != nil || o.Namer() != nil {
		t.Error("zero Options must have no overrides")
	}
	if got := o.Scrub("raw"); got != "raw" {
		t.Errorf("Scrub() = %q, want passthrough", got)
	}
}

func TestMutatorsReturnCopies(t *testing.T) {
	t.Parallel()
	base := New()
	derived := base.ForFile(".json").WithReporter(reporter.Quiet{})

	if base.Extension() != DefaultExtension {
		t.Errorf("base mutated: Extension() = %q", base.Extension())
	}
	if base.Reporter() != nil {
		t.Error("base mutated: Reporter() set")
	}
	if derived.Extension() != ".json" {
		t.Errorf("derived Extension() = %q", derived.Extension())
	}
	if _, ok := derived.Reporter().(reporter.Quiet); !ok {
		t.Errorf("derived Reporter() = %T", derived.Reporter())
	}
}

func TestWithScrubber_Chains(t *testing.T) {
	t.Parallel()
	o := New().
		WithScrubber(scrub.MustRegex(`a`, "b")).
		WithScrubber(scrub.MustRegex(`b`, "c"))
	// The second scrubber sees the first scrubber's output.
	if got := o.Scrub("a"); got != "c" {
		t.Errorf("Scrub(\"a\") = %q, want %q", got, "c")
	}
}

func TestWithNamer(t *testing.T) {
	t.Parallel()
	n := namer.ForExistingFile("/data/x.txt")
	o := New().WithNamer(n)
	if o.Namer() == nil || o.Namer().Name() != "x" {
		t.Errorf("Namer() = %#v", o.Namer())
	}
}
