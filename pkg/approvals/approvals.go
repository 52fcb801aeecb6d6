// Package approvals is the public surface of the approval-testing engine.
// A verification persists freshly computed output next to the test that
// produced it, compares it against a previously accepted baseline, and on
// mismatch launches the first reporter willing to run in this environment:
//
//	func TestGreeting(t *testing.T) {
//		approvals.Verify(t, Greet("world"))
//	}
//
// The first run fails and leaves TestGreeting.received.txt on disk; renaming
// it to TestGreeting.approved.txt accepts the output as the baseline.
package approvals

import (
	"errors"
	"fmt"
	"strings"

	"github.com/approvalkit/approvalkit/pkg/approver"
	"github.com/approvalkit/approvalkit/pkg/config"
	"github.com/approvalkit/approvalkit/pkg/namer"
	"github.com/approvalkit/approvalkit/pkg/options"
	"github.com/approvalkit/approvalkit/pkg/reporter"
	"github.com/approvalkit/approvalkit/pkg/writer"
)

// T is the subset of *testing.T the engine needs. Mismatches go through
// Errorf so a test can report several of them; I/O and configuration
// failures go through Fatalf because nothing meaningful can follow them.
type T interface {
	Helper()
	Name() string
	Errorf(format string, args ...any)
	Fatalf(format string, args ...any)
}

// Verify compares content against the approved baseline for this test.
func Verify(t T, content string, opt ...options.Options) {
	t.Helper()
	o := pick(opt)
	run(t, writer.String(content, o.Extension()), o)
}

// VerifyBytes compares binary content under the given extension. Scrubbers,
// if configured, see the raw bytes as a string; leave them unset for
// genuinely binary formats.
func VerifyBytes(t T, content []byte, extension string, opt ...options.Options) {
	t.Helper()
	o := pick(opt).ForFile(extension)
	run(t, writer.Bytes(content, o.Extension()), o)
}

// VerifyAll verifies a slice as one artifact, each item on its own line as
// "[i] = item". A non-empty header precedes the items, separated by a blank
// line gap. A nil format falls back to fmt.Sprintf("%v").
func VerifyAll[E any](t T, header string, items []E, format func(E) string, opt ...options.Options) {
	t.Helper()
	if format == nil {
		format = func(e E) string { return fmt.Sprintf("%v", e) }
	}
	var sb strings.Builder
	if header != "" {
		sb.WriteString(header)
		sb.WriteString("\n\n\n")
	}
	for i, e := range items {
		fmt.Fprintf(&sb, "[%d] = %s\n", i, format(e))
	}
	Verify(t, sb.String(), opt...)
}

// noErrorMessage is verified when the function under test unexpectedly
// succeeds, so the baseline makes the expectation explicit.
const noErrorMessage = "*** no error occurred ***"

// VerifyErrorMessage runs f and verifies the text of the error it returns.
// The error becomes ordinary content: a changed message is a mismatch, not a
// propagated failure.
func VerifyErrorMessage(t T, f func() error, opt ...options.Options) {
	t.Helper()
	message := noErrorMessage
	if err := f(); err != nil {
		message = err.Error()
	}
	Verify(t, message, opt...)
}

// VerifyExistingFile verifies a file already on disk against its ".approved"
// sibling. The file is the received artifact and is never deleted.
func VerifyExistingFile(t T, path string, opt ...options.Options) {
	t.Helper()
	o := pick(opt).WithNamer(namer.ForExistingFile(path))
	run(t, writer.ExistingFile(path), o)
}

// UseApprovalsSubdirectory relocates approved and received files into dir
// (relative to each test source directory) until the returned restore
// function runs. Defer the restore:
//
//	defer approvals.UseApprovalsSubdirectory("testdata")()
func UseApprovalsSubdirectory(dir string) (restore func()) {
	return namer.UseSubdirectory(dir)
}

// UseAsDefaultReporter installs r as the process-wide default reporter until
// the returned restore function runs.
func UseAsDefaultReporter(r reporter.Reporter) (restore func()) {
	return reporter.UseDefault(r)
}

// UseAsFrontLoadedReporter registers r ahead of the default reporter chain
// until the returned restore function runs.
func UseAsFrontLoadedReporter(r reporter.Reporter) (restore func()) {
	return reporter.UseFrontLoaded(r)
}

// UseAsDefaultNamer installs f as the default namer factory until the
// returned restore function runs.
func UseAsDefaultNamer(f namer.Factory) (restore func()) {
	return namer.UseFactory(f)
}

// UseProjectConfig finds the nearest .approvals.yml above startDir and
// installs its subdirectory and reporter settings as process defaults.
// A missing file is not an error; the returned restore is then a no-op.
func UseProjectConfig(startDir string) (restore func(), err error) {
	cfg, err := config.Find(startDir)
	if errors.Is(err, config.ErrNotFound) {
		return func() {}, nil
	}
	if err != nil {
		return nil, err
	}
	return cfg.Apply(), nil
}

func pick(opt []options.Options) options.Options {
	if len(opt) > 0 {
		return opt[0]
	}
	return options.New()
}

func run(t T, w writer.Writer, o options.Options) {
	t.Helper()
	n := o.Namer()
	if n == nil {
		var err error
		n, err = namer.DefaultFactory()(t)
		if err != nil {
			t.Fatalf("approvals: %v", err)
			return
		}
	}
	err := approver.Verify(n, w, reporter.Chain(o.Reporter()), o.Scrubber())
	switch {
	case err == nil:
	case errors.Is(err, approver.ErrMismatch):
		t.Errorf("approvals: %v", err)
	default:
		t.Fatalf("approvals: %v", err)
	}
}
