// Package reporter surfaces mismatches to a human. A Reporter may launch an
// external diff tool, print to the console, or do nothing; each one declares
// whether it can run in the current environment, and the engine fires the
// first willing reporter in its chain at most once per mismatch so two diff
// tools never open for the same failure.
package reporter

import (
	"github.com/approvalkit/approvalkit/pkg/registry"
)

// Reporter handles one mismatch. Report is fire-and-forget: the engine does
// not wait for an external tool to exit and never interprets its status.
type Reporter interface {
	// Report is invoked with the two artifact paths on mismatch.
	Report(received, approved string)
	// IsWorkingInThisEnvironment reports whether this reporter can run
	// right now (tool installed, GUI session present, and so on).
	IsWorkingInThisEnvironment() bool
}

// firstWorking dispatches to the first member that claims to work.
type firstWorking struct {
	members []Reporter
}

// FirstWorking combines reporters with first-match semantics: exactly one
// member fires, and members that cannot run are skipped in order.
func FirstWorking(members ...Reporter) Reporter {
	return firstWorking{members: members}
}

func (f firstWorking) IsWorkingInThisEnvironment() bool {
	for _, r := range f.members {
		if r.IsWorkingInThisEnvironment() {
			return true
		}
	}
	return false
}

func (f firstWorking) Report(received, approved string) {
	for _, r := range f.members {
		if r.IsWorkingInThisEnvironment() {
			r.Report(received, approved)
			return
		}
	}
}

// Quiet never runs; it pins mismatch surfacing down to the test failure
// message alone, which is what CI configurations usually want.
type Quiet struct{}

func (Quiet) Report(string, string) {}
func (Quiet) IsWorkingInThisEnvironment() bool { return true }

var defaultReporter = registry.NewStack[Reporter](Reporter(nil))

// Default returns the currently installed default reporter. When none has
// been installed it falls back to first-working dispatch over the known diff
// tools with a console fallback.
func Default() Reporter {
	if r := defaultReporter.Current(); r != nil {
		return r
	}
	return FirstWorking(append(KnownDiffTools(), Console())...)
}

// UseDefault installs r as the process-wide default reporter and returns a
// restore function reinstating the previous default. Defer the restore.
func UseDefault(r Reporter) (restore func()) {
	return defaultReporter.Push(r)
}

var frontLoaded = registry.NewList[Reporter]()

// FrontLoaded returns the currently registered front-loaded reporters in
// registration order. They are consulted before the default reporter.
func FrontLoaded() []Reporter {
	return frontLoaded.All()
}

// UseFrontLoaded registers r ahead of the default chain and returns a
// restore function removing it again.
func UseFrontLoaded(r Reporter) (restore func()) {
	return frontLoaded.Add(r)
}

// Chain assembles the effective reporter for one verification: front-loaded
// reporters first, then override if non-nil, otherwise the default.
func Chain(override Reporter) Reporter {
	tail := override
	if tail == nil {
		tail = Default()
	}
	return FirstWorking(append(FrontLoaded(), tail)...)
}
