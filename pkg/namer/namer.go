// Package namer derives the approved and received file paths for a
// verification. The engine depends only on the Namer contract; the concrete
// strategies here (test-context namer, existing-file namer, templated namer)
// are swappable without touching it.
package namer

import (
	"errors"

	"github.com/approvalkit/approvalkit/pkg/registry"
)

// Namer produces the two artifact paths and the identity they derive from.
// For a fixed identity and policy the same paths must be produced on every
// call; CI reproducibility depends on it.
type Namer interface {
	// ApprovedFile returns the baseline path for the given extension
	// (with or without a leading dot).
	ApprovedFile(extension string) string
	// ReceivedFile returns the freshly-produced artifact path.
	ReceivedFile(extension string) string
	// Name returns the identity string the paths derive from.
	Name() string
}

// TestingT is the subset of *testing.T a namer needs.
type TestingT interface {
	Name() string
	Helper()
}

// ErrNoTestContext is returned when the caller's test source file cannot be
// located, meaning the namer has no directory to anchor artifact paths in.
var ErrNoTestContext = errors.New("cannot locate calling _test.go file")

// Factory builds the namer for one verification from ambient test context.
type Factory func(t TestingT) (Namer, error)

var defaultFactory = registry.NewStack[Factory](func(t TestingT) (Namer, error) {
	n, err := ForTest(t)
	if err != nil {
		return nil, err
	}
	return n, nil
})

// DefaultFactory returns the factory currently installed as the process-wide
// default.
func DefaultFactory() Factory {
	return defaultFactory.Current()
}

// UseFactory installs f as the default namer factory and returns a restore
// function that reinstates the previous default. Defer the restore.
func UseFactory(f Factory) (restore func()) {
	return defaultFactory.Push(f)
}

var subdirectory = registry.NewStack[string]("")

// Subdirectory returns the directory, relative to the test source file, that
// approved and received files are placed in. Empty means alongside the test.
func Subdirectory() string {
	return subdirectory.Current()
}

// UseSubdirectory installs dir as the default artifact subdirectory and
// returns a restore function reinstating the previous value.
func UseSubdirectory(dir string) (restore func()) {
	return subdirectory.Push(dir)
}
