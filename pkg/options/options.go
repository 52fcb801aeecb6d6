// Package options carries per-verification configuration. Options is an
// immutable value: every mutator returns a derived copy, so an Options passed
// between concurrently running tests can never leak one test's settings into
// another.
package options

import (
	"github.com/approvalkit/approvalkit/pkg/namer"
	"github.com/approvalkit/approvalkit/pkg/reporter"
	"github.com/approvalkit/approvalkit/pkg/scrub"
)

// DefaultExtension is used when ForFile was never called.
const DefaultExtension = ".txt"

// Options bundles the four per-call configuration axes: scrubber, reporter,
// namer override, and file extension. The zero value is usable and means
// "all defaults".
type Options struct {
	scrubber  scrub.Scrubber
	reporter  reporter.Reporter
	namer     namer.Namer
	extension string
}

// New returns the default Options.
func New() Options { return Options{} }

// WithScrubber returns a copy using s for normalization. Chaining composes:
// the new scrubber runs after any previously configured one.
func (o Options) WithScrubber(s scrub.Scrubber) Options {
	if o.scrubber != nil {
		s = scrub.All(o.scrubber, s)
	}
	o.scrubber = s
	return o
}

// WithReporter returns a copy whose mismatches go to r instead of the
// process default. Front-loaded reporters still run first.
func (o Options) WithReporter(r reporter.Reporter) Options {
	o.reporter = r
	return o
}

// WithNamer returns a copy using n to derive artifact paths.
func (o Options) WithNamer(n namer.Namer) Options {
	o.namer = n
	return o
}

// ForFile returns a copy persisting and comparing under the given extension.
func (o Options) ForFile(extension string) Options {
	o.extension = extension
	return o
}

// Scrub applies the configured scrubber; with none configured it returns s
// unchanged.
func (o Options) Scrub(s string) string {
	if o.scrubber == nil {
		return s
	}
	return o.scrubber(s)
}

// Scrubber returns the configured scrubber, possibly nil.
func (o Options) Scrubber() scrub.Scrubber { return o.scrubber }

// Reporter returns the configured reporter override, possibly nil.
func (o Options) Reporter() reporter.Reporter { return o.reporter }

// Namer returns the configured namer override, possibly nil.
func (o Options) Namer() namer.Namer { return o.namer }

// Extension returns the configured extension, or DefaultExtension.
func (o Options) Extension() string {
	if o.extension == "" {
		return DefaultExtension
	}
	return o.extension
}
