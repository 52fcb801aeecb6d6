// Package scrub normalizes non-deterministic content before comparison.
// A Scrubber is a pure text transform applied to the in-memory copy of both
// the received and the approved artifact; the files on disk are never
// rewritten. Every built-in scrubber is idempotent: applying it to its own
// output changes nothing, so a baseline approved from scrubbed output does
// not drift on re-approval.
package scrub

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/approvalkit/approvalkit/pkg/regexcache"
)

// Scrubber rewrites text into a stable form. A nil Scrubber means no
// scrubbing; use Noop when a non-nil value is required.
type Scrubber func(string) string

// Noop returns its input unchanged.
func Noop(s string) string { return s }

// All composes scrubbers by sequential application, first to last.
// Nil entries are skipped.
func All(scrubbers ...Scrubber) Scrubber {
	return func(s string) string {
		for _, sc := range scrubbers {
			if sc != nil {
				s = sc(s)
			}
		}
		return s
	}
}

// Regex builds a scrubber replacing every match of pattern with replacement.
// The replacement may reference capture groups ($1, ${name}). The caller is
// responsible for choosing a replacement the pattern cannot match again,
// which is what keeps the scrubber idempotent.
func Regex(pattern, replacement string) (Scrubber, error) {
	re, err := regexcache.Get(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid scrubber pattern %q: %w", pattern, err)
	}
	return func(s string) string {
		return re.ReplaceAllString(s, replacement)
	}, nil
}

// MustRegex is Regex for patterns known to be valid; it panics otherwise.
func MustRegex(pattern, replacement string) Scrubber {
	sc, err := Regex(pattern, replacement)
	if err != nil {
		panic(err)
	}
	return sc
}

// guidPattern matches candidate RFC 4122 textual GUIDs; uuid.Parse confirms
// each candidate so near-misses (bad variant digits are still accepted by
// Parse, random hex runs are not) pass through unscrubbed.
const guidPattern = `[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`

// GUIDs returns a scrubber replacing each distinct GUID with a numbered
// placeholder (guid_1, guid_2, ...) in order of first appearance. Repeated
// occurrences of the same GUID share one placeholder, preserving identity
// relationships in the output. Placeholders contain no hex groups, so the
// scrubber is idempotent.
func GUIDs() Scrubber {
	re := regexcache.MustGet(guidPattern)
	return func(s string) string {
		seen := make(map[string]string)
		return re.ReplaceAllStringFunc(s, func(match string) string {
			if _, err := uuid.Parse(match); err != nil {
				return match
			}
			key := strings.ToLower(match)
			if ph, ok := seen[key]; ok {
				return ph
			}
			ph := fmt.Sprintf("guid_%d", len(seen)+1)
			seen[key] = ph
			return ph
		})
	}
}

// timestampPattern covers ISO 8601 / RFC 3339 with optional fractional
// seconds and zone, plus the common "2006-01-02 15:04:05" log form.
const timestampPattern = `\d{4}-\d{2}-\d{2}[T ]\d{2}:\d{2}:\d{2}(?:\.\d+)?(?:Z|[+-]\d{2}:?\d{2})?`

// Timestamps returns a scrubber replacing ISO-style timestamps with the
// fixed placeholder <timestamp>.
func Timestamps() Scrubber {
	return MustRegex(timestampPattern, "<timestamp>")
}

// Digits returns a scrubber replacing every run of decimal digits with
// placeholder. The placeholder must not itself contain digits, otherwise the
// scrubber stops being idempotent; Digits panics on such a placeholder
// rather than silently producing drifting baselines.
func Digits(placeholder string) Scrubber {
	if strings.ContainsAny(placeholder, "0123456789") {
		panic(fmt.Sprintf("scrub: digit placeholder %q contains digits", placeholder))
	}
	re := regexcache.MustGet(`\d+`)
	return func(s string) string {
		return re.ReplaceAllString(s, placeholder)
	}
}

// NormalizeNewlines converts Windows and bare-CR line endings to \n so that
// baselines approved on one platform compare equal on another.
func NormalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// NormalizeUnicode decodes UTF-16 content (either byte order, BOM required)
// to UTF-8 and strips a leading UTF-8 BOM. Content that is already plain
// UTF-8 passes through unchanged, which makes the scrubber idempotent.
func NormalizeUnicode(s string) string {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.String(decoder, s)
	if err != nil {
		return s
	}
	return out
}
