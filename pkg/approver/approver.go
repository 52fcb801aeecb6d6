// Package approver implements the verification engine. It orchestrates a
// namer, a writer and a reporter into the pass/fail decision: persist the
// received artifact, compare it byte-for-byte against the approved baseline
// after scrubbing, and surface mismatches through the reporter chain.
//
// The comparison is deliberately naive. Deciding whether two blobs differ is
// the engine's job; showing how they differ belongs to external diff tools.
package approver

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/approvalkit/approvalkit/pkg/namer"
	"github.com/approvalkit/approvalkit/pkg/reporter"
	"github.com/approvalkit/approvalkit/pkg/scrub"
	"github.com/approvalkit/approvalkit/pkg/writer"
)

// ErrMismatch marks content mismatches, as opposed to I/O failures while
// handling the artifacts. Callers distinguish the two with errors.Is.
var ErrMismatch = errors.New("content mismatch")

// MismatchError carries both artifact paths and a short description of the
// first difference. It matches ErrMismatch under errors.Is.
type MismatchError struct {
	Received    string
	Approved    string
	Description string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("received %s does not match approved %s: %s",
		e.Received, e.Approved, e.Description)
}

func (e *MismatchError) Is(target error) bool { return target == ErrMismatch }

// Verify runs the decision pipeline. The received artifact is always
// persisted first, even when the content will match, so reporters and manual
// tooling have a concrete file to diff. A missing baseline counts as an
// empty one: the first run of a new test fails with the received file left
// in place, ready to be approved.
//
// Scrubbing applies only to the in-memory copies used for comparison; the
// files on disk keep their raw content.
func Verify(n namer.Namer, w writer.Writer, rep reporter.Reporter, sc scrub.Scrubber) error {
	ext := w.Extension()
	approvedPath := n.ApprovedFile(ext)
	receivedPath := n.ReceivedFile(ext)

	if err := w.WriteTo(receivedPath); err != nil {
		return fmt.Errorf("writing received artifact: %w", err)
	}

	received, err := os.ReadFile(receivedPath)
	if err != nil {
		return fmt.Errorf("reading received artifact: %w", err)
	}

	approved, err := os.ReadFile(approvedPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("reading approved baseline: %w", err)
	}

	receivedText := string(received)
	approvedText := string(approved)
	if sc != nil {
		receivedText = sc(receivedText)
		approvedText = sc(approvedText)
	}

	if receivedText == approvedText {
		// Best-effort cleanup: a stray received file from a crash in here
		// reappears identically on the next run and is harmless.
		_ = w.CleanUpReceived(receivedPath)
		return nil
	}

	if rep != nil {
		rep.Report(receivedPath, approvedPath)
	}
	return &MismatchError{
		Received:    receivedPath,
		Approved:    approvedPath,
		Description: firstDifference(approvedText, receivedText),
	}
}

// excerptLen bounds the content shown in a mismatch description; the full
// diff is the reporter's job.
const excerptLen = 40

// firstDifference describes where approved and received first diverge.
func firstDifference(approved, received string) string {
	if approved == "" {
		return fmt.Sprintf("no baseline; received %d bytes", len(received))
	}
	limit := len(approved)
	if len(received) < limit {
		limit = len(received)
	}
	i := 0
	for i < limit && approved[i] == received[i] {
		i++
	}
	line := 1 + strings.Count(approved[:i], "\n")
	return fmt.Sprintf("first difference at line %d (byte %d): approved %q, received %q",
		line, i, excerpt(approved, i), excerpt(received, i))
}

func excerpt(s string, from int) string {
	if from >= len(s) {
		return "<end of content>"
	}
	end := from + excerptLen
	if end > len(s) {
		return s[from:]
	}
	return s[from:end] + "..."
}
