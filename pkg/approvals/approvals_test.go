package approvals

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/approvalkit/approvalkit/pkg/namer"
	"github.com/approvalkit/approvalkit/pkg/options"
	"github.com/approvalkit/approvalkit/pkg/reporter"
	"github.com/approvalkit/approvalkit/pkg/scrub"
)

// recorder satisfies T and captures failures instead of failing the real test.
type recorder struct {
	name   string
	errors []string
	fatals []string
}

func (r *recorder) Helper() {}

func (r *recorder) Name() string { return r.name }

func (r *recorder) Errorf(format string, args ...any) {
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func (r *recorder) Fatalf(format string, args ...any) {
	r.fatals = append(r.fatals, fmt.Sprintf(format, args...))
}

// quietOpts keeps mismatches away from diff tools during these tests.
func quietOpts() options.Options {
	return options.New().WithReporter(reporter.Quiet{})
}

// inTempDir redirects artifact files for this test into a temp dir and
// returns that dir. Registers cleanup of the subdirectory override.
func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Cleanup(UseApprovalsSubdirectory(dir))
	return dir
}

func TestVerify_FirstRunFailsAndLeavesReceived(t *testing.T) {
	dir := inTempDir(t)
	rec := &recorder{name: "TestGreeting"}

	Verify(rec, "hello", quietOpts())

	require.Len(t, rec.errors, 1)
	require.Empty(t, rec.fatals)
	assert.Contains(t, rec.errors[0], "TestGreeting.received.txt")
	assert.Contains(t, rec.errors[0], "TestGreeting.approved.txt")

	data, err := os.ReadFile(filepath.Join(dir, "TestGreeting.received.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
	_, err = os.Stat(filepath.Join(dir, "TestGreeting.approved.txt"))
	assert.True(t, os.IsNotExist(err), "approved file must not be created")
}

func TestVerify_MatchPassesAndCleansUp(t *testing.T) {
	dir := inTempDir(t)
	rec := &recorder{name: "TestGreeting"}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "TestGreeting.approved.txt"), []byte("hello"), 0o644))

	Verify(rec, "hello", quietOpts())

	assert.Empty(t, rec.errors)
	assert.Empty(t, rec.fatals)
	_, err := os.Stat(filepath.Join(dir, "TestGreeting.received.txt"))
	assert.True(t, os.IsNotExist(err), "received file must be removed on match")
}

func TestVerify_WithScrubber(t *testing.T) {
	dir := inTempDir(t)
	rec := &recorder{name: "TestLog"}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "TestLog.approved.txt"),
		[]byte("started at <timestamp>"), 0o644))

	Verify(rec, "started at 2026-08-26T09:15:00Z",
		quietOpts().WithScrubber(scrub.Timestamps()))

	assert.Empty(t, rec.errors)
	assert.Empty(t, rec.fatals)
}

func TestVerify_ForFileExtension(t *testing.T) {
	dir := inTempDir(t)
	rec := &recorder{name: "TestHTML"}

	Verify(rec, "<p>hi</p>", quietOpts().ForFile(".html"))

	require.Len(t, rec.errors, 1)
	_, err := os.Stat(filepath.Join(dir, "TestHTML.received.html"))
	assert.NoError(t, err)
}

func TestVerifyAll_Formatting(t *testing.T) {
	dir := inTempDir(t)
	rec := &recorder{name: "TestWords"}
	approved := "words\n\n\n[0] = alpha\n[1] = beta\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "TestWords.approved.txt"), []byte(approved), 0o644))

	VerifyAll(rec, "words", []string{"alpha", "beta"}, nil, quietOpts())

	assert.Empty(t, rec.errors, "formatted container must match the baseline")
	assert.Empty(t, rec.fatals)
}

func TestVerifyAll_NoHeader(t *testing.T) {
	dir := inTempDir(t)
	rec := &recorder{name: "TestNums"}

	VerifyAll(rec, "", []int{1, 2}, func(n int) string { return fmt.Sprintf("%03d", n) }, quietOpts())

	require.Len(t, rec.errors, 1)
	data, err := os.ReadFile(filepath.Join(dir, "TestNums.received.txt"))
	require.NoError(t, err)
	assert.Equal(t, "[0] = 001\n[1] = 002\n", string(data))
}

func TestVerifyErrorMessage(t *testing.T) {
	dir := inTempDir(t)
	rec := &recorder{name: "TestErr"}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "TestErr.approved.txt"),
		[]byte("boom: not found"), 0o644))

	VerifyErrorMessage(rec, func() error {
		return fmt.Errorf("boom: %w", errors.New("not found"))
	}, quietOpts())

	assert.Empty(t, rec.errors)
}

func TestVerifyErrorMessage_NilError(t *testing.T) {
	dir := inTempDir(t)
	rec := &recorder{name: "TestNilErr"}

	VerifyErrorMessage(rec, func() error { return nil }, quietOpts())

	require.Len(t, rec.errors, 1)
	data, err := os.ReadFile(filepath.Join(dir, "TestNilErr.received.txt"))
	require.NoError(t, err)
	assert.Equal(t, "*** no error occurred ***", string(data))
}

func TestVerifyJSON_CanonicalizesFormatting(t *testing.T) {
	dir := inTempDir(t)
	rec := &recorder{name: "TestJSON"}
	approved := "{\n  \"a\": [\n    1,\n    2\n  ],\n  \"b\": 1\n}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "TestJSON.approved.json"), []byte(approved), 0o644))

	// Key order and whitespace in the producer are irrelevant.
	VerifyJSON(rec, []byte(`{"b":1,  "a":[1,2]}`), quietOpts())

	assert.Empty(t, rec.errors)
	assert.Empty(t, rec.fatals)
}

func TestVerifyJSON_InvalidInputIsFatal(t *testing.T) {
	inTempDir(t)
	rec := &recorder{name: "TestBadJSON"}

	VerifyJSON(rec, []byte(`{"unclosed`), quietOpts())

	assert.Empty(t, rec.errors)
	require.Len(t, rec.fatals, 1)
	assert.Contains(t, rec.fatals[0], "invalid JSON")
}

func TestVerifyExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.html")
	require.NoError(t, os.WriteFile(path, []byte("<p>v2</p>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "report.approved.html"), []byte("<p>v1</p>"), 0o644))
	rec := &recorder{name: "TestReport"}

	VerifyExistingFile(rec, path, quietOpts())

	require.Len(t, rec.errors, 1)
	// The user's file is the received artifact and survives the failure.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<p>v2</p>", string(data))
}

func TestVerifyExistingFile_MatchKeepsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.html")
	require.NoError(t, os.WriteFile(path, []byte("<p>ok</p>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "report.approved.html"), []byte("<p>ok</p>"), 0o644))
	rec := &recorder{name: "TestReport"}

	VerifyExistingFile(rec, path, quietOpts())

	assert.Empty(t, rec.errors)
	_, err := os.Stat(path)
	assert.NoError(t, err, "existing file must never be cleaned up")
}

func TestUseAsDefaultNamer(t *testing.T) {
	dir := t.TempDir()
	defer UseAsDefaultNamer(func(t namer.TestingT) (namer.Namer, error) {
		n, err := namer.ForTest(t)
		if err != nil {
			return nil, err
		}
		return n.WithSubdirectory(dir), nil
	})()
	rec := &recorder{name: "TestCustom"}

	Verify(rec, "x", quietOpts())

	require.Len(t, rec.errors, 1)
	_, err := os.Stat(filepath.Join(dir, "TestCustom.received.txt"))
	assert.NoError(t, err)
}

func TestFrontLoadedReporterFiresOnMismatch(t *testing.T) {
	inTempDir(t)
	front := &countingReporter{}
	defer UseAsFrontLoadedReporter(front)()
	rec := &recorder{name: "TestFront"}

	Verify(rec, "new content")

	require.Len(t, rec.errors, 1)
	assert.Equal(t, 1, front.fired, "front-loaded reporter must fire exactly once")
}

func TestNestedReporterOverridesRestoreInOrder(t *testing.T) {
	r1 := &countingReporter{}
	r2 := &countingReporter{}
	original := reporter.Default()

	restore1 := UseAsDefaultReporter(r1)
	restore2 := UseAsDefaultReporter(r2)
	assert.Equal(t, reporter.Reporter(r2), reporter.Default())
	restore2()
	assert.Equal(t, reporter.Reporter(r1), reporter.Default())
	restore1()
	assert.IsType(t, original, reporter.Default())
}

type countingReporter struct{ fired int }

func (c *countingReporter) Report(string, string) { c.fired++ }

func (c *countingReporter) IsWorkingInThisEnvironment() bool { return true }

func TestVerify_TwiceInARowStaysClean(t *testing.T) {
	dir := inTempDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "TestTwice.approved.txt"), []byte("stable"), 0o644))

	for i := 0; i < 2; i++ {
		rec := &recorder{name: "TestTwice"}
		Verify(rec, "stable", quietOpts())
		require.Empty(t, rec.errors, "run %d", i)
	}
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"TestTwice.approved.txt"}, names,
		"no received file may persist after repeated passing runs")
}

func TestVerify_MismatchMessageNamesExtension(t *testing.T) {
	inTempDir(t)
	rec := &recorder{name: "TestExt"}

	Verify(rec, "x", quietOpts().ForFile(".json"))

	require.Len(t, rec.errors, 1)
	assert.True(t, strings.Contains(rec.errors[0], ".json"), "failure message should name the extension: %s", rec.errors[0])
}
