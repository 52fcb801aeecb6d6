package reporter

import (
	"fmt"
	"io"
	"os"

	"github.com/approvalkit/approvalkit/pkg/ui"
)

// ConsoleReporter prints the mismatch and the command that approves the
// received output. It is always available and therefore belongs at the end
// of a chain.
type ConsoleReporter struct {
	// Out defaults to stderr.
	Out io.Writer
}

// Console returns a ConsoleReporter writing to stderr.
func Console() ConsoleReporter { return ConsoleReporter{} }

// IsWorkingInThisEnvironment implements Reporter.
func (ConsoleReporter) IsWorkingInThisEnvironment() bool { return true }

// Report implements Reporter.
func (c ConsoleReporter) Report(received, approved string) {
	out := c.Out
	if out == nil {
		out = os.Stderr
	}
	fmt.Fprintf(out, "%s approval mismatch\n", ui.FailStyle.Render(ui.Icon("✗", "[x]")))
	fmt.Fprintf(out, "  received: %s\n", ui.PathStyle.Render(received))
	fmt.Fprintf(out, "  approved: %s\n", ui.PathStyle.Render(approved))
	fmt.Fprintf(out, "%s\n", ui.HintStyle.Render(
		fmt.Sprintf("to accept the received output: mv %q %q", received, approved)))
}
