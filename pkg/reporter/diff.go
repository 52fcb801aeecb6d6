package reporter

import (
	"log/slog"
	"os/exec"

	"github.com/approvalkit/approvalkit/pkg/ui"
)

// GenericDiffTool launches an installed diff program with the received and
// approved paths. Availability requires the program on PATH and, for
// windowed tools, a graphical session; headless CI machines skip them.
type GenericDiffTool struct {
	// Program is the executable name looked up on PATH.
	Program string
	// Args yields the argument list for a received/approved pair.
	Args func(received, approved string) []string
	// Windowed marks tools that need a display to be useful.
	Windowed bool
}

// DiffTool builds a windowed GenericDiffTool with the conventional
// "program received approved" invocation.
func DiffTool(program string) GenericDiffTool {
	return GenericDiffTool{
		Program:  program,
		Args:     func(r, a string) []string { return []string{r, a} },
		Windowed: true,
	}
}

// IsWorkingInThisEnvironment implements Reporter.
func (d GenericDiffTool) IsWorkingInThisEnvironment() bool {
	if d.Windowed && !ui.GUISession() {
		return false
	}
	_, err := exec.LookPath(d.Program)
	return err == nil
}

// Report implements Reporter. The tool is started and left running; a start
// failure is logged, not propagated, because the test failure message
// already carries both paths.
func (d GenericDiffTool) Report(received, approved string) {
	cmd := exec.Command(d.Program, d.Args(received, approved)...)
	if err := cmd.Start(); err != nil {
		slog.Warn("diff tool failed to start",
			slog.String("program", d.Program),
			slog.String("error", err.Error()))
		return
	}
	// Detach: the process outlives the test run.
	go func() { _ = cmd.Wait() }()
}

// VSCode opens the two files in Visual Studio Code's diff view.
func VSCode() Reporter {
	return GenericDiffTool{
		Program:  "code",
		Args:     func(r, a string) []string { return []string{"--diff", r, a} },
		Windowed: true,
	}
}

// Meld launches the meld merge tool.
func Meld() Reporter { return DiffTool("meld") }

// KDiff3 launches kdiff3.
func KDiff3() Reporter { return DiffTool("kdiff3") }

// OpenDiff launches Apple's FileMerge via opendiff.
func OpenDiff() Reporter { return DiffTool("opendiff") }

// WinMerge launches WinMerge.
func WinMerge() Reporter { return DiffTool("WinMergeU") }

// BeyondCompare launches Beyond Compare.
func BeyondCompare() Reporter { return DiffTool("BCompare") }

// KnownDiffTools returns the built-in launchers in preference order.
func KnownDiffTools() []Reporter {
	return []Reporter{VSCode(), BeyondCompare(), Meld(), KDiff3(), OpenDiff(), WinMerge()}
}

// ByName resolves a configured reporter name to a built-in reporter.
// Unknown names resolve to a windowed GenericDiffTool of that program, so
// project config can name any installed tool.
func ByName(name string) Reporter {
	switch name {
	case "vscode", "code":
		return VSCode()
	case "meld":
		return Meld()
	case "kdiff3":
		return KDiff3()
	case "opendiff":
		return OpenDiff()
	case "winmerge":
		return WinMerge()
	case "beyondcompare", "bcompare":
		return BeyondCompare()
	case "console":
		return Console()
	case "quiet", "none":
		return Quiet{}
	default:
		return DiffTool(name)
	}
}
