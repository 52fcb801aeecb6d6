// Command approvalkit maintains approval-test baselines from the shell:
// list pending received files, promote them to approved, clean strays, or
// open a diff tool on a pending pair.
package main

import (
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/approvalkit/approvalkit/pkg/config"
	"github.com/approvalkit/approvalkit/pkg/reporter"
	"github.com/approvalkit/approvalkit/pkg/ui"
)

// Exit codes.
const (
	exitOK      = 0
	exitPending = 1
	exitUsage   = 2
)

const usage = `approvalkit - approval-test baseline maintenance

Usage:
  approvalkit ls       [dir]       list pending *.received.* files
  approvalkit approve  [dir|file]  promote received files to approved
  approvalkit clean    [dir]       delete stray received files
  approvalkit diff     <file>      open a diff tool on a received file

Flags:
  -all    approve: promote every pending file without confirmation
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(exitUsage)
	}
	cmd, args := os.Args[1], os.Args[2:]

	var code int
	switch cmd {
	case "ls", "list", "pending":
		code = cmdList(args)
	case "approve", "accept":
		code = cmdApprove(args)
	case "clean", "clear":
		code = cmdClean(args)
	case "diff", "view":
		code = cmdDiff(args)
	case "help", "-h", "--help":
		fmt.Fprint(os.Stderr, usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", cmd, usage)
		code = exitUsage
	}
	os.Exit(code)
}

// receivedMarker is the segment that distinguishes a pending artifact.
const receivedMarker = ".received."

// approvedPath derives the baseline path from a received path.
func approvedPath(received string) string {
	return strings.Replace(received, receivedMarker, ".approved.", 1)
}

// findReceived walks dir and returns every pending received file.
func findReceived(dir string) ([]string, error) {
	var pending []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.Contains(filepath.Base(path), receivedMarker) {
			pending = append(pending, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}
	return pending, nil
}

func dirArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}

func cmdList(args []string) int {
	flags := flag.NewFlagSet("ls", flag.ExitOnError)
	_ = flags.Parse(args)
	dir := dirArg(flags.Args())

	pending, err := findReceived(dir)
	if err != nil {
		slog.Error("listing received files", slog.String("error", err.Error()))
		return exitUsage
	}
	if len(pending) == 0 {
		fmt.Println(ui.PassStyle.Render(ui.Icon("✓", "[ok]") + " no pending approvals"))
		return exitOK
	}
	for _, p := range pending {
		marker := ui.Icon("●", "*")
		if _, err := os.Stat(approvedPath(p)); os.IsNotExist(err) {
			marker = ui.Icon("+", "+") // new baseline, nothing approved yet
		}
		fmt.Printf("%s %s\n", ui.FailStyle.Render(marker), ui.PathStyle.Render(p))
	}
	fmt.Println(ui.HintStyle.Render(fmt.Sprintf("%d pending; run 'approvalkit approve' to accept", len(pending))))
	return exitPending
}

func cmdApprove(args []string) int {
	flags := flag.NewFlagSet("approve", flag.ExitOnError)
	all := flags.Bool("all", false, "promote every pending file")
	_ = flags.Parse(args)
	target := dirArg(flags.Args())

	info, err := os.Stat(target)
	if err != nil {
		slog.Error("stat target", slog.String("target", target), slog.String("error", err.Error()))
		return exitUsage
	}

	var pending []string
	if info.IsDir() {
		pending, err = findReceived(target)
		if err != nil {
			slog.Error("listing received files", slog.String("error", err.Error()))
			return exitUsage
		}
		if len(pending) > 1 && !*all {
			fmt.Fprintf(os.Stderr, "%d pending files; pass -all or name one file\n", len(pending))
			return exitPending
		}
	} else {
		if !strings.Contains(filepath.Base(target), receivedMarker) {
			fmt.Fprintf(os.Stderr, "%s is not a received file\n", target)
			return exitUsage
		}
		pending = []string{target}
	}

	for _, p := range pending {
		dst := approvedPath(p)
		if err := os.Rename(p, dst); err != nil {
			slog.Error("approving", slog.String("file", p), slog.String("error", err.Error()))
			return exitUsage
		}
		fmt.Printf("%s %s\n", ui.PassStyle.Render(ui.Icon("✓", "[ok]")), dst)
	}
	return exitOK
}

func cmdClean(args []string) int {
	flags := flag.NewFlagSet("clean", flag.ExitOnError)
	_ = flags.Parse(args)
	dir := dirArg(flags.Args())

	pending, err := findReceived(dir)
	if err != nil {
		slog.Error("listing received files", slog.String("error", err.Error()))
		return exitUsage
	}
	for _, p := range pending {
		if err := os.Remove(p); err != nil {
			slog.Warn("removing", slog.String("file", p), slog.String("error", err.Error()))
			continue
		}
		fmt.Printf("removed %s\n", p)
	}
	return exitOK
}

func cmdDiff(args []string) int {
	flags := flag.NewFlagSet("diff", flag.ExitOnError)
	_ = flags.Parse(args)
	if flags.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "diff needs exactly one received file")
		return exitUsage
	}
	received := flags.Arg(0)

	// Honor a project .approvals.yml reporter preference when present.
	rep := reporter.Reporter(nil)
	if cfg, err := config.Find(filepath.Dir(received)); err == nil {
		rep = cfg.Reporter()
	}
	if rep == nil {
		rep = reporter.Default()
	}
	if !rep.IsWorkingInThisEnvironment() {
		fmt.Fprintln(os.Stderr, "no diff tool available in this environment")
		return exitPending
	}
	rep.Report(received, approvedPath(received))
	return exitOK
}
