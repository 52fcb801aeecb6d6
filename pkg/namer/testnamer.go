package namer

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spaolacci/murmur3"
)

// TestNamer derives paths from the ambient Go test: the identity is the test
// name (including subtest segments), anchored in the directory of the test
// source file so baselines live next to the code that owns them.
//
// TestNamer is a value; the With* methods return modified copies.
type TestNamer struct {
	name   string
	dir    string
	subdir string
}

// ForTest builds a TestNamer for t by locating the calling _test.go frame.
// It fails with ErrNoTestContext when no test frame is on the stack, for
// example when called from a helper goroutine.
func ForTest(t TestingT) (TestNamer, error) {
	t.Helper()
	dir, ok := callerTestDir()
	if !ok {
		return TestNamer{}, fmt.Errorf("%w (test %s)", ErrNoTestContext, t.Name())
	}
	return TestNamer{
		name:   sanitize(t.Name()),
		dir:    dir,
		subdir: Subdirectory(),
	}, nil
}

// WithSubdirectory relocates artifact files into dir, relative to the test
// source directory, overriding the process-wide default.
func (n TestNamer) WithSubdirectory(dir string) TestNamer {
	n.subdir = dir
	return n
}

// WithQualifier appends qualifiers to the identity, keeping data-driven test
// cases from colliding on one baseline. Qualifiers too long or hostile for a
// file name are shortened to a fingerprint.
func (n TestNamer) WithQualifier(parts ...string) TestNamer {
	for _, p := range parts {
		n.name += "." + qualifierSegment(p)
	}
	return n
}

func (n TestNamer) Name() string { return n.name }

// ApprovedFile implements Namer.
func (n TestNamer) ApprovedFile(extension string) string {
	return n.path("approved", extension)
}

// ReceivedFile implements Namer.
func (n TestNamer) ReceivedFile(extension string) string {
	return n.path("received", extension)
}

func (n TestNamer) path(mode, extension string) string {
	base := n.name + "." + mode + dotted(extension)
	switch {
	case n.subdir == "":
		return filepath.Join(n.dir, base)
	case filepath.IsAbs(n.subdir):
		return filepath.Join(n.subdir, base)
	default:
		return filepath.Join(n.dir, n.subdir, base)
	}
}

func dotted(extension string) string {
	if extension == "" || strings.HasPrefix(extension, ".") {
		return extension
	}
	return "." + extension
}

// sanitize maps characters that are unsafe in file names (subtest slashes,
// Windows-reserved punctuation, whitespace) to underscores.
func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ', '\t':
			return '_'
		}
		return r
	}, name)
}

// maxQualifierLen bounds one qualifier segment; parameterized tests often
// feed whole payload strings in as qualifiers.
const maxQualifierLen = 64

func qualifierSegment(p string) string {
	s := sanitize(p)
	if len(s) <= maxQualifierLen {
		return s
	}
	sum := murmur3.Sum64([]byte(p))
	return fmt.Sprintf("%s_%016x", s[:24], sum)
}

// callerTestDir walks the call stack outward until it finds a _test.go
// frame and returns that file's directory.
func callerTestDir() (string, bool) {
	pc := make([]uintptr, 64)
	n := runtime.Callers(2, pc)
	frames := runtime.CallersFrames(pc[:n])
	for {
		frame, more := frames.Next()
		if strings.HasSuffix(frame.File, "_test.go") {
			return filepath.Dir(frame.File), true
		}
		if !more {
			return "", false
		}
	}
}
