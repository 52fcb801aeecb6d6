package namer

import (
	"path/filepath"
	"strings"
)

// ExistingFileNamer serves verification of a file that already exists on
// disk: the file itself is the received artifact, and the baseline lives
// next to it with ".approved" spliced in before the extension
// ("report.html" -> "report.approved.html").
type ExistingFileNamer struct {
	path string
}

// ForExistingFile builds a namer around path.
func ForExistingFile(path string) ExistingFileNamer {
	return ExistingFileNamer{path: path}
}

// ReceivedFile returns the existing file itself; the extension argument is
// ignored because the file dictates its own format.
func (n ExistingFileNamer) ReceivedFile(string) string { return n.path }

// ApprovedFile returns the sibling baseline path. The extension argument is
// ignored, as with ReceivedFile.
func (n ExistingFileNamer) ApprovedFile(string) string {
	ext := filepath.Ext(n.path)
	return strings.TrimSuffix(n.path, ext) + ".approved" + ext
}

func (n ExistingFileNamer) Name() string {
	base := filepath.Base(n.path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
