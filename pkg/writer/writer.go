// Package writer persists received artifacts. A Writer knows how to put its
// content at a path, which extension the content should be stored and
// compared under, and whether the engine may remove the received file again
// after a successful match.
package writer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Writer is the artifact-persistence contract the engine depends on.
type Writer interface {
	// WriteTo persists the artifact at path, creating parent directories
	// as needed.
	WriteTo(path string) error
	// Extension returns the file extension (with leading dot) the artifact
	// should be stored under.
	Extension() string
	// CleanUpReceived removes the received file after a successful match.
	// Writers wrapping a pre-existing user file implement this as a no-op.
	CleanUpReceived(path string) error
}

// StringWriter persists in-memory text.
type StringWriter struct {
	content   string
	extension string
}

// String builds a writer for text content with the given extension.
func String(content, extension string) StringWriter {
	return StringWriter{content: content, extension: extension}
}

func (w StringWriter) Extension() string { return w.extension }

// WriteTo implements Writer.
func (w StringWriter) WriteTo(path string) error {
	return writeFile(path, []byte(w.content))
}

// CleanUpReceived implements Writer.
func (w StringWriter) CleanUpReceived(path string) error {
	return os.Remove(path)
}

// BytesWriter persists binary content, for image or archive approvals.
type BytesWriter struct {
	content   []byte
	extension string
}

// Bytes builds a writer for binary content with the given extension.
func Bytes(content []byte, extension string) BytesWriter {
	return BytesWriter{content: content, extension: extension}
}

func (w BytesWriter) Extension() string { return w.extension }

// WriteTo implements Writer.
func (w BytesWriter) WriteTo(path string) error {
	return writeFile(path, w.content)
}

// CleanUpReceived implements Writer.
func (w BytesWriter) CleanUpReceived(path string) error {
	return os.Remove(path)
}

// ExistingFileWriter treats a file already on disk as the received artifact.
// Writing is a copy (a no-op when source and destination coincide), and the
// user's file is never cleaned up.
type ExistingFileWriter struct {
	path string
}

// ExistingFile builds a writer around path.
func ExistingFile(path string) ExistingFileWriter {
	return ExistingFileWriter{path: path}
}

func (w ExistingFileWriter) Extension() string { return filepath.Ext(w.path) }

// WriteTo implements Writer.
func (w ExistingFileWriter) WriteTo(path string) error {
	if same, err := samePath(w.path, path); err != nil {
		return err
	} else if same {
		return nil
	}
	src, err := os.Open(w.path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", w.path, err)
	}
	defer src.Close()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	dst, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("copying %s to %s: %w", w.path, path, err)
	}
	return dst.Close()
}

// CleanUpReceived implements Writer. The existing file belongs to the user.
func (w ExistingFileWriter) CleanUpReceived(string) error { return nil }

func samePath(a, b string) (bool, error) {
	absA, err := filepath.Abs(a)
	if err != nil {
		return false, err
	}
	absB, err := filepath.Abs(b)
	if err != nil {
		return false, err
	}
	return absA == absB, nil
}

func writeFile(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
