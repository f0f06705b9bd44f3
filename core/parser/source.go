package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// File access errors. They are wrapped in a *FileError carrying the path.
var (
	ErrNotFound    = errors.New("report file not found")
	ErrIsDirectory = errors.New("report path is a directory")
	ErrPermission  = errors.New("report file permission denied")
	ErrUnreadable  = errors.New("report file unreadable")

	// ErrNoSections means the input holds no section marker at all.
	ErrNoSections = errors.New("no report sections found")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// FileError describes a failure to read a report file.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// readFileText loads a report file and decodes it to a string.
func readFileText(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", &FileError{Path: path, Err: classifyFSError(err)}
	}
	if info.IsDir() {
		return "", &FileError{Path: path, Err: ErrIsDirectory}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &FileError{Path: path, Err: classifyFSError(err)}
	}
	text, err := decodeText(data)
	if err != nil {
		return "", &FileError{Path: path, Err: err}
	}
	return text, nil
}

// readText drains r and decodes the bytes.
func readText(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	return decodeText(data)
}

// decodeText tries UTF-8 first and falls back to ISO-8859-1, which maps every byte.
func decodeText(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data), nil
	}
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	return string(out), nil
}

func classifyFSError(err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ErrNotFound
	case errors.Is(err, fs.ErrPermission):
		return ErrPermission
	default:
		return fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
}
