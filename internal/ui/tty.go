package ui

import (
	"io"
	"os"
)

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

// IsInteractive reports whether in and out are both terminals.
func IsInteractive(in io.Reader, out io.Writer) bool {
	f, ok := in.(*os.File)
	if !ok {
		return false
	}
	return IsTTY(f) && IsTTY(out)
}
