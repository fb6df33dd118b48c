package main

import (
	"io"
	"os"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"
)

// clearSequence homes the cursor and erases the screen, in that order, so
// the next frame paints from the top-left.
func clearSequence() string {
	return ansi.CursorHomePosition + ansi.EraseEntireScreen
}

// clearScreen emits the clear sequence when w is an interactive terminal.
// Redirected output keeps every frame, which makes watch-mode logs usable.
func clearScreen(w io.Writer) {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return
	}
	io.WriteString(w, clearSequence())
}
