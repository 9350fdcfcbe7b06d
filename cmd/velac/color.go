package main

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// diagColor returns the colour used for the diagnostic prefix.
// In auto mode colour is used only when w is a terminal.
func diagColor(w io.Writer, mode string) *color.Color {
	c := color.New(color.FgRed, color.Bold)
	if useColor(w, mode) {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

func useColor(w io.Writer, mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
