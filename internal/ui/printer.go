package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	gray   = color.New(color.FgHiBlack)
)

// SetColorForcing overrides terminal detection. NO_COLOR always wins.
func SetColorForcing(force, disable bool) {
	switch {
	case disable || os.Getenv("NO_COLOR") != "":
		color.NoColor = true
	case force:
		color.NoColor = false
	}
}

func OK(w io.Writer, msg string)   { green.Fprintln(w, Current().SymDone+" "+msg) }
func Warn(w io.Writer, msg string) { yellow.Fprintln(w, "! "+msg) }
func Fail(w io.Writer, msg string) { red.Fprintln(w, "✖ "+msg) }

// Hint prints a dimmed follow-up line, e.g. after an error.
func Hint(w io.Writer, format string, a ...any) {
	gray.Fprintln(w, fmt.Sprintf(format, a...))
}
