package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
	dimColor     = color.New(color.FgHiBlack)
)

const rule = 60

func printTitle(w io.Writer, format string, a ...any) {
	titleColor.Fprintf(w, format+"\n", a...)
	dimColor.Fprintln(w, strings.Repeat("-", rule))
}

func printSuccess(w io.Writer, format string, a ...any) {
	successColor.Fprintf(w, "  ✓ "+format+"\n", a...)
}

func printFailure(w io.Writer, format string, a ...any) {
	errorColor.Fprintf(w, "  ✗ "+format+"\n", a...)
}

func printRule(w io.Writer) {
	dimColor.Fprintln(w, strings.Repeat("-", rule))
}

func printLine(w io.Writer, format string, a ...any) {
	fmt.Fprintf(w, format+"\n", a...)
}
