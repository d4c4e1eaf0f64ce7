// Package ui provides terminal output helpers for omnipkg.
package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

var (
	Success = color.New(color.FgGreen, color.Bold)
	Error   = color.New(color.FgRed, color.Bold)
	Warning = color.New(color.FgYellow, color.Bold)
	Info    = color.New(color.FgCyan)
	Header  = color.New(color.FgMagenta, color.Bold)
	Muted   = color.New(color.FgHiBlack)

	PackageName    = color.New(color.FgWhite, color.Bold)
	PackageVersion = color.New(color.FgGreen)
	ManagerID      = color.New(color.FgCyan)
)

// UseUnicode controls whether unicode symbols appear in output.
var UseUnicode = true

var (
	SymbolSuccess = "✓"
	SymbolError   = "✗"
	SymbolWarning = "!"
	SymbolInfo    = "→"
)

// Init applies the output configuration. NO_COLOR always wins.
func Init(useColors, useUnicode bool) {
	UseUnicode = useUnicode
	if !useColors || os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}
	if !useUnicode {
		SymbolSuccess = "+"
		SymbolError = "x"
		SymbolWarning = "!"
		SymbolInfo = ">"
	}
}

// SuccessMsg prints a success line.
func SuccessMsg(format string, args ...any) {
	fmt.Printf("%s %s\n", Success.Sprint(SymbolSuccess), fmt.Sprintf(format, args...))
}

// ErrorMsg prints an error line to stderr.
func ErrorMsg(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "%s %s\n", Error.Sprint(SymbolError), fmt.Sprintf(format, args...))
}

// WarningMsg prints a warning line.
func WarningMsg(format string, args ...any) {
	fmt.Printf("%s %s\n", Warning.Sprint(SymbolWarning), fmt.Sprintf(format, args...))
}

// InfoMsg prints an informational line.
func InfoMsg(format string, args ...any) {
	fmt.Printf("%s %s\n", Info.Sprint(SymbolInfo), fmt.Sprintf(format, args...))
}

// Bold returns the text in bold.
func Bold(text string) string {
	return color.New(color.Bold).Sprint(text)
}
