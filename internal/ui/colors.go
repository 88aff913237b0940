// Package ui provides terminal output helpers for nala.
package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

var (
	// Message colors.
	Success = color.New(color.FgGreen, color.Bold)
	Error   = color.New(color.FgRed, color.Bold)
	Warning = color.New(color.FgYellow, color.Bold)
	Info    = color.New(color.FgCyan)
	Header  = color.New(color.FgMagenta, color.Bold)
	Muted   = color.New(color.FgHiBlack)

	// Element colors.
	PackageName    = color.New(color.FgWhite, color.Bold)
	PackageVersion = color.New(color.FgGreen)
	RemoveColor    = color.New(color.FgRed)
	UpgradeColor   = color.New(color.FgBlue)
	Installed      = color.New(color.FgGreen)
)

// UseColors reports whether colored output is active.
var UseColors = true

// UseUnicode reports whether unicode symbols are active.
var UseUnicode = true

// Status symbols.
var (
	SymbolSuccess = "✓"
	SymbolError   = "✗"
	SymbolWarning = "!"
	SymbolInfo    = "→"
)

// Init applies the output configuration.
func Init(useColors, useUnicode bool) {
	UseColors = useColors
	UseUnicode = useUnicode

	if !useColors || os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}

	if !useUnicode {
		SymbolSuccess = "[OK]"
		SymbolError = "[ERROR]"
		SymbolWarning = "[WARN]"
		SymbolInfo = "->"
	}
}

// SuccessMsg prints a success message.
func SuccessMsg(format string, args ...interface{}) {
	Success.Printf(SymbolSuccess+" "+format+"\n", args...)
}

// ErrorMsg prints an error message to stderr.
func ErrorMsg(format string, args ...interface{}) {
	Error.Fprintf(os.Stderr, SymbolError+" "+format+"\n", args...)
}

// WarningMsg prints a warning message.
func WarningMsg(format string, args ...interface{}) {
	Warning.Printf(SymbolWarning+" "+format+"\n", args...)
}

// InfoMsg prints an informational message.
func InfoMsg(format string, args ...interface{}) {
	Info.Printf(SymbolInfo+" "+format+"\n", args...)
}

// HeaderMsg prints a section header.
func HeaderMsg(format string, args ...interface{}) {
	Header.Printf("\n"+format+"\n", args...)
}

// MutedMsg prints a dim message.
func MutedMsg(format string, args ...interface{}) {
	Muted.Printf(format+"\n", args...)
}

// Println prints a plain formatted line.
func Println(format string, args ...interface{}) {
	fmt.Printf(format+"\n", args...)
}

// Bold returns s in bold.
func Bold(s string) string {
	return color.New(color.Bold).Sprint(s)
}

// Green returns s in green.
func Green(s string) string {
	return color.GreenString(s)
}

// Red returns s in red.
func Red(s string) string {
	return color.RedString(s)
}

// Yellow returns s in yellow.
func Yellow(s string) string {
	return color.YellowString(s)
}

// Cyan returns s in cyan.
func Cyan(s string) string {
	return color.CyanString(s)
}

// Blue returns s in blue.
func Blue(s string) string {
	return color.BlueString(s)
}
