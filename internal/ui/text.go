package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Formatter renders one kind of CLI value. Without color it falls back to
// prefix and suffix decorations.
type Formatter struct {
	color  *color.Color
	prefix string
	suffix string
}

// Sprint renders the arguments like fmt.Sprint.
func (f Formatter) Sprint(a ...interface{}) string {
	return f.render(fmt.Sprint(a...))
}

// Sprintf renders the arguments like fmt.Sprintf.
func (f Formatter) Sprintf(format string, a ...interface{}) string {
	return f.render(fmt.Sprintf(format, a...))
}

func (f Formatter) render(text string) string {
	if noColor() {
		return f.prefix + text + f.suffix
	}
	return f.color.Sprint(text)
}

// noColor honours NO_COLOR (https://no-color.org/) and fatih/color's own
// terminal detection.
func noColor() bool {
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return true
	}
	return color.NoColor
}

var (
	// Code is a command the operator can run. `Backticks` without color.
	Code = Formatter{color.New(color.FgYellow), "`", "`"}

	// Path is a keystore or output file.
	Path = Formatter{color.New(color.FgYellow), "", ""}

	// Flag is a command-line flag such as --force.
	Flag = Formatter{color.New(color.FgYellow), "", ""}

	// Success marks a decrypted keystore or a saved file.
	Success = Formatter{color.New(color.FgGreen), "", ""}

	// Error marks a keystore that could not be read or decrypted.
	Error = Formatter{color.New(color.FgRed), "", ""}

	// Warning marks output the operator should act on, like a key left on disk.
	Warning = Formatter{color.New(color.FgYellow), "", ""}

	// Info marks a next step.
	Info = Formatter{color.New(color.FgCyan), "", ""}

	// Highlight is a keystore parameter such as a KDF or cipher name.
	// 'Single quotes' without color.
	Highlight = Formatter{color.New(color.FgCyan), "'", "'"}

	// Value is something the operator may copy, so it is never decorated.
	Value = Formatter{color.New(color.FgCyan), "", ""}

	// Secret is a recovered private key. Never decorated.
	Secret = Formatter{color.New(color.FgMagenta, color.Bold), "", ""}

	// Muted is secondary detail. (Parentheses) without color.
	Muted = Formatter{color.New(color.FgHiBlack), "(", ")"}
)

// Address formats a stored keystore address with a 0x prefix.
func Address(addr string) string {
	return Value.Sprint("0x" + addr)
}
