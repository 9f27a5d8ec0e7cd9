package dotstore

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
)

// formatBold returns the string formatted as bold using pterm
func formatBold(s string) string {
	// Only apply formatting if output is a terminal
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return s
	}
	return pterm.Bold.Sprint(s)
}

// successPrinter returns the pterm printer for success lines, with color
// suppressed when stdout is not a terminal
func successPrinter() *pterm.PrefixPrinter {
	p := pterm.Success
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		p = *pterm.Success.WithPrefix(pterm.Prefix{Text: "OK"})
		pterm.DisableColor()
	}
	return &p
}
