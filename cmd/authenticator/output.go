package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/jeremyhahn/go-authenticator/pkg/store"
)

var (
	nameStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	codeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	dimStyle   = lipgloss.NewStyle().Faint(true)
)

// printer writes results to stdout and failures to stderr, styled only when
// the stream is a terminal.
type printer struct {
	out       io.Writer
	err       io.Writer
	styleOut  bool
	styleErrs bool
}

func newPrinter(out, errw io.Writer) *printer {
	return &printer{
		out:       out,
		err:       errw,
		styleOut:  isTerminal(out),
		styleErrs: isTerminal(errw),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func render(styled bool, s lipgloss.Style, text string) string {
	if !styled {
		return text
	}
	return s.Render(text)
}

func (p *printer) plain(text string) {
	fmt.Fprintln(p.out, render(p.styleOut, codeStyle, text))
}

func (p *printer) code(name, code string) {
	fmt.Fprintf(p.out, "%s: %s\n",
		render(p.styleOut, nameStyle, name),
		render(p.styleOut, codeStyle, code))
}

func (p *printer) secret(name, secret string) {
	fmt.Fprintf(p.out, "%s secret: %s\n",
		render(p.styleOut, nameStyle, name),
		secret)
}

func (p *printer) done(msg string) {
	fmt.Fprintln(p.out, render(p.styleOut, dimStyle, msg))
}

// failure reports a per-account error without the account prefix the
// error already carries.
func (p *printer) failure(name string, err error) {
	var acctErr *store.AccountError
	if errors.As(err, &acctErr) {
		err = acctErr.Err
	}
	fmt.Fprintf(p.err, "%s: %s\n",
		render(p.styleErrs, nameStyle, name),
		render(p.styleErrs, errorStyle, err.Error()))
}

func (p *printer) report(err error) {
	fmt.Fprintln(p.err, render(p.styleErrs, errorStyle, "Error: "+err.Error()))
}
