package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"golang.org/x/term"

	"library-admin/api"
	"library-admin/config"
	"library-admin/library"
)

// app carries everything a command handler needs: the API client, the
// resolved config, and the in-memory entity collections each page fetches
// wholesale and patches after successful mutations.
type app struct {
	client *api.Client
	cfg    *config.Config
	sc     *bufio.Scanner
	out    io.Writer

	books    []library.Book
	query    library.BookQuery
	readers  []library.Reader
	lendings []library.Lending
	users    []library.User
}

// scanner lazily wraps stdin; tests substitute their own.
func (a *app) scanner() *bufio.Scanner {
	if a.sc == nil {
		a.sc = bufio.NewScanner(os.Stdin)
	}
	return a.sc
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// heading styles a section header. The dark theme gets the terminal
// equivalent of the web client's teal-on-slate look.
func (a *app) heading(s string) string {
	if a.cfg != nil && a.cfg.Theme == config.ThemeDark {
		return "\033[1;36m" + s + "\033[0m"
	}
	return s
}

// prompt reads one trimmed line after printing a label.
func (a *app) prompt(label string) (string, bool) {
	a.printf("%s: ", label)
	if !a.scanner().Scan() {
		return "", false
	}
	return strings.TrimSpace(a.scanner().Text()), true
}

// promptDefault reads a line, keeping def when the operator just hits
// enter. Used by edit forms pre-filled with the current record.
func (a *app) promptDefault(label, def string) (string, bool) {
	a.printf("%s [%s]: ", label, def)
	if !a.scanner().Scan() {
		return "", false
	}
	v := strings.TrimSpace(a.scanner().Text())
	if v == "" {
		return def, true
	}
	return v, true
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

func parseInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// setString, setInt and setFloat build form-field setters. The numeric ones
// reject unparsable input so the form can re-prompt instead of storing 0.
func setString(dst *string) func(string) error {
	return func(v string) error {
		*dst = v
		return nil
	}
}

func setInt(dst *int) func(string) error {
	return func(v string) error {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("enter a whole number")
		}
		*dst = n
		return nil
	}
}

func setFloat(dst *float64) func(string) error {
	return func(v string) error {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("enter a number")
		}
		*dst = f
		return nil
	}
}

// readPassword reads a password with echo disabled.
func readPassword(label string) (string, error) {
	fmt.Printf("%s: ", label)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", err
	}
	fmt.Println()
	return strings.TrimSpace(string(raw)), nil
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
