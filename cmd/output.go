package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/core/common/validation"
	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal/secret"
	"github.com/fatih/color"
	"github.com/shopspring/decimal"
)

var (
	success = color.New(color.FgGreen).PrintlnFunc()
	warning = color.New(color.FgYellow).PrintlnFunc()
)

// table prints rows aligned on tabs under an upper-cased header.
func table(w io.Writer, columns []string, rows [][]string) {
	if len(rows) == 0 {
		warning("Nothing to display.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.ToUpper(strings.Join(columns, "\t")))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	_ = tw.Flush()
}

func stdout() io.Writer {
	return os.Stdout
}

func id(v int64) string {
	return strconv.FormatInt(v, 10)
}

func optionalID(v *int64) string {
	if v == nil {
		return "-"
	}
	return id(*v)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func datetime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(validation.DateLayout)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// ask returns value, or prompts for it when empty.
func ask(p *secret.TerminalPrompter, label, value string) (string, error) {
	if value != "" {
		return value, nil
	}
	return p.PromptLine(label + ": ")
}

func askSecret(p *secret.TerminalPrompter, label, value string) (string, error) {
	if value != "" {
		return value, nil
	}
	return p.PromptSecret(label + ": ")
}

// askID is ask for identifiers; blank input yields zero, rejected later by validation.
func askID(p *secret.TerminalPrompter, label string, value int64) (int64, error) {
	if value != 0 {
		return value, nil
	}
	raw, err := p.PromptLine(label + ": ")
	if err != nil {
		return 0, err
	}
	return parseID(label, raw)
}

func parseID(field, raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, internal.NewValidationFieldError(field, fmt.Sprintf("%s must be a number", field), internal.ErrCodeValidationFailed)
	}
	return v, nil
}
