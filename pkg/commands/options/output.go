package options

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/tabler/pkg/app"
	"tableflip.dev/tabler/pkg/printers"
)

const (
	OutputPretty   = "pretty"
	OutputJSON     = "json"
	OutputHTML     = "html"
	OutputMarkdown = "markdown"
)

// OutputOptions
type OutputOptions struct {
	Output   string
	MaxWidth int
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.Flags().StringVarP(&po.Output, "output", "o", OutputPretty,
		"Output format. One of pretty, json, html or markdown.")
	cmd.Flags().IntVar(&po.MaxWidth, "max-width", 48,
		"Truncate pretty cells wider than this, 0 to disable.")
}

// AddListOutputArg registers -o for commands that only print plain listings.
func AddListOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.Flags().StringVarP(&po.Output, "output", "o", OutputPretty,
		"Output format. One of pretty or json.")
}

// ValidateList rejects formats other than pretty and json.
func (o *OutputOptions) ValidateList() error {
	switch strings.ToLower(o.Output) {
	case "", OutputPretty, OutputJSON:
		return nil
	}
	return fmt.Errorf("unknown output %q, expected pretty or json", o.Output)
}

// JSON reports whether errors and results should be printed as JSON.
func (o *OutputOptions) JSON() bool {
	return strings.EqualFold(o.Output, OutputJSON)
}

// Validate rejects unknown output formats.
func (o *OutputOptions) Validate() error {
	switch strings.ToLower(o.Output) {
	case "", OutputPretty, OutputJSON, OutputHTML, OutputMarkdown, "md":
		return nil
	}
	return fmt.Errorf("unknown output %q, expected pretty, json, html or markdown", o.Output)
}

// Views builds the presenter views for the selected output.
func (o *OutputOptions) Views() app.Views {
	pretty := &printers.PrettyPrint{MaxCellWidth: o.MaxWidth}
	switch strings.ToLower(o.Output) {
	case OutputJSON:
		j := &printers.JSON{}
		return app.Views{Surface: j, Notifier: j}
	case OutputHTML:
		return app.Views{Surface: &printers.Document{Format: printers.FormatHTML}, Notifier: pretty}
	case OutputMarkdown, "md":
		return app.Views{Surface: &printers.Document{Format: printers.FormatMarkdown}, Notifier: pretty}
	}
	return app.Views{Surface: pretty, Indicator: pretty, Notifier: pretty}
}

// ReportedError is an error that was already written to stdout in the
// selected output format. Callers should exit non-zero without printing it
// again.
type ReportedError struct {
	Err error
}

func (e *ReportedError) Error() string { return e.Err.Error() }
func (e *ReportedError) Unwrap() error { return e.Err }

// HandleError prints err as a JSON object for -o json and returns it wrapped
// in a ReportedError. Other outputs get err back unchanged.
func (o *OutputOptions) HandleError(err error) error {
	if o.JSON() && err != nil {
		return reportJSON(err)
	}
	return err
}

func reportJSON(err error) error {
	out := map[string]string{
		"error": err.Error(),
	}
	b, merr := json.Marshal(out)
	if merr != nil {
		return merr
	}
	_, _ = fmt.Fprintln(color.Output, string(b))
	return &ReportedError{Err: err}
}
