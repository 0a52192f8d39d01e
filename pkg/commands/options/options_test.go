package options

import (
	"errors"
	"strings"
	"testing"

	"tableflip.dev/tabler/pkg/printers"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{name: "short", in: "one two", width: 80, want: "one two"},
		{name: "breaks", in: "aaa bbb ccc", width: 7, want: "aaa bbb\nccc"},
		{name: "long word", in: "abcdefghij k", width: 4, want: "abcdefghij\nk"},
		{name: "blank", in: "   ", width: 10, want: "   "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Wrap(tt.in, tt.width); got != tt.want {
				t.Fatalf("Wrap(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
			}
		})
	}
}

func TestOutputViews(t *testing.T) {
	o := &OutputOptions{Output: "json"}
	v := o.Views()
	if _, ok := v.Surface.(*printers.JSON); !ok {
		t.Fatalf("json output should use the JSON printer, got %T", v.Surface)
	}
	if v.Indicator != nil {
		t.Fatalf("json output should not print a loading line")
	}

	o = &OutputOptions{Output: "markdown"}
	if d, ok := o.Views().Surface.(*printers.Document); !ok || d.Format != printers.FormatMarkdown {
		t.Fatalf("unexpected markdown surface %T", o.Views().Surface)
	}

	o = &OutputOptions{Output: "pretty"}
	if _, ok := o.Views().Indicator.(*printers.PrettyPrint); !ok {
		t.Fatalf("pretty output should show loading")
	}

	if err := (&OutputOptions{Output: "yaml"}).Validate(); err == nil {
		t.Fatalf("expected unknown output error")
	}
}

func TestValidateList(t *testing.T) {
	for _, ok := range []string{"", "pretty", "JSON"} {
		if err := (&OutputOptions{Output: ok}).ValidateList(); err != nil {
			t.Fatalf("%q: %v", ok, err)
		}
	}
	for _, bad := range []string{"html", "markdown", "md"} {
		if err := (&OutputOptions{Output: bad}).ValidateList(); err == nil {
			t.Fatalf("%q should be rejected for listings", bad)
		}
	}
}

func TestHandleError(t *testing.T) {
	o := &OutputOptions{Output: "pretty"}
	if err := o.HandleError(errors.New("boom")); err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("pretty output should return the error, got %v", err)
	}
	o = &OutputOptions{Output: "json"}
	err := o.HandleError(errors.New("boom"))
	var reported *ReportedError
	if !errors.As(err, &reported) || reported.Error() != "boom" {
		t.Fatalf("json output should still fail with a reported error, got %v", err)
	}
	if err := o.HandleError(nil); err != nil {
		t.Fatalf("nil stays nil, got %v", err)
	}
}
