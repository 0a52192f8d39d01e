// Package dashboard describes the remote collections tabler knows how to
// present: where they live, how they are refreshed and how each column is
// formatted.
package dashboard

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"tableflip.dev/tabler/pkg/filter"
)

// Kind selects the formatting rule for a column.
type Kind string

const (
	// Text renders the value as is.
	Text Kind = "text"
	// Number renders integers and decimals as sent, right aligned.
	Number Kind = "number"
	// Fixed renders a decimal with Column.Precision digits.
	Fixed Kind = "fixed"
	// Percent appends a percent sign and tones the cell by sign.
	Percent Kind = "percent"
	// Money renders thousands separators with two decimals.
	Money Kind = "money"
)

// Column maps one record field to one rendered cell.
type Column struct {
	Header    string `json:"header"`
	Field     string `json:"field"`
	Kind      Kind   `json:"kind"`
	Precision int    `json:"precision,omitempty"`
}

// Endpoint is a backend call relative to the dashboard base path.
type Endpoint struct {
	Method string `json:"method"`
	Path   string `json:"path"`
	// Ranged endpoints receive the year range as query parameters.
	Ranged bool `json:"ranged"`
}

// Export is a downloadable file format.
type Export struct {
	Format string `json:"format"`
	Ranged bool   `json:"ranged"`
}

// Params names the query parameters carrying the year range. An empty To
// means the backend only accepts a single year.
type Params struct {
	From string `json:"from"`
	To   string `json:"to,omitempty"`
}

// Dashboard is a single remote table.
type Dashboard struct {
	Name    string    `json:"name"`
	Title   string    `json:"title"`
	Aliases []string  `json:"aliases,omitempty"`
	Base    string    `json:"base"`
	List    Endpoint  `json:"list"`
	Trigger *Endpoint `json:"trigger,omitempty"`
	Exports []Export  `json:"exports,omitempty"`
	Params  Params    `json:"params"`
	Columns []Column  `json:"columns"`
	// Placeholder is shown for absent or null values.
	Placeholder  string `json:"placeholder"`
	EmptyMessage string `json:"emptyMessage"`
}

var rangeParams = Params{From: "yearFrom", To: "yearTo"}

// Movies is the scraped movie catalog.
var Movies = Dashboard{
	Name:    "movies",
	Title:   "Movies",
	Aliases: []string{"movie", "films", "film"},
	Base:    "/api/movies",
	List:    Endpoint{Method: http.MethodGet, Path: "load", Ranged: true},
	Trigger: &Endpoint{Method: http.MethodPost, Path: "scrape", Ranged: true},
	Exports: []Export{{Format: "csv", Ranged: true}, {Format: "xlsx", Ranged: true}},
	Params:  rangeParams,
	Columns: []Column{
		{Header: "Title", Field: "title", Kind: Text},
		{Header: "Year", Field: "releaseYear", Kind: Number},
		{Header: "Genres", Field: "genres", Kind: Text},
		{Header: "ID", Field: "id", Kind: Text},
	},
	EmptyMessage: "No movies found in the selected range, or none have been loaded yet.",
}

// Crypto is the CoinLore ticker snapshot.
var Crypto = Dashboard{
	Name:    "crypto",
	Title:   "Cryptocurrencies",
	Aliases: []string{"coins", "coin", "tickers"},
	Base:    "/api/crypto",
	List:    Endpoint{Method: http.MethodGet, Path: "all"},
	Trigger: &Endpoint{Method: http.MethodGet, Path: "fetch"},
	Exports: []Export{{Format: "excel"}, {Format: "csv"}},
	Params:  rangeParams,
	Columns: []Column{
		{Header: "ID", Field: "id", Kind: Text},
		{Header: "Symbol", Field: "symbol", Kind: Text},
		{Header: "Name", Field: "name", Kind: Text},
		{Header: "Rank", Field: "rank", Kind: Number},
		{Header: "Price USD", Field: "price_usd", Kind: Fixed, Precision: 4},
		{Header: "24h %", Field: "percent_change_24h", Kind: Percent},
		{Header: "Market Cap USD", Field: "market_cap_usd", Kind: Money},
		{Header: "Volume 24h", Field: "volume24", Kind: Money},
	},
	EmptyMessage: "No data to display. Run a refresh to pull every cryptocurrency.",
}

// Listings is the scraped marketplace listing table.
var Listings = Dashboard{
	Name:    "listings",
	Title:   "Listings",
	Aliases: []string{"listing", "ads"},
	Base:    "/api/listings",
	List:    Endpoint{Method: http.MethodGet, Path: ""},
	Trigger: &Endpoint{Method: http.MethodGet, Path: "scrape"},
	Params:  rangeParams,
	Columns: []Column{
		{Header: "Title", Field: "title", Kind: Text},
		{Header: "Price", Field: "price", Kind: Text},
		{Header: "URL", Field: "url", Kind: Text},
		{Header: "ID", Field: "id", Kind: Text},
	},
	EmptyMessage: "No listings stored yet. Run a refresh to scrape them.",
}

// Banks is the central bank indicator table for a single year.
var Banks = Dashboard{
	Name:    "banks",
	Title:   "Banks",
	Aliases: []string{"bank"},
	Base:    "/api/listings",
	List:    Endpoint{Method: http.MethodGet, Path: "load-from-api", Ranged: true},
	Params:  Params{From: "year"},
	Columns: []Column{
		{Header: "Reg. No.", Field: "registration_number", Kind: Text},
		{Header: "Name", Field: "name", Kind: Text},
		{Header: "Category", Field: "categoryCode", Kind: Text},
		{Header: "Unit", Field: "unit", Kind: Text},
		{Header: "Date", Field: "date", Kind: Text},
		{Header: "Value", Field: "value", Kind: Money},
	},
	Placeholder:  "-",
	EmptyMessage: "No bank figures were returned for that year.",
}

// Defaults lists every known dashboard in display order.
func Defaults() []Dashboard {
	return []Dashboard{Movies, Crypto, Listings, Banks}
}

// ForName finds a dashboard by name or alias.
func ForName(name string) (Dashboard, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, d := range Defaults() {
		if d.Name == n {
			return d, nil
		}
		for _, a := range d.Aliases {
			if a == n {
				return d, nil
			}
		}
	}
	return Dashboard{}, fmt.Errorf("unknown dashboard %q", name)
}

// Names returns the primary names of all dashboards.
func Names() []string {
	all := Defaults()
	names := make([]string, 0, len(all))
	for _, d := range all {
		names = append(names, d.Name)
	}
	return names
}

// Ranged reports whether any request of the dashboard uses the year range.
func (d Dashboard) Ranged() bool {
	if d.List.Ranged || (d.Trigger != nil && d.Trigger.Ranged) {
		return true
	}
	for _, e := range d.Exports {
		if e.Ranged {
			return true
		}
	}
	return false
}

// Export looks up an export format.
func (d Dashboard) Export(format string) (Export, error) {
	f := strings.ToLower(strings.TrimSpace(format))
	for _, e := range d.Exports {
		if e.Format == f {
			return e, nil
		}
	}
	if len(d.Exports) == 0 {
		return Export{}, fmt.Errorf("%s does not support exports", d.Name)
	}
	return Export{}, fmt.Errorf("%s does not export %q, try one of %s", d.Name, format, strings.Join(d.Formats(), ", "))
}

// Formats lists the export formats.
func (d Dashboard) Formats() []string {
	out := make([]string, 0, len(d.Exports))
	for _, e := range d.Exports {
		out = append(out, e.Format)
	}
	return out
}

// Path joins an endpoint path onto the dashboard base.
func (d Dashboard) Path(p string) string {
	p = strings.Trim(p, "/")
	if p == "" {
		return d.Base
	}
	return strings.TrimRight(d.Base, "/") + "/" + p
}

// ExportPath is the path of the export endpoint for format.
func (d Dashboard) ExportPath(format string) string {
	return d.Path("export/" + format)
}

// Query encodes r using the dashboard's parameter names.
func (d Dashboard) Query(r filter.Range) map[string]string {
	q := map[string]string{d.Params.From: strconv.Itoa(r.From)}
	if d.Params.To != "" {
		q[d.Params.To] = strconv.Itoa(r.To)
	}
	return q
}
