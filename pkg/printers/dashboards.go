package printers

import (
	"fmt"
	"strings"

	"github.com/gosuri/uitable"

	"tableflip.dev/tabler/pkg/dashboard"
	"tableflip.dev/tabler/pkg/filter"
)

// Dashboards prints the known dashboards with the range each last used.
func (pp *PrettyPrint) Dashboards(all []dashboard.Dashboard, saved map[string]filter.Range) {
	pp.clearLoading()
	w := pp.out()
	_, _ = titleStyle.Fprintln(w, "Dashboards")

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(
		headerStyle.Sprint("NAME"),
		headerStyle.Sprint("TITLE"),
		headerStyle.Sprint("ALIASES"),
		headerStyle.Sprint("REFRESH"),
		headerStyle.Sprint("EXPORTS"),
		headerStyle.Sprint("LAST RANGE"),
	)
	for _, d := range all {
		refresh := noticeStyle.Sprint("-")
		if d.Trigger != nil {
			refresh = d.Trigger.Method
		}
		exports := noticeStyle.Sprint("-")
		if f := d.Formats(); len(f) > 0 {
			exports = strings.Join(f, ", ")
		}
		last := noticeStyle.Sprint("-")
		if r, ok := saved[d.Name]; ok && d.Ranged() {
			last = r.String()
		}
		tbl.AddRow(d.Name, d.Title, strings.Join(d.Aliases, ", "), refresh, exports, last)
	}
	_, _ = fmt.Fprintln(w, tbl)
}
