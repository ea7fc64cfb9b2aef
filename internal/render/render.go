// Package render draws deals pages and pagination controls on a terminal,
// and implements the interactive collaborators (toasts, alert confirmation,
// navigation) the controller expects.
package render

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"dealscope/internal/controller"
	"dealscope/pkg/deals"
)

// Terminal renders to Out and reads interactive answers from In.
type Terminal struct {
	Out io.Writer
	In  io.Reader
}

func New() *Terminal {
	return &Terminal{Out: os.Stdout, In: os.Stdin}
}

// RenderPage prints one page of product cards plus pagination controls.
func (t *Terminal) RenderPage(items []deals.Product, info controller.PageInfo) {
	w := tabwriter.NewWriter(t.Out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tBRAND\tPRICE\tWAS\tDISCOUNT\tSPECS\tRETAILERS")
	for _, p := range items {
		was := ""
		if p.OriginalPrice.IsSet() {
			was = p.OriginalPrice.String()
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%d\t\n",
			p.ID, p.Name, p.Brand, p.CurrentPrice.String(), was,
			p.Discount, strings.Join(p.Specs, " | "), p.RetailerCount)
	}
	w.Flush()

	fmt.Fprintf(t.Out, "\n%s\n", PageControls(info.Window, info.Page, info.TotalPages))
	fmt.Fprintf(t.Out, "%d products, sorted by %s\n", info.TotalItems, info.SortBy)
}

// RenderEmpty prints the empty state with a retry hint.
func (t *Terminal) RenderEmpty(reason string) {
	fmt.Fprintf(t.Out, "No deals to show: %s\n", reason)
	fmt.Fprintln(t.Out, "Run the command again to retry.")
}

// Notify prints a toast-style one-liner.
func (t *Terminal) Notify(title, message, severity string) {
	fmt.Fprintf(t.Out, "[%s] %s: %s\n", severity, title, message)
}

// NavigateTo prints where a UI would go; the CLI has no views to switch.
func (t *Terminal) NavigateTo(view string) {
	fmt.Fprintf(t.Out, "open view: %s\n", view)
}

// ConfirmAlert asks for the alert threshold and an optional email. An empty
// answer accepts the suggested price; anything non-numeric cancels.
func (t *Terminal) ConfirmAlert(p deals.Product, suggested float64) (float64, string, bool) {
	reader := bufio.NewReader(t.In)

	fmt.Fprintf(t.Out, "Alert when %s drops below [%.0f]: ", p.Name, suggested)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return 0, "", false
	}
	line = strings.TrimSpace(line)

	price := suggested
	if line != "" {
		price, err = strconv.ParseFloat(line, 64)
		if err != nil {
			fmt.Fprintln(t.Out, "not a number, cancelled")
			return 0, "", false
		}
	}

	fmt.Fprint(t.Out, "Email for the alert (optional): ")
	email, _ := reader.ReadString('\n')
	return price, strings.TrimSpace(email), true
}

// PageControls formats the pagination line, e.g. "1 … 4 5 [6] 7 8 … 12".
func PageControls(w deals.PageWindow, current, total int) string {
	var parts []string
	if w.LeadingFirst {
		parts = append(parts, "1", "…")
	}
	for _, p := range w.Pages {
		if p == current {
			parts = append(parts, "["+strconv.Itoa(p)+"]")
		} else {
			parts = append(parts, strconv.Itoa(p))
		}
	}
	if w.TrailingLast {
		parts = append(parts, "…", strconv.Itoa(total))
	}
	return strings.Join(parts, " ")
}
