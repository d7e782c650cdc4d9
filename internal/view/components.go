package view

import (
	"strconv"
	"time"

	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	titleCaser = cases.Title(language.Indonesian)
	printer    = message.NewPrinter(language.Indonesian)
)

// Title upper-cases the first letter of each word.
func Title(s string) string {
	return titleCaser.String(s)
}

// Number formats n with Indonesian digit grouping and up to one decimal.
func Number(n float64) string {
	if n == float64(int64(n)) {
		return printer.Sprintf("%d", int64(n))
	}
	return printer.Sprintf("%.1f", n)
}

// Date formats t as e.g. "02 Jan 2006", or "-" for the zero time.
func Date(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02 Jan 2006")
}

func field(label, name, typ, value string, extra ...cmp.Node) cmp.Node {
	return g.Div(
		g.Class("field"),
		g.Label(g.For(name), cmp.Text(label)),
		g.Input(append([]cmp.Node{g.ID(name), g.Name(name), g.Type(typ), g.Value(value)}, extra...)...),
	)
}

type option struct {
	value, label string
}

func selectField(label, name, selected string, opts []option) cmp.Node {
	return g.Div(
		g.Class("field"),
		g.Label(g.For(name), cmp.Text(label)),
		g.Select(
			g.ID(name), g.Name(name),
			cmp.Map(opts, func(o option) cmp.Node {
				return g.Option(g.Value(o.value), cmp.If(o.value == selected, g.Selected()), cmp.Text(o.label))
			}),
		),
	)
}

func textArea(label, name, value string) cmp.Node {
	return g.Div(
		g.Class("field"),
		g.Label(g.For(name), cmp.Text(label)),
		g.Textarea(g.ID(name), g.Name(name), g.Rows("4"), cmp.Text(value)),
	)
}

func submit(label string) cmp.Node {
	return g.Button(g.Type("submit"), g.Class("btn btn-primary"), cmp.Text(label))
}

func card(title string, children ...cmp.Node) cmp.Node {
	return g.Section(
		g.Class("card"),
		cmp.If(title != "", g.H2(cmp.Text(title))),
		cmp.Group(children),
	)
}

func empty(message string) cmp.Node {
	return g.P(g.Class("empty"), cmp.Text(message))
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func uitoa(n uint) string {
	return strconv.FormatUint(uint64(n), 10)
}

// progressBar renders a percentage bar clamped to 0..100.
func progressBar(percent float64) cmp.Node {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	return g.Div(
		g.Class("progress"),
		g.Div(g.Class("progress-fill"), g.Style("width: "+strconv.FormatFloat(percent, 'f', 0, 64)+"%")),
	)
}
