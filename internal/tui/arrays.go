package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/currency"

	"github.com/idilsaglam/prepkit/internal/challenge"
	"github.com/idilsaglam/prepkit/internal/model"
	"github.com/idilsaglam/prepkit/internal/query"
	"github.com/idilsaglam/prepkit/internal/ui"
)

var catalogProducts = []model.Product{
	{ID: 1, Name: "Laptop", Price: 1200, InStock: true},
	{ID: 2, Name: "Mouse", Price: 25, InStock: false},
	{ID: 3, Name: "Keyboard", Price: 75, InStock: true},
	{ID: 4, Name: "Monitor", Price: 300, InStock: true},
	{ID: 5, Name: "Webcam", Price: 50, InStock: false},
}

var sampleTodos = []model.Todo{
	{ID: 1, Title: "Learn Go", Completed: true},
	{ID: 2, Title: "Do the shopping", Completed: false},
	{ID: 3, Title: "Walk the dog", Completed: true},
	{ID: 4, Title: "Finish this", Completed: true},
	{ID: 5, Title: "Study other courses", Completed: true},
}

const defaultPriceThreshold = 100

var zebra = lipgloss.NewStyle().Background(lipgloss.AdaptiveColor{Light: "254", Dark: "236"})

// FormatUSD renders v as a dollar amount with grouping and cents.
func FormatUSD(v float64) string {
	return numbers.Sprint(currency.Symbol(currency.USD.Amount(v)))
}

// plainPrice mirrors the template-literal style: $1200, $25.5.
func plainPrice(v float64) string {
	return "$" + strconv.FormatFloat(v, 'f', -1, 64)
}

type productMapWidget struct {
	level    challenge.Level
	products []model.Product
}

func newProductMap(level challenge.Level) *productMapWidget {
	n := 3
	switch {
	case level.AtLeast(challenge.Hard):
		n = len(catalogProducts)
	case level.AtLeast(challenge.Mid):
		n = 4
	}
	return &productMapWidget{level: level, products: catalogProducts[:n]}
}

func (w *productMapWidget) Init() tea.Cmd                    { return nil }
func (w *productMapWidget) Update(tea.Msg) (Widget, tea.Cmd) { return w, nil }
func (w *productMapWidget) Keys() []key.Binding              { return nil }
func (w *productMapWidget) Capturing() bool                  { return false }
func (w *productMapWidget) Products() []model.Product        { return w.products }

// Total sums every listed price.
func (w *productMapWidget) Total() float64 {
	var sum float64
	for _, p := range w.products {
		sum += p.Price
	}
	return sum
}

func (w *productMapWidget) View() string {
	t := ui.Current()
	lines := []string{t.Title.Render("Available products"), ""}
	for i, p := range w.products {
		switch {
		case w.level.AtLeast(challenge.Hard):
			lines = append(lines, fmt.Sprintf("%d. %-10s %12s", i+1, p.Name, FormatUSD(p.Price)))
		case w.level.AtLeast(challenge.Mid):
			row := fmt.Sprintf("%d. %s - %s", i+1, t.Title.Render(p.Name), plainPrice(p.Price))
			if i%2 == 0 {
				row = zebra.Render(row)
			}
			lines = append(lines, row)
		default:
			lines = append(lines, "• "+p.Name+" - "+plainPrice(p.Price))
		}
	}
	if w.level.AtLeast(challenge.Hard) {
		lines = append(lines, "", fmt.Sprintf("%-13s %12s", "Total", t.Accent.Render(FormatUSD(w.Total()))))
	}
	return strings.Join(lines, "\n")
}

type filterWidget struct {
	level challenge.Level
	todos []model.Todo
	input textinput.Model
}

func newFilter(level challenge.Level) *filterWidget {
	w := &filterWidget{level: level, todos: sampleTodos[:3]}
	if level.AtLeast(challenge.Mid) {
		w.todos = sampleTodos
	}
	if level.AtLeast(challenge.Hard) {
		in := textinput.New()
		in.Prompt = "Price above: "
		in.CharLimit = 9
		in.Validate = func(s string) error {
			if s == "" {
				return nil
			}
			_, err := strconv.ParseFloat(s, 64)
			return err
		}
		in.SetValue(strconv.Itoa(defaultPriceThreshold))
		in.Focus()
		w.input = in
	}
	return w
}

// Threshold is the typed price; anything unparsable counts as zero.
func (w *filterWidget) Threshold() float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(w.input.Value()), 64)
	if err != nil {
		return 0
	}
	return v
}

// Visible is what the filter currently lets through.
func (w *filterWidget) Visible() []string {
	var out []string
	if w.level.AtLeast(challenge.Hard) {
		for _, p := range query.InStockAbove(catalogProducts, w.Threshold()) {
			out = append(out, p.Name+" - "+plainPrice(p.Price))
		}
		return out
	}
	for _, t := range query.CompletedTodos(w.todos) {
		out = append(out, t.Title)
	}
	return out
}

func (w *filterWidget) Init() tea.Cmd {
	if w.level.AtLeast(challenge.Hard) {
		return textinput.Blink
	}
	return nil
}

func (w *filterWidget) Keys() []key.Binding { return nil }
func (w *filterWidget) Capturing() bool     { return false }

func (w *filterWidget) Update(msg tea.Msg) (Widget, tea.Cmd) {
	if !w.level.AtLeast(challenge.Hard) {
		return w, nil
	}
	var cmd tea.Cmd
	w.input, cmd = w.input.Update(msg)
	return w, cmd
}

func (w *filterWidget) View() string {
	t := ui.Current()
	var lines []string
	if w.level.AtLeast(challenge.Hard) {
		lines = append(lines,
			t.Title.Render("In-stock products above "+plainPrice(w.Threshold())),
			w.input.View(), "")
	} else {
		lines = append(lines, t.Title.Render("Completed tasks"), "")
	}
	visible := w.Visible()
	if len(visible) == 0 && w.level.AtLeast(challenge.Hard) {
		lines = append(lines, t.Muted.Render("No products match these filters."))
	}
	for _, v := range visible {
		lines = append(lines, "• "+v)
	}
	return strings.Join(lines, "\n")
}
