package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

const tableTemplate = `{{with .Title}}## {{.}}

{{end}}{{if .Rows}}| {{join .Columns " | "}} |
|{{range .Columns}} --- |{{end}}
{{range .Rows}}| {{join . " | "}} |
{{end}}{{else}}_No results._
{{end}}`

const fieldsTemplate = `{{with .Title}}## {{.}}

{{end}}| metric | value |
| --- | --- |
{{range .Rows}}| {{index . 0}} | {{index . 1}} |
{{end}}`

var templates = template.Must(
	template.Must(template.New("table").Funcs(template.FuncMap{"join": strings.Join}).Parse(tableTemplate)).
		New("fields").Parse(fieldsTemplate),
)

// columns shown as US dollars
var moneyColumns = map[string]bool{
	"price_usd": true, "vol_24h": true, "market_cap": true,
	"last": true, "high": true, "low": true,
	"purchase_price": true, "current_price": true,
	"cost_basis": true, "current_value": true, "gain_loss": true,
	"total_market_cap": true, "total_24h_volume": true, "avg_price": true,
	"total_cost_basis": true, "total_current_value": true, "total_gain_loss": true,
	"value_crypto": true, "value_stock": true,
}

// columns shown as signed percentages
var percentColumns = map[string]bool{
	"chg_24h": true, "chg_7d": true, "chg_%": true, "volatility": true,
	"gain_loss_pct": true, "avg_24h_change": true, "avg_7d_change": true,
	"total_gain_loss_pct": true, "crypto": true, "stock": true,
}

// Markdown renders the table as a GitHub-flavoured markdown table.
// An empty table renders a placeholder line instead of a header-only table.
func (t Table) Markdown() string {
	data := struct {
		Title   string
		Columns []string
		Rows    [][]string
	}{Title: escape(t.Title), Columns: t.Columns}

	for _, row := range t.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			col := ""
			if i < len(t.Columns) {
				col = t.Columns[i]
			}
			cells[i] = FormatCell(col, v)
		}
		data.Rows = append(data.Rows, cells)
	}

	return execute("table", data)
}

// Markdown renders the fields as a two-column metric/value table
func (f Fields) Markdown(title string) string {
	data := struct {
		Title string
		Rows  [][2]string
	}{Title: escape(title)}

	for _, field := range f {
		data.Rows = append(data.Rows, [2]string{escape(field.Name), FormatCell(field.Name, field.Value)})
	}

	return execute("fields", data)
}

func execute(name string, data any) string {
	var b strings.Builder
	if err := templates.ExecuteTemplate(&b, name, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", name, err)
	}
	return b.String()
}

// FormatCell formats one value for display according to its column
func FormatCell(column string, v any) string {
	switch x := v.(type) {
	case float64:
		switch {
		case math.IsNaN(x) || math.IsInf(x, 0):
			return "n/a"
		case moneyColumns[column]:
			return USD(x)
		case percentColumns[column]:
			return Percent(x)
		default:
			return strconv.FormatFloat(x, 'f', -1, 64)
		}
	case time.Time:
		return x.UTC().Format("2006-01-02 15:04")
	case string:
		return escape(x)
	default:
		return escape(fmt.Sprint(v))
	}
}

// USD formats an amount in US dollars, rounded to the cent
func USD(amount float64) string {
	cur := money.GetCurrency(money.USD)
	cents := decimal.NewFromFloat(amount).Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(cents.IntPart())
}

// Percent formats a signed percentage with two decimals
func Percent(v float64) string {
	return fmt.Sprintf("%+.2f%%", v)
}

var cellEscaper = strings.NewReplacer("|", `\|`, "\n", " ")

func escape(s string) string {
	return cellEscaper.Replace(s)
}
