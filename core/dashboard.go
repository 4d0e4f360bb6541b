package core

// DefaultChartColor is used for chart entries whose category has no color.
const DefaultChartColor = "#8884d8"

// Entry is the minimal view of a transaction the summary reducer needs.
type Entry struct {
	Type   string
	Amount Money
}

// CategoryEntry is the view of a transaction the chart reducer needs:
// its amount plus the identity of the category it belongs to.
type CategoryEntry struct {
	CategoryID int64
	Name       string
	Color      string
	Amount     Money
}

// Summary is the dashboard roll-up for one month window.
type Summary struct {
	Income           Money `json:"income"`
	Expense          Money `json:"expense"`
	Balance          Money `json:"balance"`
	TransactionCount int   `json:"transactionCount"`
	Month            int   `json:"month"`
	Year             int   `json:"year"`
}

// ChartItem is one slice of a category breakdown chart.
type ChartItem struct {
	Name  string `json:"name"`
	Value Money  `json:"value"`
	Color string `json:"color"`
}

// Summarize partitions the entries of a month window into income and
// expense totals. The caller is responsible for having filtered the
// entries to the window; the reducer only sums.
func Summarize(year, month int, entries []Entry) Summary {
	s := Summary{Month: month, Year: year}
	for _, e := range entries {
		switch e.Type {
		case TypeIncome:
			s.Income.Cents += e.Amount.Cents
		case TypeExpense:
			s.Expense.Cents += e.Amount.Cents
		}
		s.TransactionCount++
	}
	s.Balance.Cents = s.Income.Cents - s.Expense.Cents
	return s
}

// BuildChart groups the entries by category, emitting one item per
// category that actually appears. Categories without entries are absent,
// not zero-filled, and the order of items is not contractual.
func BuildChart(entries []CategoryEntry) []ChartItem {
	index := make(map[int64]int)
	items := make([]ChartItem, 0, len(entries))
	for _, e := range entries {
		if i, ok := index[e.CategoryID]; ok {
			items[i].Value.Cents += e.Amount.Cents
			continue
		}
		color := e.Color
		if color == "" {
			color = DefaultChartColor
		}
		index[e.CategoryID] = len(items)
		items = append(items, ChartItem{Name: e.Name, Value: e.Amount, Color: color})
	}
	return items
}
