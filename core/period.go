package core

import "time"

// Transaction and category types. A category's type is fixed at creation
// and constrains the transactions and budgets that may reference it.
const (
	TypeIncome  = "INCOME"
	TypeExpense = "EXPENSE"
)

// ValidType reports whether t is one of the two known entry types.
func ValidType(t string) bool {
	return t == TypeIncome || t == TypeExpense
}

// MonthWindow returns the inclusive calendar-day range spanning the given
// month: the first and the last day. Passing month+1 with day 0 lets the
// time package resolve the month length, leap years included.
func MonthWindow(year int, month int) (Date, Date) {
	first := NewDate(year, time.Month(month), 1)
	last := NewDate(year, time.Month(month+1), 0)
	return first, last
}
