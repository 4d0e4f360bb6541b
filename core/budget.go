package core

// BudgetStatus annotates a budget ceiling with the actual spend for its
// period. Remaining may be negative; Percentage is clamped to 100 for
// display, so callers deciding over/under budget must compare Spent
// against the ceiling directly.
type BudgetStatus struct {
	Spent      Money   `json:"spent"`
	Remaining  Money   `json:"remaining"`
	Percentage float64 `json:"percentage"`
}

// BudgetUsage computes the status of a budget ceiling given the summed
// expense amount for its category and month. A non-positive ceiling would
// mean any spend is over budget, so it clamps straight to 100 instead of
// dividing.
func BudgetUsage(amount, spent Money) BudgetStatus {
	st := BudgetStatus{
		Spent:     spent,
		Remaining: Money{Cents: amount.Cents - spent.Cents},
	}
	if amount.Cents <= 0 {
		st.Percentage = 100
		return st
	}
	pct := float64(spent.Cents) * 100 / float64(amount.Cents)
	if pct > 100 {
		pct = 100
	}
	st.Percentage = pct
	return st
}
