package models

// Category is a named, typed tag for transactions. Default categories have
// a nil UserID and are shared read-only across all users; user categories
// are visible only to their owner. Type is fixed at creation.
type Category struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Icon      string `json:"icon,omitempty"`
	Color     string `json:"color,omitempty"`
	IsDefault bool   `json:"isDefault"`
	UserID    *int64 `json:"userId,omitempty"`
}

// VisibleTo reports whether the category may be referenced by the given
// user: defaults are visible to everyone, owned ones to their owner only.
func (c *Category) VisibleTo(userID int64) bool {
	if c.IsDefault {
		return true
	}
	return c.UserID != nil && *c.UserID == userID
}
