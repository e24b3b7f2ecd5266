package domain

// Category is an entry of the shared category catalog. Names are unique.
type Category struct {
	CategoryID string          `json:"categoryID"`
	Name       string          `json:"name"`
	Type       TransactionType `json:"type"`
	Color      *string         `json:"color,omitempty"`
	Icon       *string         `json:"icon,omitempty"`
	AuditFields
}
