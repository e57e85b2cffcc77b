package domain

// DefaultCategoryName is the name of the category every unassigned amount falls into.
const DefaultCategoryName = "Uncategorized"

// Category is a registry entry that allocations point at.
type Category struct {
	CategoryID  string `json:"categoryID"`
	Name        string `json:"name"` // unique, case-sensitive; grouping key in reports
	Description string `json:"description"`
	AuditFields
}
