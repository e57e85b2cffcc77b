package models

// Category is a row of the categories table.
type Category struct {
	CategoryID  string `db:"category_id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	AuditFields
}
