package category

import "errors"

var ErrNotFound = errors.New("category not found")

// Categories are global and read-only; only the seeder writes them.
type Category struct {
	ID   int64  `json:"id"`
	Nome string `json:"nome"`
}
