package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrProductNotFound = errors.New("product not found")
var ErrUnsupportedMedia = errors.New("unsupported media type")

// ValidationError reports the fields missing or invalid on a create request.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing or invalid fields: %s", strings.Join(e.Fields, ", "))
}

// Rating aggregates user scores for a product.
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// Product is the core catalog aggregate. Image always holds a resolvable
// URL once the record exists, never a raw filesystem path.
type Product struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Details    string    `json:"details"`
	Image      string    `json:"image"`
	Price      float64   `json:"price"`
	Categories []string  `json:"categories"`
	Rating     Rating    `json:"rating"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NormalizeCategories flattens form input into a clean category set.
// Each value may itself be comma-separated; entries are trimmed, empties
// dropped, and duplicates removed preserving first-seen order.
func NormalizeCategories(values []string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, len(values))
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			c := strings.TrimSpace(part)
			if c == "" {
				continue
			}
			if _, dup := seen[c]; dup {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	return out
}
