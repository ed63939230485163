package shared

import "context"

// Transactor runs fn so that every repository write made with the context it
// receives commits or rolls back together
type Transactor interface {
	InTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
