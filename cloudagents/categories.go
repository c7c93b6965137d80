package cloudagents

import (
	"context"
	"net/http"
)

// GetCategories lists agent categories, localized when Culture is set.
func (c *Client) GetCategories(ctx context.Context, opts CategoriesOptions) ([]Object, error) {
	q := query{}.addString("culture", opts.Culture)

	return c.getList(ctx, request{
		method: http.MethodGet,
		path:   "/categories",
		query:  q.values(),
	})
}
