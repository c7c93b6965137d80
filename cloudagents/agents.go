package cloudagents

import (
	"context"
	"net/http"
)

// GetAgents lists every agent available to the API user
func (c *Client) GetAgents(ctx context.Context, opts AgentsOptions) ([]Object, error) {
	q := query{}.
		addBool("includeLogo", opts.IncludeLogo).
		addString("culture", opts.Culture)

	return c.getList(ctx, request{
		method: http.MethodGet,
		path:   "/agents",
		query:  q.values(),
	})
}

// SearchAgents searches agents by country, culture and free text
func (c *Client) SearchAgents(ctx context.Context, opts SearchAgentsOptions) ([]Object, error) {
	q := query{}.
		addString("country", opts.Country).
		addString("culture", opts.Culture).
		addString("q", opts.Query)

	return c.getList(ctx, request{
		method: http.MethodGet,
		path:   "/agents/search",
		query:  q.values(),
	})
}

// GetAgentsByCategory lists the agents of one category
func (c *Client) GetAgentsByCategory(ctx context.Context, categoryID string) ([]Object, error) {
	if err := requireID("category id", categoryID); err != nil {
		return nil, err
	}

	return c.getList(ctx, request{
		method: http.MethodGet,
		path:   resourcePath("categories", categoryID, "agents"),
	})
}
