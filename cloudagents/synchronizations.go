package cloudagents

import (
	"context"
	"net/http"
)

// GetSynchronizationsByAccount lists the synchronizations of an account
// within an optional date range.
func (c *Client) GetSynchronizationsByAccount(ctx context.Context, accountID string, dates DateRange) ([]Object, error) {
	if err := requireID("account id", accountID); err != nil {
		return nil, err
	}

	q := query{}.
		addString("startDate", dates.StartDate).
		addString("endDate", dates.EndDate)

	return c.getList(ctx, request{
		method: http.MethodGet,
		path:   resourcePath("accounts", accountID, "synchronizations"),
		query:  q.values(),
	})
}

// GetLastSynchronizationByAccount retrieves the most recent synchronization
// of an account.
func (c *Client) GetLastSynchronizationByAccount(ctx context.Context, accountID string) (Object, error) {
	if err := requireID("account id", accountID); err != nil {
		return nil, err
	}

	return c.getObject(ctx, request{
		method: http.MethodGet,
		path:   resourcePath("accounts", accountID, "synchronizations", "last"),
	})
}

// SearchSynchronizations searches synchronizations across accounts
func (c *Client) SearchSynchronizations(ctx context.Context, opts SearchSynchronizationsOptions) ([]Object, error) {
	q := query{}.
		addString("customerAccountId", opts.CustomerAccountID).
		addString("customerUserId", opts.CustomerUserID).
		addString("startDate", opts.StartDate).
		addString("endDate", opts.EndDate).
		addInt("skip", opts.Skip).
		addInt("take", opts.Take)

	return c.getList(ctx, request{
		method: http.MethodGet,
		path:   "/synchronizations/search",
		query:  q.values(),
	})
}

// AcknowledgeSynchronizationForAccount acknowledges a synchronization that
// is pending acknowledgement. The acknowledgement is sent as the JSON body.
func (c *Client) AcknowledgeSynchronizationForAccount(ctx context.Context, accountID string, acknowledgement any) error {
	if err := requireID("account id", accountID); err != nil {
		return err
	}

	return c.authenticatedRequest(ctx, request{
		method: http.MethodPut,
		path:   resourcePath("synchronizations", accountID, "ack"),
		body:   acknowledgement,
	}, nil)
}
