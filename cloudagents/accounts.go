package cloudagents

import (
	"context"
	"net/http"
)

// createAccountBody is the payload of POST /accounts
type createAccountBody struct {
	Synchronize bool `json:"synchronize"`
	Account     any  `json:"account"`
}

// synchronizeBody is the payload of POST /accounts/{id}/synchronizations
type synchronizeBody struct {
	CustomerAccountID string `json:"customerAccountId"`
	CustomerUserID    string `json:"customerUserId"`
	Forced            bool   `json:"forced"`
}

// mfaBody is the payload of POST /accounts/{id}/mfa
type mfaBody struct {
	CustomerAccountID string `json:"customerAccountId"`
	SecretCode        string `json:"sbxSecretCode"`
}

func accountsQuery(opts AccountsOptions) query {
	return query{}.
		addString("agentId", opts.AgentID).
		addString("customerUserId", opts.CustomerUserID).
		addInt("skip", opts.Skip).
		addInt("take", opts.Take)
}

// GetAllAccounts lists accounts, optionally filtered by agent or customer user
func (c *Client) GetAllAccounts(ctx context.Context, opts AccountsOptions) ([]Object, error) {
	return c.getList(ctx, request{
		method: http.MethodGet,
		path:   "/accounts",
		query:  accountsQuery(opts).values(),
	})
}

// SearchAccounts searches accounts with the same filters as GetAllAccounts
func (c *Client) SearchAccounts(ctx context.Context, opts AccountsOptions) ([]Object, error) {
	return c.getList(ctx, request{
		method: http.MethodGet,
		path:   "/accounts/search",
		query:  accountsQuery(opts).values(),
	})
}

// GetAccountsByAgent lists the accounts attached to one agent
func (c *Client) GetAccountsByAgent(ctx context.Context, agentID string, opts PageOptions) ([]Object, error) {
	if err := requireID("agent id", agentID); err != nil {
		return nil, err
	}

	q := query{}.
		addInt("skip", opts.Skip).
		addInt("take", opts.Take)

	return c.getList(ctx, request{
		method: http.MethodGet,
		path:   resourcePath("agents", agentID, "accounts"),
		query:  q.values(),
	})
}

// GetAccount retrieves a single account
func (c *Client) GetAccount(ctx context.Context, accountID string) (Object, error) {
	if err := requireID("account id", accountID); err != nil {
		return nil, err
	}

	return c.getObject(ctx, request{
		method: http.MethodGet,
		path:   resourcePath("accounts", accountID),
	})
}

// CreateAccount creates an account and asks the API to synchronize it
// immediately.
func (c *Client) CreateAccount(ctx context.Context, account any) (Object, error) {
	return c.getObject(ctx, request{
		method: http.MethodPost,
		path:   "/accounts",
		body: createAccountBody{
			Synchronize: true,
			Account:     account,
		},
	})
}

// ModifyAccount replaces an account's definition
func (c *Client) ModifyAccount(ctx context.Context, accountID string, account any) (Object, error) {
	if err := requireID("account id", accountID); err != nil {
		return nil, err
	}

	return c.getObject(ctx, request{
		method: http.MethodPut,
		path:   resourcePath("accounts", accountID),
		body:   account,
	})
}

// DeleteAccount deletes an account
func (c *Client) DeleteAccount(ctx context.Context, accountID string) error {
	if err := requireID("account id", accountID); err != nil {
		return err
	}

	return c.authenticatedRequest(ctx, request{
		method: http.MethodDelete,
		path:   resourcePath("accounts", accountID),
	}, nil)
}

// SynchronizeAccount starts a synchronization of an account on behalf of a
// customer user. forced requests a run even when one is not due.
func (c *Client) SynchronizeAccount(ctx context.Context, accountID, customerUserID string, forced bool) (Object, error) {
	if err := requireID("account id", accountID); err != nil {
		return nil, err
	}

	return c.getObject(ctx, request{
		method: http.MethodPost,
		path:   resourcePath("accounts", accountID, "synchronizations"),
		body: synchronizeBody{
			CustomerAccountID: accountID,
			CustomerUserID:    customerUserID,
			Forced:            forced,
		},
	})
}

// SendMFACode answers an additional authentication challenge raised during
// a synchronization.
func (c *Client) SendMFACode(ctx context.Context, accountID, code string) (Object, error) {
	if err := requireID("account id", accountID); err != nil {
		return nil, err
	}

	return c.getObject(ctx, request{
		method: http.MethodPost,
		path:   resourcePath("accounts", accountID, "mfa"),
		body: mfaBody{
			CustomerAccountID: accountID,
			SecretCode:        code,
		},
	})
}
