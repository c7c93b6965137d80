package cloudagents

import (
	"context"
	"net/http"
)

// GetDocument retrieves a single document
func (c *Client) GetDocument(ctx context.Context, documentID string) (Object, error) {
	if err := requireID("document id", documentID); err != nil {
		return nil, err
	}

	return c.getObject(ctx, request{
		method: http.MethodGet,
		path:   resourcePath("documents", documentID),
	})
}

// SearchDocuments searches documents by account, customer user and
// delivery state.
func (c *Client) SearchDocuments(ctx context.Context, opts SearchDocumentsOptions) ([]Object, error) {
	q := query{}.
		addString("customerAccountId", opts.CustomerAccountID).
		addString("customerUserId", opts.CustomerUserID).
		addBool("pendingOnly", opts.PendingOnly).
		addBool("includeContent", opts.IncludeContent)

	return c.getList(ctx, request{
		method: http.MethodGet,
		path:   "/documents/search",
		query:  q.values(),
	})
}

// GetDocumentsByAccount lists the documents collected for an account
func (c *Client) GetDocumentsByAccount(ctx context.Context, accountID string, opts DocumentsOptions) ([]Object, error) {
	if err := requireID("account id", accountID); err != nil {
		return nil, err
	}

	q := query{}.
		addBool("pendingOnly", opts.PendingOnly).
		addBool("includeContent", opts.IncludeContent)

	return c.getList(ctx, request{
		method: http.MethodGet,
		path:   resourcePath("accounts", accountID, "documents"),
		query:  q.values(),
	})
}

// AcknowledgeDocumentDelivery marks a document as delivered so it no
// longer appears in pending searches. The body is the document id.
func (c *Client) AcknowledgeDocumentDelivery(ctx context.Context, documentID string) error {
	if err := requireID("document id", documentID); err != nil {
		return err
	}

	return c.authenticatedRequest(ctx, request{
		method: http.MethodPut,
		path:   resourcePath("documents", documentID, "ack"),
		body:   documentID,
	}, nil)
}
