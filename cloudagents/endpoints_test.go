package cloudagents

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordedRequest captures what the server saw
type recordedRequest struct {
	method   string
	path     string
	rawQuery string
	body     string
}

func TestEndpoints(t *testing.T) {
	tests := []struct {
		name      string
		response  string
		call      func(ctx context.Context, c *Client) error
		wantMeth  string
		wantPath  string
		wantQuery string
		wantBody  string
	}{
		{
			name:     "GetCategories without culture",
			response: `[]`,
			call: func(ctx context.Context, c *Client) error {
				_, err := c.GetCategories(ctx, CategoriesOptions{})
				return err
			},
			wantMeth: http.MethodGet,
			wantPath: "/api/v1/categories",
		},
		{
			name:     "GetCategories with culture",
			response: `[]`,
			call: func(ctx context.Context, c *Client) error {
				_, err := c.GetCategories(ctx, CategoriesOptions{Culture: "fr-FR"})
				return err
			},
			wantMeth:  http.MethodGet,
			wantPath:  "/api/v1/categories",
			wantQuery: "culture=fr-FR",
		},
		{
			name:     "GetAgents",
			response: `[]`,
			call: func(ctx context.Context, c *Client) error {
				_, err := c.GetAgents(ctx, AgentsOptions{IncludeLogo: Bool(false), Culture: "en-GB"})
				return err
			},
			wantMeth:  http.MethodGet,
			wantPath:  "/api/v1/agents",
			wantQuery: "culture=en-GB&includeLogo=false",
		},
		{
			name:     "SearchAgents by country only",
			response: `[]`,
			call: func(ctx context.Context, c *Client) error {
				_, err := c.SearchAgents(ctx, SearchAgentsOptions{Country: "PT"})
				return err
			},
			wantMeth:  http.MethodGet,
			wantPath:  "/api/v1/agents/search",
			wantQuery: "country=PT",
		},
		{
			name:     "SearchAgents free text",
			response: `[]`,
			call: func(ctx context.Context, c *Client) error {
				_, err := c.SearchAgents(ctx, SearchAgentsOptions{Culture: "en-GB", Query: "edf energy"})
				return err
			},
			wantMeth:  http.MethodGet,
			wantPath:  "/api/v1/agents/search",
			wantQuery: "culture=en-GB&q=edf+energy",
		},
		{
			name:     "GetAgentsByCategory",
			response: `[]`,
			call: func(ctx context.Context, c *Client) error {
				_, err := c.GetAgentsByCategory(ctx, "c83e6fbc06433f54cea00d8bd6fb2395")
				return err
			},
			wantMeth: http.MethodGet,
			wantPath: "/api/v1/categories/c83e6fbc06433f54cea00d8bd6fb2395/agents",
		},
		{
			name:     "GetAllAccounts omits absent skip",
			response: `[]`,
			call: func(ctx context.Context, c *Client) error {
				_, err := c.GetAllAccounts(ctx, AccountsOptions{AgentID: "A", Skip: nil})
				return err
			},
			wantMeth:  http.MethodGet,
			wantPath:  "/api/v1/accounts",
			wantQuery: "agentId=A",
		},
		{
			name:     "GetAllAccounts keeps zero skip",
			response: `[]`,
			call: func(ctx context.Context, c *Client) error {
				_, err := c.GetAllAccounts(ctx, AccountsOptions{CustomerUserID: "u1", Skip: Int(0), Take: Int(25)})
				return err
			},
			wantMeth:  http.MethodGet,
			wantPath:  "/api/v1/accounts",
			wantQuery: "customerUserId=u1&skip=0&take=25",
		},
		{
			name:     "SearchAccounts",
			response: `[]`,
			call: func(ctx context.Context, c *Client) error {
				_, err := c.SearchAccounts(ctx, AccountsOptions{AgentID: "A", Take: Int(10)})
				return err
			},
			wantMeth:  http.MethodGet,
			wantPath:  "/api/v1/accounts/search",
			wantQuery: "agentId=A&take=10",
		},
		{
			name:     "GetAccountsByAgent",
			response: `[]`,
			call: func(ctx context.Context, c *Client) error {
				_, err := c.GetAccountsByAgent(ctx, "agent-1", PageOptions{Skip: Int(20)})
				return err
			},
			wantMeth:  http.MethodGet,
			wantPath:  "/api/v1/agents/agent-1/accounts",
			wantQuery: "skip=20",
		},
		{
			name:     "GetAccount escapes identifier",
			response: `{}`,
			call: func(ctx context.Context, c *Client) error {
				_, err := c.GetAccount(ctx, "a/b")
				return err
			},
			wantMeth: http.MethodGet,
			wantPath: "/api/v1/accounts/a%2Fb",
		},
		{
			name:     "CreateAccount",
			response: `{"id":"acc-1"}`,
			call: func(ctx context.Context, c *Client) error {
				_, err := c.CreateAccount(ctx, map[string]any{"agentId": "agent-1", "customerUserId": "u1"})
				return err
			},
			wantMeth: http.MethodPost,
			wantPath: "/api/v1/accounts",
			wantBody: `{"synchronize":true,"account":{"agentId":"agent-1","customerUserId":"u1"}}`,
		},
		{
			name:     "ModifyAccount",
			response: `{"id":"acc-1"}`,
			call: func(ctx context.Context, c *Client) error {
				_, err := c.ModifyAccount(ctx, "acc-1", map[string]any{"name": "Home"})
				return err
			},
			wantMeth: http.MethodPut,
			wantPath: "/api/v1/accounts/acc-1",
			wantBody: `{"name":"Home"}`,
		},
		{
			name:     "DeleteAccount",
			response: ``,
			call: func(ctx context.Context, c *Client) error {
				return c.DeleteAccount(ctx, "acc-1")
			},
			wantMeth: http.MethodDelete,
			wantPath: "/api/v1/accounts/acc-1",
		},
		{
			name:     "SynchronizeAccount",
			response: `{"id":"sync-1"}`,
			call: func(ctx context.Context, c *Client) error {
				_, err := c.SynchronizeAccount(ctx, "acc-1", "u1", true)
				return err
			},
			wantMeth: http.MethodPost,
			wantPath: "/api/v1/accounts/acc-1/synchronizations",
			wantBody: `{"customerAccountId":"acc-1","customerUserId":"u1","forced":true}`,
		},
		{
			name:     "SendMFACode",
			response: `{}`,
			call: func(ctx context.Context, c *Client) error {
				_, err := c.SendMFACode(ctx, "acc-1", "123456")
				return err
			},
			wantMeth: http.MethodPost,
			wantPath: "/api/v1/accounts/acc-1/mfa",
			wantBody: `{"customerAccountId":"acc-1","sbxSecretCode":"123456"}`,
		},
		{
			name:     "GetSynchronizationsByAccount",
			response: `[]`,
			call: func(ctx context.Context, c *Client) error {
				_, err := c.GetSynchronizationsByAccount(ctx, "acc-1", DateRange{StartDate: "2024-01-01"})
				return err
			},
			wantMeth:  http.MethodGet,
			wantPath:  "/api/v1/accounts/acc-1/synchronizations",
			wantQuery: "startDate=2024-01-01",
		},
		{
			name:     "GetLastSynchronizationByAccount",
			response: `{}`,
			call: func(ctx context.Context, c *Client) error {
				_, err := c.GetLastSynchronizationByAccount(ctx, "acc-1")
				return err
			},
			wantMeth: http.MethodGet,
			wantPath: "/api/v1/accounts/acc-1/synchronizations/last",
		},
		{
			name:     "SearchSynchronizations",
			response: `[]`,
			call: func(ctx context.Context, c *Client) error {
				_, err := c.SearchSynchronizations(ctx, SearchSynchronizationsOptions{
					CustomerAccountID: "acc-1",
					EndDate:           "2024-02-01",
					Take:              Int(5),
				})
				return err
			},
			wantMeth:  http.MethodGet,
			wantPath:  "/api/v1/synchronizations/search",
			wantQuery: "customerAccountId=acc-1&endDate=2024-02-01&take=5",
		},
		{
			name:     "AcknowledgeSynchronizationForAccount",
			response: ``,
			call: func(ctx context.Context, c *Client) error {
				return c.AcknowledgeSynchronizationForAccount(ctx, "acc-1", map[string]any{"synchronizationId": "sync-1"})
			},
			wantMeth: http.MethodPut,
			wantPath: "/api/v1/synchronizations/acc-1/ack",
			wantBody: `{"synchronizationId":"sync-1"}`,
		},
		{
			name:     "GetDocument",
			response: `{"id":"doc-1"}`,
			call: func(ctx context.Context, c *Client) error {
				_, err := c.GetDocument(ctx, "doc-1")
				return err
			},
			wantMeth: http.MethodGet,
			wantPath: "/api/v1/documents/doc-1",
		},
		{
			name:     "SearchDocuments",
			response: `[]`,
			call: func(ctx context.Context, c *Client) error {
				_, err := c.SearchDocuments(ctx, SearchDocumentsOptions{CustomerUserID: "u1", PendingOnly: Bool(true)})
				return err
			},
			wantMeth:  http.MethodGet,
			wantPath:  "/api/v1/documents/search",
			wantQuery: "customerUserId=u1&pendingOnly=true",
		},
		{
			name:     "GetDocumentsByAccount",
			response: `[]`,
			call: func(ctx context.Context, c *Client) error {
				_, err := c.GetDocumentsByAccount(ctx, "acc-1", DocumentsOptions{IncludeContent: Bool(true)})
				return err
			},
			wantMeth:  http.MethodGet,
			wantPath:  "/api/v1/accounts/acc-1/documents",
			wantQuery: "includeContent=true",
		},
		{
			name:     "AcknowledgeDocumentDelivery",
			response: ``,
			call: func(ctx context.Context, c *Client) error {
				return c.AcknowledgeDocumentDelivery(ctx, "doc-1")
			},
			wantMeth: http.MethodPut,
			wantPath: "/api/v1/documents/doc-1/ack",
			wantBody: `"doc-1"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got recordedRequest
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				body, err := io.ReadAll(r.Body)
				require.NoError(t, err)
				got = recordedRequest{
					method:   r.Method,
					path:     r.URL.EscapedPath(),
					rawQuery: r.URL.RawQuery,
					body:     string(body),
				}
				w.Write([]byte(tt.response))
			}))
			defer server.Close()

			client, err := New(server.URL+"/api/v1", zerolog.Nop(), WithStrategy(newBasic(t)))
			require.NoError(t, err)

			require.NoError(t, tt.call(context.Background(), client))

			assert.Equal(t, tt.wantMeth, got.method)
			assert.Equal(t, tt.wantPath, got.path)
			assert.Equal(t, tt.wantQuery, got.rawQuery)
			if tt.wantBody == "" {
				assert.Empty(t, got.body)
			} else {
				assert.JSONEq(t, tt.wantBody, got.body)
			}
		})
	}
}

func TestListEndpointDecodesArray(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"a1","name":"EDF"},{"id":"a2","name":"Orange"}]`))
	})

	agents, err := client.SearchAgents(context.Background(), SearchAgentsOptions{Country: "FR"})
	require.NoError(t, err)
	require.Len(t, agents, 2)
	assert.Equal(t, "a1", agents[0].ID())
	assert.Equal(t, "Orange", agents[1].String("name"))
}
