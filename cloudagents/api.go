package cloudagents

import (
	"context"

	"github.com/s0up4200/cloudagents/auth"
)

// API defines the Cloud Agents operations exposed by Client
type API interface {
	// Use binds an authentication strategy
	Use(strategy auth.Strategy) error

	// Categories
	GetCategories(ctx context.Context, opts CategoriesOptions) ([]Object, error)

	// Agents
	GetAgents(ctx context.Context, opts AgentsOptions) ([]Object, error)
	SearchAgents(ctx context.Context, opts SearchAgentsOptions) ([]Object, error)
	GetAgentsByCategory(ctx context.Context, categoryID string) ([]Object, error)

	// Accounts
	GetAllAccounts(ctx context.Context, opts AccountsOptions) ([]Object, error)
	SearchAccounts(ctx context.Context, opts AccountsOptions) ([]Object, error)
	GetAccountsByAgent(ctx context.Context, agentID string, opts PageOptions) ([]Object, error)
	GetAccount(ctx context.Context, accountID string) (Object, error)
	CreateAccount(ctx context.Context, account any) (Object, error)
	ModifyAccount(ctx context.Context, accountID string, account any) (Object, error)
	DeleteAccount(ctx context.Context, accountID string) error
	SynchronizeAccount(ctx context.Context, accountID, customerUserID string, forced bool) (Object, error)
	SendMFACode(ctx context.Context, accountID, code string) (Object, error)

	// Synchronizations
	GetSynchronizationsByAccount(ctx context.Context, accountID string, dates DateRange) ([]Object, error)
	GetLastSynchronizationByAccount(ctx context.Context, accountID string) (Object, error)
	GetLastSynchronizations(ctx context.Context, accountIDs []string) ([]LastSynchronizationResult, error)
	SearchSynchronizations(ctx context.Context, opts SearchSynchronizationsOptions) ([]Object, error)
	AcknowledgeSynchronizationForAccount(ctx context.Context, accountID string, acknowledgement any) error

	// Documents
	GetDocument(ctx context.Context, documentID string) (Object, error)
	SearchDocuments(ctx context.Context, opts SearchDocumentsOptions) ([]Object, error)
	GetDocumentsByAccount(ctx context.Context, accountID string, opts DocumentsOptions) ([]Object, error)
	AcknowledgeDocumentDelivery(ctx context.Context, documentID string) error
}

var _ API = (*Client)(nil)
