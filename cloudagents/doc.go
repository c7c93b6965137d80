// Package cloudagents provides a client for the Cloud Agents account
// aggregation API.
//
// Cloud Agents collects documents (bills, statements) from third-party
// websites on behalf of customer users. This package maps its categories,
// agents, accounts, synchronizations and documents endpoints onto methods
// returning decoded JSON.
//
// # Authentication
//
// A Client is created for one environment and then bound to an
// authentication strategy from package auth:
//
//	logger := zerolog.New(os.Stdout)
//	client, err := cloudagents.New("https://api.cloudagents.example/api/v1", logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	strategy, err := auth.NewBasic("username", "secret")
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := client.Use(strategy); err != nil {
//		log.Fatal(err)
//	}
//
//	accounts, err := client.GetAllAccounts(ctx, cloudagents.AccountsOptions{
//		AgentID: "a1",
//		Take:    cloudagents.Int(50),
//	})
//
// The Authorization header is computed once per bound strategy and reused
// for every request. It is only recomputed after another call to Use, so
// a rotated bearer token must be rebound explicitly.
//
// # Error Handling
//
// Every method returns either a result or an error, never both:
//
//   - ErrConfiguration: missing credentials or no strategy bound
//   - ErrInvalidArgument: empty path identifier
//   - TransportError: connection, DNS or timeout failure
//   - APIError: non-2xx response with the decoded error payload
//
// Nothing is retried. Synchronization states are exposed as the
// SynchronizationState and SynchronizationStateDetail constants.
package cloudagents
