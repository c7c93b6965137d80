package cloudagents

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// LastSynchronizationResult holds the outcome for one account of
// GetLastSynchronizations. Exactly one of Synchronization and Err is set.
type LastSynchronizationResult struct {
	AccountID       string
	Synchronization Object
	Err             error
}

// GetLastSynchronizations fetches the last synchronization of each account
// concurrently, bounded by WithConcurrency. Each account costs one request
// and failures are reported per account; results keep the input order.
func (c *Client) GetLastSynchronizations(ctx context.Context, accountIDs []string) ([]LastSynchronizationResult, error) {
	results := make([]LastSynchronizationResult, len(accountIDs))
	if len(accountIDs) == 0 {
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for i, accountID := range accountIDs {
		g.Go(func() error {
			last, err := c.GetLastSynchronizationByAccount(gctx, accountID)
			if err != nil {
				c.logger.Warn().
					Err(err).
					Str("account_id", accountID).
					Msg("Failed to get last synchronization")
			}
			// each goroutine owns results[i]
			results[i] = LastSynchronizationResult{
				AccountID:       accountID,
				Synchronization: last,
				Err:             err,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return results, nil
}
