package cloudagents

import (
	"context"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLastSynchronizations(t *testing.T) {
	var inFlight, maxInFlight atomic.Int32

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		n := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			current := maxInFlight.Load()
			if n <= current || maxInFlight.CompareAndSwap(current, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)

		// /accounts/{id}/synchronizations/last
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		accountID := parts[1]
		if accountID == "missing" {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"not found"}`))
			return
		}
		w.Write([]byte(`{"customerAccountId":"` + accountID + `","state":6}`))
	}, WithConcurrency(2))

	ids := []string{"acc-1", "missing", "acc-3", "acc-4", "acc-5"}
	results, err := client.GetLastSynchronizations(context.Background(), ids)
	require.NoError(t, err)
	require.Len(t, results, len(ids))

	for i, result := range results {
		assert.Equal(t, ids[i], result.AccountID)
		if result.AccountID == "missing" {
			assert.Nil(t, result.Synchronization)
			assert.True(t, IsNotFound(result.Err))
			continue
		}
		require.NoError(t, result.Err)
		assert.Equal(t, ids[i], result.Synchronization.String("customerAccountId"))
	}

	assert.LessOrEqual(t, maxInFlight.Load(), int32(2))
}

func TestGetLastSynchronizationsEmpty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	results, err := client.GetLastSynchronizations(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestGetLastSynchronizationsCancelled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := client.GetLastSynchronizations(ctx, []string{"acc-1"})
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, results)
}
