package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/cloudagents/cloudagents"
	"github.com/s0up4200/cloudagents/filter"
)

// fakeAPI serves scripted last synchronizations; other API methods are not used
type fakeAPI struct {
	cloudagents.API

	mu     sync.Mutex
	calls  int
	states map[string][]int
}

func (f *fakeAPI) GetLastSynchronizations(ctx context.Context, accountIDs []string) ([]cloudagents.LastSynchronizationResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++

	results := make([]cloudagents.LastSynchronizationResult, len(accountIDs))
	for i, id := range accountIDs {
		results[i].AccountID = id
		script := f.states[id]
		if len(script) == 0 {
			results[i].Err = errors.New("no such account")
			continue
		}
		state := script[0]
		if len(script) > 1 {
			f.states[id] = script[1:]
		}
		results[i].Synchronization = cloudagents.Object{
			"id":                          "sync-" + id,
			"synchronizationState":        float64(state),
			"synchronizationStateDetails": float64(2),
		}
	}
	return results, nil
}

func TestWatchSynchronizations(t *testing.T) {
	api := &fakeAPI{states: map[string][]int{
		"acc-1": {1, 2, 6},
		"acc-2": {5},
	}}

	var out bytes.Buffer
	err := watchSynchronizations(context.Background(), &out, api, []string{"acc-1", "acc-2"}, time.Millisecond)
	require.NoError(t, err)

	assert.Equal(t, 3, api.calls)
	output := out.String()
	assert.Contains(t, output, "Created / Completed")
	assert.Contains(t, output, "Running / Completed")
	assert.Contains(t, output, "Completed / Completed")
	assert.Contains(t, output, "PendingAcknowledgement / Completed")
	assert.Equal(t, 1, strings.Count(output, "acc-2"), "unchanged states are printed once")
}

func TestWatchSynchronizationsTimeout(t *testing.T) {
	api := &fakeAPI{states: map[string][]int{
		"acc-1": {2},
	}}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := watchSynchronizations(ctx, io.Discard, api, []string{"acc-1"}, 5*time.Millisecond)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "gave up waiting for 1 accounts")
}

func TestGetFilter(t *testing.T) {
	t.Cleanup(func() {
		filterExpr, preset, presets = "", "", nil
	})

	presets = filter.NewManager()
	require.NoError(t, presets.RegisterFilter("completed", `synchronizationState == 6`))

	objects := []cloudagents.Object{
		{"id": "s1", "synchronizationState": float64(6)},
		{"id": "s2", "synchronizationState": float64(2)},
	}

	f, err := getFilter()
	require.NoError(t, err)
	assert.Nil(t, f)

	preset = "completed"
	f, err = getFilter()
	require.NoError(t, err)
	matches := filter.Apply(f, objects)
	require.Len(t, matches, 1)
	assert.Equal(t, "s1", matches[0].ID())

	// --filter wins over --preset
	filterExpr = `synchronizationState == 2`
	f, err = getFilter()
	require.NoError(t, err)
	matches = filter.Apply(f, objects)
	require.Len(t, matches, 1)
	assert.Equal(t, "s2", matches[0].ID())

	filterExpr = ""
	preset = "missing"
	_, err = getFilter()
	assert.ErrorIs(t, err, filter.ErrUnknownPreset)
}

func TestReadPayload(t *testing.T) {
	t.Cleanup(func() {
		payloadData, payloadFile = "", ""
	})

	payloadData = `{"name":"Home","agentId":"agent-1"}`
	payload, err := readPayload(accountsCreateCmd)
	require.NoError(t, err)
	assert.Equal(t, "Home", payload["name"])

	payloadData = `[1,2]`
	_, err = readPayload(accountsCreateCmd)
	assert.ErrorContains(t, err, "not a JSON object")

	payloadData = ""
	path := filepath.Join(t.TempDir(), "account.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"agentId":"agent-2"}`), 0o600))
	payloadFile = path
	payload, err = readPayload(accountsCreateCmd)
	require.NoError(t, err)
	assert.Equal(t, "agent-2", payload["agentId"])

	payloadData = `{}`
	_, err = readPayload(accountsCreateCmd)
	assert.ErrorContains(t, err, "not both")

	payloadData, payloadFile = "", ""
	_, err = readPayload(accountsCreateCmd)
	assert.ErrorContains(t, err, "payload is required")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ééééééé...", truncate(strings.Repeat("é", 12), 10))
}

// runCLI executes the root command against a fake API server
func runCLI(t *testing.T, handler http.HandlerFunc, stdin string, args ...string) (string, error) {
	t.Helper()

	stdout, _, err := runCLIWithLogs(t, handler, stdin, args...)
	return stdout, err
}

// runCLIWithLogs is runCLI that also returns what was logged to stderr
func runCLIWithLogs(t *testing.T, handler http.HandlerFunc, stdin string, args ...string) (string, string, error) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := fmt.Sprintf(`api:
  url: %s/api/v1
auth:
  strategy: basic
  username: username
  secret: password
presets:
  pending: synchronizationState == 5
logging:
  level: error
  color: false
`, server.URL)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--config", path}, args...))
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
		// flag values and their Changed state outlive Execute
		debug, jsonOutput = false, false
		rootCmd.PersistentFlags().Lookup("debug").Changed = false
		rootCmd.PersistentFlags().Lookup("json").Changed = false
	})

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestCLIAccountsListWithFilter(t *testing.T) {
	t.Cleanup(func() { filterExpr = "" })

	var authorization, path string
	output, err := runCLI(t, func(w http.ResponseWriter, r *http.Request) {
		authorization = r.Header.Get("Authorization")
		path = r.URL.Path
		w.Write([]byte(`[
			{"id":"acc-1","name":"EDF Home","agentId":"agent-1","customerUserId":"u1"},
			{"id":"acc-2","name":"Orange","agentId":"agent-2","customerUserId":"u1"}
		]`))
	}, "", "accounts", "list", "--filter", `hasText(name, "edf")`)
	require.NoError(t, err)

	assert.Equal(t, "Basic dXNlcm5hbWU6cGFzc3dvcmQ=", authorization)
	assert.Equal(t, "/api/v1/accounts", path)
	assert.Contains(t, output, "acc-1")
	assert.NotContains(t, output, "acc-2")
	assert.Contains(t, output, "1 of 2 shown")
}

func TestCLIAccountsDeleteConfirmation(t *testing.T) {
	var deletes int
	handler := func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			deletes++
		}
		w.WriteHeader(http.StatusNoContent)
	}

	output, err := runCLI(t, handler, "n\n", "accounts", "delete", "acc-1")
	require.NoError(t, err)
	assert.Contains(t, output, "Deletion cancelled.")
	assert.Equal(t, 0, deletes)

	output, err = runCLI(t, handler, "y\n", "accounts", "delete", "acc-1")
	require.NoError(t, err)
	assert.Contains(t, output, "Account acc-1 deleted")
	assert.Equal(t, 1, deletes)
}

func TestCLITestReportsRejectedCredentials(t *testing.T) {
	_, err := runCLI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"invalid credentials"}`))
	}, "", "test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "credentials rejected")

	apiErr, ok := cloudagents.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "invalid credentials", apiErr.Message)
}

func TestCLIDebugFlagDumpsRequests(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"c1","name":"Energy"}]`))
	}

	_, logs, err := runCLIWithLogs(t, handler, "", "categories")
	require.NoError(t, err)
	assert.NotContains(t, logs, "HTTP request", "no dumps without --debug")

	_, logs, err = runCLIWithLogs(t, handler, "", "--debug", "categories")
	require.NoError(t, err)
	assert.Contains(t, logs, "HTTP request")
	assert.Contains(t, logs, "HTTP response")
	assert.Contains(t, logs, "/api/v1/categories")
	assert.Contains(t, logs, "[REDACTED]")
	assert.NotContains(t, logs, "dXNlcm5hbWU6cGFzc3dvcmQ=")
}

func TestCLISyncsLastJSONReportsFailures(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "/accounts/missing/") {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"account not found"}`))
			return
		}
		w.Write([]byte(`{"id":"sync-1","synchronizationState":6}`))
	}

	output, err := runCLI(t, handler, "", "--json", "syncs", "last", "acc-1", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 accounts failed")
	assert.Contains(t, output, `"sync-1"`)
	assert.Contains(t, output, "account not found")

	output, err = runCLI(t, handler, "", "--json", "syncs", "last", "acc-1")
	require.NoError(t, err)
	assert.Contains(t, output, `"acc-1"`)
}
