package cloudagents

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// Object is a decoded JSON object returned by the API. The client does not
// interpret resource payloads beyond decoding them.
type Object map[string]any

// ID returns the "id" field as a string
func (o Object) ID() string {
	return o.String("id")
}

// String returns the named field formatted as a string, or "" when absent
func (o Object) String(key string) string {
	switch v := o[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// Int returns the named field as an int when it holds a JSON number
func (o Object) Int(key string) (int, bool) {
	switch v := o[key].(type) {
	case float64:
		return int(v), true
	case json.Number:
		n, err := v.Int64()
		return int(n), err == nil
	default:
		return 0, false
	}
}

// Int returns a pointer to v, for optional query parameters
func Int(v int) *int { return &v }

// Bool returns a pointer to v, for optional query parameters
func Bool(v bool) *bool { return &v }

// CategoriesOptions filters GetCategories
type CategoriesOptions struct {
	Culture string
}

// AgentsOptions filters GetAgents
type AgentsOptions struct {
	IncludeLogo *bool
	Culture     string
}

// SearchAgentsOptions filters SearchAgents
type SearchAgentsOptions struct {
	Country string
	Culture string
	Query   string
}

// AccountsOptions filters GetAllAccounts and SearchAccounts
type AccountsOptions struct {
	AgentID        string
	CustomerUserID string
	Skip           *int
	Take           *int
}

// PageOptions selects a window of a list endpoint
type PageOptions struct {
	Skip *int
	Take *int
}

// DateRange bounds GetSynchronizationsByAccount. Dates are passed through
// to the API unchanged.
type DateRange struct {
	StartDate string
	EndDate   string
}

// SearchSynchronizationsOptions filters SearchSynchronizations
type SearchSynchronizationsOptions struct {
	CustomerAccountID string
	CustomerUserID    string
	StartDate         string
	EndDate           string
	Skip              *int
	Take              *int
}

// SearchDocumentsOptions filters SearchDocuments
type SearchDocumentsOptions struct {
	CustomerAccountID string
	CustomerUserID    string
	PendingOnly       *bool
	IncludeContent    *bool
}

// DocumentsOptions filters GetDocumentsByAccount
type DocumentsOptions struct {
	PendingOnly    *bool
	IncludeContent *bool
}

// query collects optional parameters, dropping absent ones
type query url.Values

func (q query) addString(key, value string) query {
	if value != "" {
		url.Values(q).Set(key, value)
	}
	return q
}

func (q query) addInt(key string, value *int) query {
	if value != nil {
		url.Values(q).Set(key, strconv.Itoa(*value))
	}
	return q
}

func (q query) addBool(key string, value *bool) query {
	if value != nil {
		url.Values(q).Set(key, strconv.FormatBool(*value))
	}
	return q
}

func (q query) values() url.Values {
	return url.Values(q)
}
