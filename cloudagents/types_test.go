package cloudagents

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectAccessors(t *testing.T) {
	var obj Object
	err := json.Unmarshal([]byte(`{"id":"acc-1","state":6,"ratio":0.5,"flag":true}`), &obj)
	assert.NoError(t, err)

	assert.Equal(t, "acc-1", obj.ID())
	assert.Equal(t, "6", obj.String("state"))
	assert.Equal(t, "0.5", obj.String("ratio"))
	assert.Equal(t, "true", obj.String("flag"))
	assert.Equal(t, "", obj.String("missing"))

	state, ok := obj.Int("state")
	assert.True(t, ok)
	assert.Equal(t, SyncStateCompleted, SynchronizationState(state))

	_, ok = obj.Int("id")
	assert.False(t, ok)
}

func TestQueryOmitsAbsentValues(t *testing.T) {
	q := query{}.
		addString("country", "PT").
		addString("culture", "").
		addInt("skip", nil).
		addInt("take", Int(0)).
		addBool("pendingOnly", nil).
		addBool("includeContent", Bool(false))

	assert.Equal(t, "country=PT&includeContent=false&take=0", q.values().Encode())
	assert.Empty(t, query{}.values().Encode())
}

func TestResourcePath(t *testing.T) {
	assert.Equal(t, "/accounts/acc-1/synchronizations/last", resourcePath("accounts", "acc-1", "synchronizations", "last"))
	assert.Equal(t, "/documents/a%20b", resourcePath("documents", "a b"))
}
