package interfaces

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUserIDDefaultsWhenBlank(t *testing.T) {
	assert.Equal(t, DefaultUserID, NewUserID(""))
	assert.Equal(t, UserID("u1"), NewUserID("u1"))
}

func TestAccountDisplayNameFallbacks(t *testing.T) {
	assert.Equal(t, "Checking", Account{ID: "a1", Name: "Checking", Type: "depository"}.DisplayName())
	assert.Equal(t, "depository", Account{ID: "a1", Type: "depository"}.DisplayName())
	assert.Equal(t, "Teller Account", Account{ID: "a1"}.DisplayName())
}

func TestNormalizedTransactionWireShape(t *testing.T) {
	record := NormalizedTransaction{
		ExternalID:  "t1",
		AccountID:   "a1",
		AccountName: "Checking",
		Amount:      json.Number("-5"),
		Date:        "2024-01-01",
		Description: "Coffee",
	}

	data, err := json.Marshal(record)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	// Absent category and note must serialize as explicit nulls.
	assert.Contains(t, decoded, "category")
	assert.Nil(t, decoded["category"])
	assert.Contains(t, decoded, "note")
	assert.Nil(t, decoded["note"])
	assert.Equal(t, "t1", decoded["external_id"])
}

func TestTransactionDecodesNestedDetails(t *testing.T) {
	raw := `{"id":"t1","amount":-12.5,"date":"2024-01-02","details":{"processing_status":"pending","counterparty":{"name":"Acme"}}}`

	var txn Transaction
	require.NoError(t, json.Unmarshal([]byte(raw), &txn))

	assert.Equal(t, json.Number("-12.5"), txn.Amount)
	require.NotNil(t, txn.Details)
	assert.Equal(t, "pending", txn.Details.ProcessingStatus)
	require.NotNil(t, txn.Details.Counterparty)
	assert.Equal(t, "Acme", txn.Details.Counterparty.Name)
}
