package interfaces

import (
	"encoding/json"
	"time"
)

// DefaultUserID is used when a request does not name a user.
const DefaultUserID UserID = "default"

// UserID identifies an enrolled user. An empty value is normalized to
// DefaultUserID by Normalize.
type UserID string

// NewUserID returns the given id, falling back to DefaultUserID when blank.
func NewUserID(raw string) UserID {
	if raw == "" {
		return DefaultUserID
	}
	return UserID(raw)
}

// String returns the raw identifier.
func (u UserID) String() string {
	return string(u)
}

// Credential is the per-user enrollment record: the Teller access token and
// its bookkeeping timestamps. Tokens are stored as-is; there is no deletion
// or expiry path.
type Credential struct {
	UserID      UserID
	AccessToken string
	UpdatedAt   time.Time
	CreatedAt   time.Time
}

// Account is a Teller account as returned by the upstream API. Only the
// fields the aggregation pipeline consumes are decoded.
type Account struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// DisplayName resolves the account's label: name, then type, then a generic
// fallback. First non-empty value wins.
func (a Account) DisplayName() string {
	if a.Name != "" {
		return a.Name
	}
	if a.Type != "" {
		return a.Type
	}
	return "Teller Account"
}

// Counterparty is the other side of a transaction, nested in the optional
// details object.
type Counterparty struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// TransactionDetails carries the optional nested detail object of an
// upstream transaction.
type TransactionDetails struct {
	ProcessingStatus string        `json:"processing_status"`
	Counterparty     *Counterparty `json:"counterparty"`
}

// Transaction is a Teller transaction in the upstream wire shape.
type Transaction struct {
	ID          string              `json:"id"`
	AccountID   string              `json:"account_id"`
	Amount      json.Number         `json:"amount"`
	Date        string              `json:"date"`
	Description string              `json:"description"`
	Status      string              `json:"status"`
	Details     *TransactionDetails `json:"details"`
}

// NormalizedTransaction is the flat output record consumed downstream.
// Category is always null at this stage; a later system fills it in.
type NormalizedTransaction struct {
	ExternalID  string      `json:"external_id"`
	AccountID   string      `json:"account_id"`
	AccountName string      `json:"account_name"`
	Amount      json.Number `json:"amount"`
	Date        string      `json:"date"`
	Description string      `json:"description"`
	Category    *string     `json:"category"`
	Note        *string     `json:"note"`
}
