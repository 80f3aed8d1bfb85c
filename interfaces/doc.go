// Package interfaces defines the domain types and capability interfaces of
// the Teller gateway: the secret store, the shared mutual-TLS transport,
// the Teller API client, and the credential store, along with the sentinel
// errors used across package boundaries.
//
// Concrete implementations live in the secrets, transport, teller, and
// storage packages; consumers depend only on the interfaces defined here so
// they can be exercised against mocks in tests.
package interfaces
