// Package teller is the HTTP client for the Teller financial-data API.
// Every call rides the shared mutual-TLS transport and carries the user's
// stored access token as Basic auth with an empty password.
package teller
