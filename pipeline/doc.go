// Package pipeline orchestrates the two-level Teller fan-out (accounts,
// then per-account transactions) and normalizes the heterogeneous upstream
// records into the flat shape downstream budgeting logic consumes.
package pipeline
