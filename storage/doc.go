// Package storage persists enrolled users in SQLite: one row per user with
// the Teller access token and bookkeeping timestamps. Schema changes ship
// as embedded golang-migrate migrations applied on startup.
package storage
