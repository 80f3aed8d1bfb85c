// Package transport provisions the shared mutual-TLS HTTP transport used
// for all outbound Teller calls. The transport is built once per process
// from two secrets, with concurrent first callers funneled through a single
// in-flight build.
package transport
