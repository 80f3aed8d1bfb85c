/*
Package httpserver implements the HTTP surface of the Teller gateway.

It exposes the enrollment and aggregation endpoints behind a shared API key
and a runtime-config gate, plus the usual health and drain endpoints and a
separate Prometheus metrics listener.

# Endpoints

  - GET / - Liveness; reports the service name
  - GET /healthz - Reports whether required runtime configuration is present
  - POST /teller/enroll - Store a user's Teller access token (API key required)
  - GET /teller/transactions - Aggregated normalized transactions (API key required)
  - GET /livez - Liveness check
  - GET /readyz - Readiness check
  - GET /drain - Gracefully mark server as not ready
  - GET /undrain - Mark server as ready

# Error mapping

Business errors are caught at this boundary and mapped to a JSON
{"error": message} body: bad or missing API key is 401 (a missing
server-side key is itself a 500), missing required input 400, no enrollment
404, and secret store, document store, or upstream failures 500 with the
cause folded into the message. Nothing crashes the process.
*/
package httpserver
