package common

// PackageName tags metrics and logs emitted by this service.
const PackageName = "teller-gateway"

// ServiceName is reported by the liveness endpoint.
const ServiceName = "familybudget-teller"

// Version is set at build time via -ldflags.
var Version = "dev"
