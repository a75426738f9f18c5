package handlers

import "backend/internal/services"

// Package-level service instances wired at startup. Zero values fall back
// to the shared DB-backed repositories, which keeps handlers usable in
// isolation, but main wires the compensator in.
var (
	bookingSvc services.BookingService
	querySvc   services.QueryService
	docsSvc    services.DocsService
)

// ConfigureServices installs the service instances the handlers use.
func ConfigureServices(b services.BookingService, q services.QueryService, d services.DocsService) {
	bookingSvc = b
	querySvc = q
	docsSvc = d
}
