// Package api contains the HTTP handlers for the library catalog: one
// handler type per resource plus the authentication endpoints. Handlers
// decode and validate request payloads, call into the store layer, and
// translate the outcome into the uniform response envelope.
package api
