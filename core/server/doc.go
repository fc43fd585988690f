// Package server holds the HTTP server configuration.
//
// While the start command handles the server startup, this package defines the
// configuration structure and its validation: listen port, the API key guarding
// the JSON API, and the idle lifetime of editor sessions.
package server
