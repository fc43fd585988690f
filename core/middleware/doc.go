// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation. The server applies it to the /api routes only,
//     the HTML editor is protected by its session.
//   - rayid: tags every request with a ray id, stored in the request locals and
//     echoed in the X-Ray-ID response header for tracing.
package middleware
