// Package editor is the browser surface of the table editor.
//
// Each browser session owns a Workspace holding the snapshot it edits, the
// change set waiting for confirmation and the result of the last apply.
// A workspace moves between two states:
//
//	editing --Review (changes found)--> confirming
//	confirming --Confirm--> editing (table written, snapshot reloaded)
//	confirming --Cancel--> editing (changes dropped)
//
// Leaving the confirming state bumps the grid instance id, so forms rendered
// before that are rejected with 409 instead of being applied to the wrong rows.
//
// # HTTP Endpoints
//
//   - GET /editor : the grid page.
//   - POST /editor/review, /editor/confirm, /editor/cancel : form actions, 303 back to /editor.
//   - GET /api/editor/snapshot : workspace state as JSON.
//   - POST /api/editor/review : body is a sparse change description.
//   - POST /api/editor/confirm, /api/editor/cancel
//   - GET /api/editor/records : current rows of the table.
//   - GET /api/editor/history, /api/editor/history/{key} : archived change sets.
//
// Applied change sets are archived as JSON objects when object storage is enabled.
package editor
