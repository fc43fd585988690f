// Package utils provides common conversion helpers shared by the table layer,
// the change set logic and the editor's form handling.
package utils
