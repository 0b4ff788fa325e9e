// Package web holds the panel document served at the root of the server.
package web

import _ "embed"

//go:embed index.html
var index []byte

// Index returns the panel document.
func Index() []byte {
	return index
}
