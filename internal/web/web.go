// Package web holds the embedded browser frontend.
package web

import _ "embed"

// IndexHTML is the entry page served at "/".
//
//go:embed index.html
var IndexHTML []byte
