package gateway

import "net/http"

// CORS headers set on every relayed response and on preflight answers.
const (
	AllowOrigin  = "*"
	AllowMethods = "GET,POST,OPTIONS"
	AllowHeaders = "content-type,authorization"
)

// ApplyCORS overwrites the CORS headers of h.
func ApplyCORS(h http.Header) {
	h.Set("Access-Control-Allow-Origin", AllowOrigin)
	h.Set("Access-Control-Allow-Methods", AllowMethods)
	h.Set("Access-Control-Allow-Headers", AllowHeaders)
}
