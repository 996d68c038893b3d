package api

// Request represents one outbound API call.
type Request struct {
	Method      string
	Path        string
	QueryParams map[string]string
	Headers     map[string]string
	ReqBodyObj  interface{}
	SuccessCode int
	RespObj     interface{}
	// Unauthenticated marks requests that must be sent without credentials.
	// The zero value requires authentication; only login, signup, and token
	// refresh opt out.
	Unauthenticated bool
}
