// Package httputil provides HTTP method, status code and media type helpers
// shared by the document loader and the playground.
package httputil

import (
	"mime"
	"strconv"
	"strings"
)

// HTTP Status Code Constants
const (
	StatusCodeLength = 3   // Standard length of HTTP status codes (e.g., "200", "404")
	MinStatusCode    = 100 // Minimum valid HTTP status code
	MaxStatusCode    = 599 // Maximum valid HTTP status code
	WildcardChar     = 'X' // Wildcard character used in status code patterns (e.g., "2XX")
	DefaultResponse  = "default"
)

// HTTP Method Constants, lowercase as they appear as path item keys.
const (
	MethodGet     = "get"
	MethodPut     = "put"
	MethodPost    = "post"
	MethodDelete  = "delete"
	MethodOptions = "options"
	MethodHead    = "head"
	MethodPatch   = "patch"
	MethodTrace   = "trace"
)

// Methods lists the operation keys of a path item in documentation order.
var Methods = []string{
	MethodGet, MethodPut, MethodPost, MethodDelete,
	MethodOptions, MethodHead, MethodPatch, MethodTrace,
}

// NormalizeMethod lowercases method and reports whether it names an
// OpenAPI operation.
func NormalizeMethod(method string) (string, bool) {
	m := strings.ToLower(strings.TrimSpace(method))
	for _, known := range Methods {
		if m == known {
			return m, true
		}
	}
	return m, false
}

// HasBody reports whether requests with method conventionally carry a body.
// Playground requests for other methods move parameters into the query.
func HasBody(method string) bool {
	switch strings.ToLower(method) {
	case MethodGet, MethodHead, MethodOptions, MethodTrace:
		return false
	}
	return true
}

// ValidateStatusCode checks if a response key is a status code.
// Valid values are:
//   - "default" for default response
//   - Wildcard patterns: 1XX, 2XX, 3XX, 4XX, 5XX
//   - Numeric codes: 100-599
func ValidateStatusCode(code string) bool {
	if code == DefaultResponse {
		return true
	}
	if len(code) != StatusCodeLength {
		return false
	}
	if code[1] == WildcardChar && code[2] == WildcardChar {
		return code[0] >= '1' && code[0] <= '5'
	}
	for i := 0; i < StatusCodeLength; i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	statusCode, err := strconv.Atoi(code)
	return err == nil && statusCode >= MinStatusCode && statusCode <= MaxStatusCode
}

// IsSuccessCode reports whether code is a 2xx code or the 2XX wildcard.
func IsSuccessCode(code string) bool {
	return len(code) == StatusCodeLength && code[0] == '2' && ValidateStatusCode(code)
}

// IsJSONMediaType reports whether mediaType is application/json or a
// structured "+json" type such as application/problem+json.
func IsJSONMediaType(mediaType string) bool {
	mt, _, err := mime.ParseMediaType(mediaType)
	if err != nil {
		return false
	}
	return mt == "application/json" || (strings.HasPrefix(mt, "application/") && strings.HasSuffix(mt, "+json"))
}

// MediaTypeForm is the media type of URL-encoded form bodies.
const MediaTypeForm = "application/x-www-form-urlencoded"

// IsFormMediaType reports whether mediaType is a URL-encoded form.
func IsFormMediaType(mediaType string) bool {
	mt, _, err := mime.ParseMediaType(mediaType)
	return err == nil && mt == MediaTypeForm
}

// IsTextMediaType reports whether mediaType is a text/* type.
func IsTextMediaType(mediaType string) bool {
	mt, _, err := mime.ParseMediaType(mediaType)
	return err == nil && strings.HasPrefix(mt, "text/")
}
