// Package httputil holds the HTTP vocabulary of Swagger 2.0 documents:
// operation methods and media types.
package httputil

import (
	"fmt"
	"mime"
	"strings"
)

// Operation methods of a Swagger 2.0 path item, lowercase as they appear
// in the document.
const (
	MethodGet     = "get"
	MethodPut     = "put"
	MethodPost    = "post"
	MethodDelete  = "delete"
	MethodOptions = "options"
	MethodHead    = "head"
	MethodPatch   = "patch"
)

// Methods lists the operation methods in document order.
var Methods = []string{MethodGet, MethodPut, MethodPost, MethodDelete, MethodOptions, MethodHead, MethodPatch}

// IsValidMediaType validates a media type string according to RFC 2045/2046.
// Handles wildcards (*/* and type/*) and prevents invalid combinations (*/subtype).
func IsValidMediaType(mediaType string) bool {
	if mediaType == "*/*" {
		return true
	}
	if typ, ok := strings.CutSuffix(mediaType, "/*"); ok {
		return typ != "" && typ != "*" && !strings.Contains(typ, "/")
	}
	parsed, _, err := mime.ParseMediaType(mediaType)
	if err != nil {
		return false
	}
	typ, sub, ok := strings.Cut(parsed, "/")
	return ok && typ != "" && sub != "" && typ != "*" && sub != "*"
}

// CheckMediaTypes returns an error naming the first invalid media type.
func CheckMediaTypes(mediaTypes []string) error {
	for _, mt := range mediaTypes {
		if !IsValidMediaType(mt) {
			return fmt.Errorf("invalid media type %q", mt)
		}
	}
	return nil
}
