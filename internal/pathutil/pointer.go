// Copyright 2024 Erraggy
// SPDX-License-Identifier: MIT

package pathutil

import (
	"strconv"
	"strings"
)

// SplitRef splits a reference into its registry identifier and JSON pointer.
// The identifier keeps its trailing '#' so both "id#" and "id" registrations
// can be tried by the caller. A reference without '#' has no identifier and
// is treated as a root-relative pointer.
//
//	SplitRef("pets.json#/definitions/Pet") // "pets.json#", "/definitions/Pet"
//	SplitRef("#/parameters/id")            // "#", "/parameters/id"
//	SplitRef("/parameters/id")             // "", "/parameters/id"
func SplitRef(ref string) (id, pointer string) {
	idx := strings.IndexByte(ref, '#')
	if idx < 0 {
		return "", ref
	}
	return ref[:idx+1], ref[idx+1:]
}

// Tokens splits a JSON pointer into unescaped reference tokens.
// The empty segment produced by the leading '/' is dropped, so "" and "/"
// both yield no tokens.
func Tokens(pointer string) []string {
	pointer = strings.TrimPrefix(pointer, "/")
	if pointer == "" {
		return nil
	}
	parts := strings.Split(pointer, "/")
	for i, part := range parts {
		parts[i] = Unescape(part)
	}
	return parts
}

// Unescape decodes a single JSON pointer token (RFC 6901).
func Unescape(token string) string {
	token = strings.ReplaceAll(token, "~1", "/")
	token = strings.ReplaceAll(token, "~0", "~")
	return token
}

// Escape encodes a single JSON pointer token (RFC 6901).
func Escape(token string) string {
	token = strings.ReplaceAll(token, "~", "~0")
	token = strings.ReplaceAll(token, "/", "~1")
	return token
}

// Pointer joins tokens into an escaped JSON pointer. No tokens yields "".
func Pointer(tokens []string) string {
	if len(tokens) == 0 {
		return ""
	}
	var b strings.Builder
	for _, t := range tokens {
		b.WriteByte('/')
		b.WriteString(Escape(t))
	}
	return b.String()
}

// Lookup walks node one token at a time through map[string]any objects and
// []any arrays. On success it returns the addressed value and ok=true.
// On failure it returns the last reachable value and the index of the token
// that could not be followed.
func Lookup(node any, tokens []string) (value any, failedAt int, ok bool) {
	current := node
	for i, token := range tokens {
		switch v := current.(type) {
		case map[string]any:
			next, found := v[token]
			if !found {
				return current, i, false
			}
			current = next
		case []any:
			index, err := strconv.Atoi(token)
			if err != nil || index < 0 || index >= len(v) {
				return current, i, false
			}
			current = v[index]
		default:
			return current, i, false
		}
	}
	return current, -1, true
}
