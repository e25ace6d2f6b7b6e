// Copyright 2024 Erraggy
// SPDX-License-Identifier: MIT

package pathutil

// RootID is the registry identifier of the root API document.
const RootID = "#"

// RefPrefixParameters prefixes references to root parameter declarations.
const RefPrefixParameters = "#/parameters/"

// ParameterRef builds "#/parameters/{name}".
func ParameterRef(name string) string {
	return RefPrefixParameters + Escape(name)
}
