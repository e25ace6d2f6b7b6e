// Copyright 2024 Erraggy
// SPDX-License-Identifier: MIT

// Package pathutil provides JSON Pointer helpers used to resolve $ref values
// against registered documents and to locate offending values inside
// validated data.
//
// References are split into a registry identifier and a pointer:
//
//	id, ptr := pathutil.SplitRef("#/parameters/id") // "#", "/parameters/id"
//	value, _, ok := pathutil.Lookup(doc, pathutil.Tokens(ptr))
//
// ParameterRef builds a local reference to a root parameter:
//
//	ref := pathutil.ParameterRef("limit") // "#/parameters/limit"
package pathutil
