// Package registry holds the documents that parameter references resolve
// against: the root API document under the reserved identifier "#" and any
// number of auxiliary schema documents under their own identifiers.
//
// A Registry is immutable once built. Construct it before serving traffic
// and share it freely between goroutines.
package registry

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/erraggy/oasparams/internal/pathutil"
	"github.com/erraggy/oasparams/oaserrors"
)

// RootID is the identifier the root API document is registered under.
const RootID = pathutil.RootID

// MaxRefDepth is the maximum number of $ref hops followed when a resolved
// declaration is itself a reference.
const MaxRefDepth = 100

// Registry maps schema identifiers to documents.
type Registry struct {
	docs map[string]any
}

// New creates a Registry with api as the root document and schemas as
// auxiliary documents keyed by identifier. Identifiers are stored as given;
// lookups tolerate a trailing '#' on either side.
//
// A nil api is replaced by an empty document so that the root identifier is
// always present.
func New(api map[string]any, schemas map[string]any) (*Registry, error) {
	if api == nil {
		api = map[string]any{}
	}
	docs := make(map[string]any, len(schemas)+1)
	for _, id := range slices.Sorted(maps.Keys(schemas)) {
		if id == "" || id == RootID {
			return nil, &oaserrors.ConfigError{
				Option:  "schemas",
				Value:   id,
				Message: "auxiliary schema identifier is reserved",
			}
		}
		if bare := strings.TrimSuffix(id, "#"); bare != id {
			if _, dup := schemas[bare]; dup {
				return nil, &oaserrors.ConfigError{
					Option:  "schemas",
					Value:   id,
					Message: fmt.Sprintf("identifier collides with %q", bare),
				}
			}
		}
		docs[id] = schemas[id]
	}
	docs[RootID] = api
	return &Registry{docs: docs}, nil
}

// Root returns the root API document.
func (r *Registry) Root() map[string]any {
	root, _ := r.docs[RootID].(map[string]any)
	return root
}

// Definitions returns the root document's "definitions" map, or nil.
func (r *Registry) Definitions() map[string]any {
	defs, _ := r.Root()["definitions"].(map[string]any)
	return defs
}

// Lookup returns the document registered under id. Both "id#" and "id"
// forms are accepted.
func (r *Registry) Lookup(id string) (any, bool) {
	if id == "" {
		id = RootID
	}
	if doc, ok := r.docs[id]; ok {
		return doc, true
	}
	if trimmed := strings.TrimSuffix(id, "#"); trimmed != id && trimmed != "" {
		doc, ok := r.docs[trimmed]
		return doc, ok
	}
	doc, ok := r.docs[id+"#"]
	return doc, ok
}

// Auxiliary returns the auxiliary documents keyed by identifier with any
// trailing '#' removed. The root document is not included.
func (r *Registry) Auxiliary() map[string]any {
	out := make(map[string]any, len(r.docs)-1)
	for id, doc := range r.docs {
		if id == RootID {
			continue
		}
		out[strings.TrimSuffix(id, "#")] = doc
	}
	return out
}

// IDs returns the registered identifiers in sorted order, root first.
func (r *Registry) IDs() []string {
	ids := slices.Sorted(maps.Keys(r.docs))
	ids = slices.DeleteFunc(ids, func(id string) bool { return id == RootID })
	return append([]string{RootID}, ids...)
}

// Resolve returns the fragment ref points at.
//
// Accepted forms are "<id>#<pointer>", "#<pointer>" and "<pointer>" (root
// relative). Resolution fails with a *oaserrors.ReferenceError when the
// identifier is unknown, a path segment is missing, or a non-container value
// is met before the pointer is exhausted.
func (r *Registry) Resolve(ref string) (any, error) {
	id, pointer := pathutil.SplitRef(ref)
	if id == "" {
		id = RootID
	}

	doc, ok := r.Lookup(id)
	if !ok || doc == nil {
		return nil, &oaserrors.ReferenceError{
			Ref:        ref,
			ID:         id,
			IsNotFound: true,
			Message:    fmt.Sprintf("no schema registered for %q", id),
		}
	}

	tokens := pathutil.Tokens(pointer)
	fragment, failedAt, ok := pathutil.Lookup(doc, tokens)
	if !ok {
		if !isContainer(fragment) {
			return nil, &oaserrors.ReferenceError{
				Ref:        ref,
				ID:         id,
				IsNotFound: true,
				Message: fmt.Sprintf("cannot traverse into %T at %s#%s",
					fragment, strings.TrimSuffix(id, "#"), pathutil.Pointer(tokens[:failedAt])),
			}
		}
		return nil, &oaserrors.ReferenceError{
			Ref:        ref,
			ID:         id,
			IsNotFound: true,
			Message:    fmt.Sprintf("missing key: %s", tokens[failedAt]),
		}
	}
	if fragment == nil {
		return nil, &oaserrors.ReferenceError{
			Ref:        ref,
			ID:         id,
			IsNotFound: true,
			Message:    "reference resolves to null",
		}
	}
	return fragment, nil
}

// ResolveObject resolves ref and follows further "$ref" members of the
// resolved object until a concrete object is reached. It fails on circular
// chains and on chains longer than MaxRefDepth.
func (r *Registry) ResolveObject(ref string) (map[string]any, error) {
	seen := make(map[string]bool)
	current := ref
	for depth := 0; ; depth++ {
		if depth >= MaxRefDepth {
			return nil, &oaserrors.ResourceLimitError{
				ResourceType: "ref_depth",
				Limit:        MaxRefDepth,
				Actual:       int64(depth + 1),
				Message:      "while resolving " + ref,
			}
		}
		if seen[current] {
			return nil, &oaserrors.ReferenceError{Ref: current, IsCircular: true}
		}
		seen[current] = true

		fragment, err := r.Resolve(current)
		if err != nil {
			return nil, err
		}
		obj, ok := fragment.(map[string]any)
		if !ok {
			return nil, &oaserrors.ReferenceError{
				Ref:     current,
				Message: fmt.Sprintf("resolved fragment is %T, not an object", fragment),
			}
		}
		next, ok := obj["$ref"].(string)
		if !ok {
			return obj, nil
		}
		current = qualify(current, next)
	}
}

// qualify makes a root-relative "#..." reference found inside an auxiliary
// document relative to that document.
func qualify(from, next string) string {
	if !strings.HasPrefix(next, "#") {
		return next
	}
	id, _ := pathutil.SplitRef(from)
	if id == "" || id == RootID {
		return next
	}
	return strings.TrimSuffix(id, "#") + next
}

func isContainer(v any) bool {
	switch v.(type) {
	case map[string]any, []any:
		return true
	default:
		return false
	}
}
