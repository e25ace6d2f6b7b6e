package mcpserver

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/erraggy/oasparams/internal/options"
	"github.com/erraggy/oasparams/loader"
)

// documentInput is a JSON or YAML document given either as a file on disk
// or inline. Exactly one of File or Content must be set.
type documentInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a JSON or YAML document on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline document content (JSON or YAML)"`
}

// schemaInput is an auxiliary schema document registered under ID.
type schemaInput struct {
	ID       string        `json:"id" jsonschema:"Identifier the document is registered under, used as the prefix of references into it"`
	Document documentInput `json:"document" jsonschema:"The auxiliary schema document"`
}

// cacheKey returns "" when the input cannot be cached.
func (d documentInput) cacheKey() string {
	switch {
	case d.File != "":
		abs, err := filepath.Abs(d.File)
		if err != nil {
			return ""
		}
		info, err := os.Stat(abs)
		if err != nil {
			return ""
		}
		return fmt.Sprintf("file:%s:%d", abs, info.ModTime().UnixNano())
	case d.Content != "":
		h := sha256.Sum256([]byte(d.Content))
		return "content:" + hex.EncodeToString(h[:])
	}
	return ""
}

// load decodes the document, consulting the cache when it is enabled.
// Cached documents are shared between calls and must not be modified.
func (d documentInput) load() (map[string]any, error) {
	if err := options.ExactlyOne("exactly one of file or content must be provided", d.File != "", d.Content != ""); err != nil {
		return nil, err
	}
	if int64(len(d.Content)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set OASPARAMS_MAX_INLINE_SIZE to increase",
			len(d.Content), cfg.MaxInlineSize)
	}

	var key string
	if cfg.CacheEnabled {
		key = d.cacheKey()
	}
	if key != "" {
		if doc := docCache.get(key); doc != nil {
			return doc.Data, nil
		}
	}

	var (
		doc *loader.Document
		err error
	)
	if d.File != "" {
		doc, err = loader.LoadFile(d.File)
	} else {
		doc, err = loader.LoadBytes([]byte(d.Content), "content")
	}
	if err != nil {
		return nil, err
	}
	if key != "" {
		docCache.put(key, doc, cfg.CacheTTL)
	}
	return doc.Data, nil
}
