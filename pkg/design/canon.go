// Package design implements the parameter canonicalizer and the
// specialization cache / design-unit registry (C6, C7, C8 in spec.md
// §2/§4.6/§4.7), ported from the original Python frontend's
// DesignContext/Design/CompiledModule classes in
// _examples/original_source/compiler/frontend/pycircuit/design.py.
package design

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"math/big"

	json "github.com/segmentio/encoding/json"
)

// canonicalize validates v against the accepted parameter kinds of spec.md
// §3/§4.6 (null, bool, integer, string, ordered sequences, string-keyed
// maps) and returns a normalized value ready for deterministic JSON
// encoding. Any other Go kind is a DesignError{BadParamType}.
func canonicalize(v any) (any, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case bool:
		return t, nil
	case string:
		return t, nil
	case int:
		return int64(t), nil
	case int32:
		return int64(t), nil
	case int64:
		return t, nil
	case uint:
		return new(big.Int).SetUint64(uint64(t)), nil
	case uint64:
		return new(big.Int).SetUint64(t), nil
	case *big.Int:
		return t, nil
	case []any:
		out := make([]any, len(t))

		for i, e := range t {
			c, err := canonicalize(e)
			if err != nil {
				return nil, err
			}

			out[i] = c
		}

		return out, nil
	case map[string]any:
		out := make(map[string]any, len(t))

		for k, e := range t {
			c, err := canonicalize(e)
			if err != nil {
				return nil, err
			}

			out[k] = c
		}

		return out, nil
	default:
		return nil, &DesignError{Kind: BadParamType, Detail: "unsupported parameter type for canonicalization"}
	}
}

// CanonicalJSON renders params as deterministic, key-sorted, compact JSON
// text (spec.md §4.6). It uses segmentio/encoding/json, a drop-in
// encoding/json-compatible encoder which — like the standard library —
// emits map[string]T keys in sorted order, so no custom key-sort pass is
// needed beyond what canonicalize already guarantees recursively.
func CanonicalJSON(params map[string]any) (string, error) {
	norm, err := canonicalize(params)
	if err != nil {
		return "", err
	}

	if norm == nil {
		norm = map[string]any{}
	}

	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(norm); err != nil {
		return "", &DesignError{Kind: BadParamType, Detail: "failed to encode canonical params: " + err.Error()}
	}

	// Encode appends a trailing newline; strip it to match "compact
	// separators and no insignificant whitespace" (spec.md §3).
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// Hash8 returns the first 8 lowercase hex digits of the SHA-256 of text
// (spec.md §4.6's "short hash").
func Hash8(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])[:8]
}

// CombinedCacheSignature produces the canonical text used to derive a
// specialization's predicted symbol name, combining the params and port
// spec documents the way design.py's specialize() does (a small JSON object
// with "params" and "ports" keys over the two already-canonical values).
func CombinedCacheSignature(paramsJSON, portsJSON string) (string, error) {
	var paramsVal, portsVal any

	if err := json.Unmarshal([]byte(paramsJSON), &paramsVal); err != nil {
		return "", err
	}

	if err := json.Unmarshal([]byte(portsJSON), &portsVal); err != nil {
		return "", err
	}

	combined := map[string]any{"params": paramsVal, "ports": portsVal}

	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(combined); err != nil {
		return "", err
	}

	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}
