package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

// The backend nests payloads inconsistently across endpoints. Rather than
// probing shapes ad hoc at every call site, the decoders below try a fixed
// fallback order; the order is part of this package's contract and is
// covered by tests.

// ErrNoPayload is returned when none of the known envelope shapes matched.
var ErrNoPayload = errors.New("response matched no known payload shape")

type envelope map[string]json.RawMessage

func parseEnvelope(payload []byte) envelope {
	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil
	}
	return env
}

func isArray(raw json.RawMessage) bool {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			return b == '['
		}
	}
	return false
}

// decodeList extracts a list payload, trying in order:
//  1. a bare top-level array,
//  2. the "data" key when it holds an array,
//  3. the resource key (e.g. "products") when it holds an array,
//  4. "data.<resource key>".
func decodeList(payload []byte, key string, out any) error {
	if isArray(payload) {
		return json.Unmarshal(payload, out)
	}
	env := parseEnvelope(payload)
	if env == nil {
		return ErrNoPayload
	}
	if raw, ok := env["data"]; ok && isArray(raw) {
		return json.Unmarshal(raw, out)
	}
	if raw, ok := env[key]; ok && isArray(raw) {
		return json.Unmarshal(raw, out)
	}
	if raw, ok := env["data"]; ok {
		if inner := parseEnvelope(raw); inner != nil {
			if nested, ok := inner[key]; ok && isArray(nested) {
				return json.Unmarshal(nested, out)
			}
		}
	}
	return fmt.Errorf("list %q: %w", key, ErrNoPayload)
}

// decodeObject extracts a single-object payload, trying in order:
//  1. the "data" key when it holds an object,
//  2. the resource key,
//  3. the bare top-level object.
func decodeObject(payload []byte, key string, out any) error {
	env := parseEnvelope(payload)
	if env == nil {
		return ErrNoPayload
	}
	if raw, ok := env["data"]; ok && !isArray(raw) {
		if inner := parseEnvelope(raw); inner != nil {
			// A data envelope may itself wrap the resource key.
			if nested, ok := inner[key]; ok {
				return json.Unmarshal(nested, out)
			}
			return json.Unmarshal(raw, out)
		}
	}
	if raw, ok := env[key]; ok {
		return json.Unmarshal(raw, out)
	}
	return json.Unmarshal(payload, out)
}

// errorMessage digs a human-readable message out of an error response,
// trying "error.message", a bare-string "error", then "message".
func errorMessage(payload []byte) string {
	env := parseEnvelope(payload)
	if env == nil {
		return ""
	}
	if raw, ok := env["error"]; ok {
		if inner := parseEnvelope(raw); inner != nil {
			if msg, ok := inner["message"]; ok {
				var s string
				if json.Unmarshal(msg, &s) == nil {
					return s
				}
			}
		}
		var s string
		if json.Unmarshal(raw, &s) == nil {
			return s
		}
	}
	if raw, ok := env["message"]; ok {
		var s string
		if json.Unmarshal(raw, &s) == nil {
			return s
		}
	}
	return ""
}
