// Package fingerprint hashes scraped roster payloads so re-deliveries of an
// unchanged row can be detected cheaply at the staging layer.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
)

// Generate creates a deterministic fingerprint for a decoded payload.
// The fingerprint is a SHA256 hash of the canonicalized JSON.
func Generate(data map[string]any) string {
	hash := sha256.Sum256([]byte(canonicalize(data)))
	return hex.EncodeToString(hash[:])
}

// GenerateFromJSON creates a fingerprint from a raw JSON payload. Key order
// in the input does not affect the result.
func GenerateFromJSON(data json.RawMessage) (string, error) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return "", err
	}
	return Generate(m), nil
}

// canonicalize builds a deterministic string representation by sorting map
// keys and recursing into nested structures.
func canonicalize(data any) string {
	switch v := data.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		result := "{"
		for i, k := range keys {
			if i > 0 {
				result += ","
			}
			keyJSON, _ := json.Marshal(k)
			result += string(keyJSON) + ":" + canonicalize(v[k])
		}
		return result + "}"

	case []any:
		result := "["
		for i, item := range v {
			if i > 0 {
				result += ","
			}
			result += canonicalize(item)
		}
		return result + "]"

	default:
		b, _ := json.Marshal(v)
		return string(b)
	}
}
