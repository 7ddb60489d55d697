package render

import (
	"encoding/json"
	"fmt"
	"sort"
)

// decodeLenient fills dst from body one top-level key at a time, so a
// malformed optional block degrades to a zero value instead of failing the
// whole payload. It returns the keys that could not be decoded.
func decodeLenient(body []byte, dst any) ([]string, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var dropped []string
	for _, k := range keys {
		single, err := json.Marshal(map[string]json.RawMessage{k: fields[k]})
		if err != nil {
			dropped = append(dropped, k)
			continue
		}
		if err := json.Unmarshal(single, dst); err != nil {
			dropped = append(dropped, k)
		}
	}
	return dropped, nil
}
