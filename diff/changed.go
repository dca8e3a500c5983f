package diff

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

// ChangedEntry is one {kiid: {prop: new_value, ...}} member of a
// CollectionDiff's changed list (spec.md §4.5).
type ChangedEntry struct {
	KIID  string
	Props map[string]any
}

// MarshalJSON encodes the entry as the single-key object the wire format
// requires: {"<kiid>": {<props>}}.
func (c ChangedEntry) MarshalJSON() ([]byte, error) {
	return jsonAPI.Marshal(map[string]map[string]any{c.KIID: c.Props})
}

// UnmarshalJSON decodes a changed entry and normalizes its props to the
// dict form (Open Question 1, SPEC_FULL.md §6): the wire value for a
// kiid may be either a {key: value} object or a [[key, value], ...]
// list. Re-encoding and re-decoding an already-normalized entry is a
// no-op, which is what property P2 (diff-idempotence) requires of the
// accumulator that carries these entries across cycles.
func (c *ChangedEntry) UnmarshalJSON(data []byte) error {
	var dict map[string]jsoniter.RawMessage
	if err := jsonAPI.Unmarshal(data, &dict); err != nil {
		return fmt.Errorf("diff: changed entry must be a single-key object: %w", err)
	}
	if len(dict) != 1 {
		return fmt.Errorf("diff: changed entry must have exactly one kiid key, got %d", len(dict))
	}

	for kiid, raw := range dict {
		props, err := normalizeProps(raw)
		if err != nil {
			return fmt.Errorf("diff: changed entry %q: %w", kiid, err)
		}
		c.KIID = kiid
		c.Props = props
	}
	return nil
}

// normalizeProps accepts either wire shape for a kiid's property map and
// always returns the dict form.
func normalizeProps(raw jsoniter.RawMessage) (map[string]any, error) {
	var asDict map[string]any
	if err := jsonAPI.Unmarshal(raw, &asDict); err == nil {
		return asDict, nil
	}

	var asList [][2]any
	if err := jsonAPI.Unmarshal(raw, &asList); err != nil {
		return nil, fmt.Errorf("changed props are neither a dict nor a list-of-pairs: %w", err)
	}
	out := make(map[string]any, len(asList))
	for _, pair := range asList {
		key, ok := pair[0].(string)
		if !ok {
			return nil, fmt.Errorf("changed props list-of-pairs key is not a string: %v", pair[0])
		}
		out[key] = pair[1]
	}
	return out, nil
}
