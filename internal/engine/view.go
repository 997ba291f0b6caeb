package engine

import (
	"encoding/json"
	"fmt"
)

// Project derives the view of the game a single player is entitled to see.
// A definition with a custom PlayerView decides for itself; one that only
// declares Secrets gets those fields stripped structurally; one with
// neither exposes the whole state (nothing was marked hidden).
func Project(def *GameDefinition, s State, ctx Context, player PlayerID) any {
	if def.PlayerView != nil {
		return def.PlayerView(s, ctx, player)
	}
	if len(def.Secrets) > 0 {
		return StripSecrets(s, def.Secrets)
	}
	return s
}

// StripSecrets returns a copy of the state with every occurrence of the
// named fields removed, at any nesting depth. The walk operates on the
// state's JSON shape, so games get safe default redaction without writing
// per-field code. A state that cannot be serialized is a defect in the
// game definition and panics.
func StripSecrets(s State, secrets []string) any {
	raw, err := json.Marshal(s)
	if err != nil {
		panic(fmt.Sprintf("engine: state is not serializable: %v", err))
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		panic(fmt.Sprintf("engine: state round-trip failed: %v", err))
	}

	hidden := make(map[string]struct{}, len(secrets))
	for _, name := range secrets {
		hidden[name] = struct{}{}
	}
	return strip(v, hidden)
}

func strip(v any, hidden map[string]struct{}) any {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			if _, ok := hidden[k]; ok {
				delete(t, k)
				continue
			}
			t[k] = strip(child, hidden)
		}
		return t
	case []any:
		for i, child := range t {
			t[i] = strip(child, hidden)
		}
		return t
	default:
		return v
	}
}
