package engine

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type secretiveState struct {
	Board  []string       `json:"board"`
	Hands  map[string]any `json:"hands"`
	Nested []secretHolder `json:"nested"`
}

type secretHolder struct {
	Public string `json:"public"`
	Hands  string `json:"hands"`
}

func TestStripSecretsRemovesFieldsAtAnyDepth(t *testing.T) {
	s := secretiveState{
		Board: []string{"a", "b"},
		Hands: map[string]any{"0": []string{"AS"}},
		Nested: []secretHolder{
			{Public: "ok", Hands: "KD"},
		},
	}

	stripped := StripSecrets(s, []string{"hands"})

	raw, err := json.Marshal(stripped)
	require.NoError(t, err)
	text := string(raw)
	assert.NotContains(t, text, "AS")
	assert.NotContains(t, text, "KD")
	assert.Contains(t, text, "board")
	assert.Contains(t, text, "ok")
}

func TestProjectPrefersCustomPlayerView(t *testing.T) {
	def := &GameDefinition{
		Secrets: []string{"hands"},
		PlayerView: func(_ State, _ Context, player PlayerID) any {
			return "view for " + string(player)
		},
	}

	got := Project(def, secretiveState{}, NewContext(2), "1")
	assert.Equal(t, "view for 1", got)
}

func TestProjectDefaultsToSecretStripping(t *testing.T) {
	def := &GameDefinition{Secrets: []string{"hands"}}
	s := secretiveState{Hands: map[string]any{"0": "QQ"}}

	got := Project(def, s, NewContext(2), "1")

	raw, err := json.Marshal(got)
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(raw), "QQ"))
}

func TestProjectWithoutSecretsIsIdentity(t *testing.T) {
	def := &GameDefinition{}
	s := secretiveState{Board: []string{"a"}}

	got := Project(def, s, NewContext(2), "0")
	assert.Equal(t, s, got)
}
