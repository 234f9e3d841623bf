package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_EmbeddedPrompts(t *testing.T) {
	reg := Get()

	ids := reg.List()
	assert.Contains(t, ids, "prompts/strategy_synthesis")
	assert.Contains(t, ids, "prompts/dialogue_conflicts")
	assert.Contains(t, ids, "prompts/dialogue_consensus")
	assert.Contains(t, ids, "prompts/client_profile")
}

func TestRegistry_RenderConflictsPrompt(t *testing.T) {
	reg := Get()

	out, err := reg.Render("prompts/dialogue_conflicts", map[string]any{
		"ClientName": "Acme",
		"Industry":   "Retail",
		"Challenge":  "Margin pressure",
		"Statements": []map[string]string{
			{"Role": "market", "Statement": "The market is growing fast."},
			{"Role": "financial", "Statement": "Margins are thin."},
		},
	})
	require.NoError(t, err)

	assert.Contains(t, out, "Client: Acme")
	assert.Contains(t, out, "## market")
	assert.Contains(t, out, "Margins are thin.")
}

func TestRegistry_RenderUnknownID(t *testing.T) {
	reg := Get()

	_, err := reg.Render("prompts/does_not_exist", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "template not found")
}
