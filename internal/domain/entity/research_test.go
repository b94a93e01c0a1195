package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResearchResult_NormalizeMarshalsEmptyArrays(t *testing.T) {
	r := ResearchResult{Topic: "t", Summary: "s"}
	r.Normalize()

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"topic":"t","summary":"s","sources":[],"tools_used":[]}`, string(data))
}

func TestResearchResult_UsesTool(t *testing.T) {
	r := ResearchResult{ToolsUsed: []string{"search", "wikipedia"}}
	assert.True(t, r.UsesTool("wikipedia"))
	assert.False(t, r.UsesTool("save_text_to_file"))
}
