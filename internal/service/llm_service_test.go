package service

import (
	"testing"

	"dojoflow/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestHistoryContentsMapsDirectionsToRoles(t *testing.T) {
	history := []*models.Interaction{
		{Direction: models.DirectionInbound, Summary: "Do you have gis in stock?"},
		{Direction: models.DirectionOutbound, Summary: "We do, what size are you looking for?"},
		{Direction: models.DirectionInbound, Summary: ""},
		{Direction: models.DirectionInbound, Summary: "A2 please"},
	}

	contents := historyContents(history)

	// The empty summary is dropped.
	require.Len(t, contents, 3)
	assert.Equal(t, genai.RoleUser, contents[0].Role)
	assert.Equal(t, genai.RoleModel, contents[1].Role)
	assert.Equal(t, genai.RoleUser, contents[2].Role)
	require.NotEmpty(t, contents[0].Parts)
	assert.Equal(t, "Do you have gis in stock?", contents[0].Parts[0].Text)
}
