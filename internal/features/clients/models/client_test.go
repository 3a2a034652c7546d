package clients_models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Client_WhenNegativeCacheMarkerSet_SurvivesJSONRoundTrip(t *testing.T) {
	client := &Client{
		Slug:        "missing-slug",
		IsNotExists: true,
	}

	data, err := json.Marshal(client)
	require.NoError(t, err)

	restored := &Client{}
	require.NoError(t, json.Unmarshal(data, restored))

	assert.True(t, restored.IsNotExists)
	assert.Equal(t, "missing-slug", restored.Slug)
}

func Test_Representative_WhenBothNamesSet_ReturnsFullName(t *testing.T) {
	client := &Client{FirstName: "Walter", LastName: "White"}

	assert.Equal(t, "Walter White", client.Representative())
}
