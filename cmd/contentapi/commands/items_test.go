package commands

import (
	"encoding/json"
	"sort"
	"testing"

	"github.com/fivetwenty-io/contentapi/internal/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItemsCommand(t *testing.T) {
	t.Parallel()

	cmd := NewItemsCommand()
	assert.Equal(t, "items ID_OR_URL...", cmd.Use)
	assert.NotNil(t, cmd.Args)

	concurrency := cmd.Flags().Lookup("concurrency")
	require.NotNil(t, concurrency)
	assert.Equal(t, "5", concurrency.DefValue)
	assert.NotNil(t, cmd.Flags().Lookup("show-fields"))
}

func TestItemsCommand(t *testing.T) {
	server := newAPIServer(t, map[string]string{itemPath: itemBody})
	useViper(t, map[string]interface{}{"api": server.URL, "output": constants.FormatJSON})

	out, err := executeCommand(NewItemsCommand(), "--concurrency", "2",
		"technology/2010/mar/05/cats",
		server.URL+itemPath,
		"missing/item",
	)
	require.ErrorIs(t, err, constants.ErrItemsFailed)
	assert.NotContains(t, out, "Usage:")

	var results []ItemResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 3)

	assert.Equal(t, "technology/2010/mar/05/cats", results[0].Target)
	require.NotNil(t, results[0].Item)
	require.NotNil(t, results[0].Item.Content)
	assert.Equal(t, "Cats online", results[0].Item.Content.WebTitle)
	assert.Empty(t, results[0].Error)

	assert.Equal(t, server.URL+itemPath, results[1].Target)
	assert.NotNil(t, results[1].Item)

	assert.Equal(t, "missing/item", results[2].Target)
	assert.Nil(t, results[2].Item)
	assert.Contains(t, results[2].Error, "404")

	requests := server.requestURIs()
	sort.Strings(requests)
	assert.Equal(t, []string{
		"/missing/item?format=xml",
		itemPath + "?format=xml",
		itemPath + "?format=xml",
	}, requests)
}
