package snapshot

import (
	"context"
	"io"
	"strings"
	"testing"

	"sync-documenter/core/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLoadObject(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "snapshots", "exports/pilot.json", mock.Anything).
		Return(io.NopCloser(strings.NewReader(`{"connectors":[{"id":"c1","name":"AD"}]}`)), nil)

	tree, err := LoadObject(context.Background(), client, "snapshots", "exports/pilot.json")
	require.NoError(t, err)

	nodes := tree.SelectAll("connectors")
	require.Len(t, nodes, 1)
	assert.Equal(t, "AD", nodes[0].Attr("name"))
	client.AssertExpectations(t)
}

func TestLoadObject_FetchError(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "snapshots", "missing.json", mock.Anything).
		Return(nil, assert.AnError)

	_, err := LoadObject(context.Background(), client, "snapshots", "missing.json")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "missing.json")
}

func TestLoadObject_InvalidBody(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "snapshots", "broken.json", mock.Anything).
		Return(io.NopCloser(strings.NewReader(`not json`)), nil)

	_, err := LoadObject(context.Background(), client, "snapshots", "broken.json")
	assert.Error(t, err)
}
