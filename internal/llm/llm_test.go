// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	models []string
}

func (f *fakeGateway) ListModels(_ context.Context) []string { return f.models }

func (f *fakeGateway) Send(_ context.Context, _ Request) (*Response, error) {
	return &Response{}, nil
}

func (f *fakeGateway) TestConnection(_ context.Context) bool { return true }

type fixedChooser struct {
	pick string
	ok   bool
}

func (c fixedChooser) Choose(_ []string) (string, bool) { return c.pick, c.ok }

func TestSelectModelZeroModels(t *testing.T) {
	_, err := SelectModel(context.Background(), &fakeGateway{}, FirstChooser{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoModels)
}

func TestSelectModelSingleAutoSelected(t *testing.T) {
	g := &fakeGateway{models: []string{"llama3"}}

	model, err := SelectModel(context.Background(), g, nil)
	require.NoError(t, err)
	assert.Equal(t, "llama3", model, "a sole model is auto-selected when no chooser is set")
}

func TestSelectModelSingleConsultsChooser(t *testing.T) {
	g := &fakeGateway{models: []string{"llama3"}}

	model, err := SelectModel(context.Background(), g, PinnedChooser{Model: "llama3"})
	require.NoError(t, err)
	assert.Equal(t, "llama3", model)
}

func TestSelectModelPinnedModelAbsent(t *testing.T) {
	// A stale pin must fail model resolution, even when the backend offers
	// exactly one other model to fall back on.
	g := &fakeGateway{models: []string{"llama3"}}

	_, err := SelectModel(context.Background(), g, PinnedChooser{Model: "mistral"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoModels)
}

func TestSelectModelMultipleUsesChooser(t *testing.T) {
	g := &fakeGateway{models: []string{"llama3", "mistral"}}

	model, err := SelectModel(context.Background(), g, fixedChooser{pick: "mistral", ok: true})
	require.NoError(t, err)
	assert.Equal(t, "mistral", model)
}

func TestSelectModelDeclined(t *testing.T) {
	g := &fakeGateway{models: []string{"llama3", "mistral"}}

	_, err := SelectModel(context.Background(), g, fixedChooser{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoModels)
}

func TestFirstChooser(t *testing.T) {
	model, ok := FirstChooser{}.Choose([]string{"a", "b"})
	assert.True(t, ok)
	assert.Equal(t, "a", model)

	_, ok = FirstChooser{}.Choose(nil)
	assert.False(t, ok)
}

func TestLinerChooserSingleOption(t *testing.T) {
	model, ok := LinerChooser{}.Choose([]string{"llama3"})
	assert.True(t, ok)
	assert.Equal(t, "llama3", model)
}

func TestPinnedChooser(t *testing.T) {
	model, ok := PinnedChooser{Model: "mistral"}.Choose([]string{"llama3", "mistral"})
	assert.True(t, ok)
	assert.Equal(t, "mistral", model)

	// A pinned model that is not offered declines rather than substituting.
	_, ok = PinnedChooser{Model: "gone"}.Choose([]string{"llama3"})
	assert.False(t, ok)
}

func TestNewUnknownBackend(t *testing.T) {
	_, err := New(Config{Kind: "teapot"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestNewConstructsConfiguredBackend(t *testing.T) {
	g, err := New(Config{Kind: BackendOpenAI, BaseURL: "http://localhost:1234"})
	require.NoError(t, err)
	assert.IsType(t, &openAIBackend{}, g)

	g, err = New(Config{Kind: BackendExec, Command: "ollama"})
	require.NoError(t, err)
	assert.IsType(t, &execBackend{}, g)
}
