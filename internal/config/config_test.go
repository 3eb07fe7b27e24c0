package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/delaneyj/bindparty/internal/config"
	"github.com/delaneyj/bindparty/reactive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := config.Load("")
		require.NoError(t, err)
		assert.Equal(t, config.DefaultEl, cfg.El)
		assert.Equal(t, "my-", cfg.DirectivePrefix)
		assert.Equal(t, "@", cfg.EventPrefix)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Empty(t, cfg.Data)
	})

	t.Run("file overrides and keeps order", func(t *testing.T) {
		path := write(t, "bindparty.yaml", `
template: index.html
event_prefix: "on:"
data:
  msg: hi
  count: 2
  user:
    name: Amy
    tags: [a, b]
methods:
  reset:
    msg: ""
    count: 0
`)
		cfg, err := config.Load(path)
		require.NoError(t, err)

		assert.Equal(t, "index.html", cfg.Template)
		assert.Equal(t, "#app", cfg.El)
		assert.Equal(t, "my-", cfg.DirectivePrefix)
		assert.Equal(t, "on:", cfg.EventPrefix)
		assert.Equal(t, reactive.Fields{
			{Key: "msg", Value: "hi"},
			{Key: "count", Value: 2},
			{Key: "user", Value: reactive.Fields{
				{Key: "name", Value: "Amy"},
				{Key: "tags", Value: []any{"a", "b"}},
			}},
		}, cfg.Data)
		assert.Equal(t, reactive.Fields{
			{Key: "msg", Value: ""},
			{Key: "count", Value: 0},
		}, cfg.Methods["reset"])

		name, ok := cfg.Data[2].Value.(reactive.Fields).Get("name")
		assert.True(t, ok)
		assert.Equal(t, "Amy", name)
		_, ok = cfg.Data.Get("missing")
		assert.False(t, ok)
	})

	t.Run("data must be a mapping", func(t *testing.T) {
		_, err := config.Load(write(t, "bad.yaml", "data: [1, 2]\n"))
		assert.ErrorIs(t, err, config.ErrNotMapping)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestLoadData(t *testing.T) {
	fields, err := config.LoadData(write(t, "data.json", `{"z": 1, "a": {"b": true}}`))
	require.NoError(t, err)
	assert.Equal(t, reactive.Fields{
		{Key: "z", Value: 1},
		{Key: "a", Value: reactive.Fields{{Key: "b", Value: true}}},
	}, fields)

	empty, err := config.LoadData(write(t, "empty.yaml", ""))
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestParseScalar(t *testing.T) {
	assert.Equal(t, 42, config.ParseScalar("42"))
	assert.Equal(t, true, config.ParseScalar("true"))
	assert.Equal(t, 1.5, config.ParseScalar("1.5"))
	assert.Equal(t, "Zoe", config.ParseScalar("Zoe"))
	assert.Equal(t, "", config.ParseScalar(""))
	assert.Equal(t, "[1, 2]", config.ParseScalar("[1, 2]"))
}
