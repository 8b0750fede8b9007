package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadDefaults(t *testing.T) {
	var params commandParams
	require.True(t, params.Read([]string{"prog"}))

	assert.Equal(t, "localhost", params.host)
	assert.Equal(t, defaultPort, params.port)
	assert.Equal(t, modeSuite, params.mode)
	assert.False(t, params.debug)
}

func TestReadCommandMode(t *testing.T) {
	var params commandParams
	require.True(t, params.Read([]string{"prog", "-host", "git.internal", "-port", "9999",
		"-mode", "command", "log", `{"count":3}`}))

	assert.Equal(t, "git.internal", params.host)
	assert.Equal(t, 9999, params.port)
	assert.Equal(t, "log", params.command)
	assert.Equal(t, `{"count":3}`, params.paramsJSON)
}

func TestReadCommandModeRequiresACommand(t *testing.T) {
	var params commandParams
	assert.False(t, params.Read([]string{"prog", "-mode", "command"}))
}

func TestReadRejectsUnknownMode(t *testing.T) {
	var params commandParams
	assert.False(t, params.Read([]string{"prog", "-mode", "bogus"}))
}

func TestReadFilters(t *testing.T) {
	var params commandParams
	require.True(t, params.Read([]string{"prog", "-run", "^log", "-skip", "remote"}))

	assert.True(t, params.filters.MustMatch.IsDefined())
	assert.True(t, params.filters.MustNotMatch.IsDefined())
}

func TestCommandBuilderQuotesArguments(t *testing.T) {
	var b commandBuilder
	b.add("./contract-tests", "-run", "^commit log$")
	assert.Equal(t, `./contract-tests -run '^commit log$'`, b.String())
}

func TestParseParamsJSON(t *testing.T) {
	v, ok := parseParamsJSON("")
	assert.True(t, ok)
	assert.True(t, v.IsNull())

	v, ok = parseParamsJSON(`{"count":5}`)
	assert.True(t, ok)
	assert.Equal(t, 5, v.GetByKey("count").IntValue())

	_, ok = parseParamsJSON(`{count:}`)
	assert.False(t, ok)
}
