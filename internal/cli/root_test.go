package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootCmdStructure(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "docpulse", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
	assert.True(t, rootCmd.SilenceUsage)
	assert.True(t, rootCmd.SilenceErrors)
	assert.NotEmpty(t, rootCmd.Version)
}

func TestRootCmdPersistentFlags(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"config", "debug"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "flag %s should exist", name)
	}
}

func TestRootCmdSubcommands(t *testing.T) {
	t.Parallel()

	want := map[string]string{
		"summarize": GroupPipeline,
		"watch":     GroupPipeline,
		"release":   GroupPublish,
		"serve":     GroupPublish,
		"changelog": GroupInternal,
		"config":    GroupInternal,
		"version":   GroupInternal,
	}

	found := map[string]string{}
	for _, cmd := range rootCmd.Commands() {
		found[cmd.Name()] = cmd.GroupID
	}

	for name, group := range want {
		gotGroup, ok := found[name]
		assert.True(t, ok, "command %s should be registered", name)
		assert.Equal(t, group, gotGroup, "command %s group", name)
	}
}

func TestRootCmdGroups(t *testing.T) {
	t.Parallel()

	var ids []string
	for _, g := range rootCmd.Groups() {
		ids = append(ids, g.ID)
	}
	assert.ElementsMatch(t, []string{GroupPipeline, GroupPublish, GroupInternal}, ids)
}

func TestConfigSubcommands(t *testing.T) {
	t.Parallel()

	var names []string
	for _, cmd := range configCmd.Commands() {
		names = append(names, cmd.Name())
	}
	assert.ElementsMatch(t, []string{"init", "show"}, names)
}

func TestMaskSecret(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input string
		want  string
	}{
		"unset":       {input: "", want: "(unset)"},
		"short":       {input: "abc", want: "****"},
		"long masked": {input: "gh-token-12345", want: "****2345"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, maskSecret(tt.input))
		})
	}
}
