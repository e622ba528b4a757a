package cli

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lisiadito/insomnia/internal/config"
)

func resolverCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "leaf", Run: func(cmd *cobra.Command, args []string) {}}
	cmd.Flags().String("reporter", "spec", "")
	cmd.Flags().Bool("bail", false, "")
	cmd.Flags().String("env", "", "")
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return cmd
}

func TestResolveOptions_ExplicitFlagWins(t *testing.T) {
	cmd := resolverCommand(t, "--reporter", "dot")

	opts := resolveOptions(cmd, map[string]interface{}{"reporter": "spec"}, nil)

	assert.Equal(t, "dot", opts.GetString("reporter", ""))
}

func TestResolveOptions_DefaultWhenUnchanged(t *testing.T) {
	// The flag has a registered default, but only an explicit change
	// counts; the handler default applies otherwise.
	cmd := resolverCommand(t)

	opts := resolveOptions(cmd, map[string]interface{}{"reporter": "list"}, nil)

	assert.Equal(t, "list", opts.GetString("reporter", ""))
}

func TestResolveOptions_AbsentWithoutDefault(t *testing.T) {
	cmd := resolverCommand(t)

	opts := resolveOptions(cmd, nil, nil)

	assert.False(t, opts.Has("env"))
	assert.Equal(t, "fallback", opts.GetString("env", "fallback"))
}

func TestResolveOptions_BoolFlag(t *testing.T) {
	cmd := resolverCommand(t, "--bail")

	opts := resolveOptions(cmd, map[string]interface{}{"bail": false}, nil)

	assert.True(t, opts.GetBool("bail", false))
}

func TestResolveOptions_ConfigAttachedWhole(t *testing.T) {
	cfg := &config.Config{
		Path: "/tmp/.insorc.yaml",
		Raw:  map[string]interface{}{"scripts": map[string]interface{}{"check": "lint spec"}},
	}
	cmd := resolverCommand(t)

	opts := resolveOptions(cmd, nil, cfg)

	// Config values never leak into the flag value map.
	assert.False(t, opts.Has("scripts"))
	assert.Same(t, cfg, opts.Config)
}

func TestOptionsSnapshot(t *testing.T) {
	cfg := &config.Config{
		Path: "/tmp/.insorc.yaml",
		Raw:  map[string]interface{}{"spec": "api.yaml"},
	}
	cmd := resolverCommand(t, "--reporter", "min")

	opts := resolveOptions(cmd, map[string]interface{}{"bail": false}, cfg)
	snap := opts.Snapshot()

	assert.Equal(t, "min", snap["reporter"])
	assert.Equal(t, false, snap["bail"])

	configFile, ok := snap["configFile"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "/tmp/.insorc.yaml", configFile["path"])
}

func TestOptionsSnapshot_NoConfig(t *testing.T) {
	cmd := resolverCommand(t)
	opts := resolveOptions(cmd, nil, nil)

	_, ok := opts.Snapshot()["configFile"]
	assert.False(t, ok)
}
