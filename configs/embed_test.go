package configs_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/codex-k8s/bash-mcp-server/configs"
	"github.com/codex-k8s/bash-mcp-server/internal/render"
	"github.com/codex-k8s/bash-mcp-server/internal/settings"
)

func TestEmbeddedConfigsParse(t *testing.T) {
	names := configs.Names()
	require.Contains(t, names, configs.DefaultName)

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			raw, err := configs.Load(name)
			require.NoError(t, err)

			rendered, err := render.Bytes(name, raw)
			require.NoError(t, err)

			_, err = settings.Load(rendered)
			require.NoError(t, err)
		})
	}
}

func TestLoadUnknownName(t *testing.T) {
	_, err := configs.Load("missing.yaml")
	require.Error(t, err)

	_, err = configs.Load("")
	require.Error(t, err)
}
