package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fitlens/backend/internal/domain"
	"github.com/fitlens/backend/internal/infrastructure/forest"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrainerCommand_WritesArtifacts(t *testing.T) {
	outDir := t.TempDir()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{
		"--data", filepath.Join("..", "..", "data", "clothing_samples.csv"),
		"--out", outDir,
		"--trees", "8",
		"--test-size", "0.2",
	})

	require.NoError(t, cmd.Execute())

	for _, c := range domain.Categories {
		path := forest.ArtifactPath(outDir, string(c))
		p, err := forest.Load(path)
		require.NoError(t, err, "artifact for %s", c)
		assert.Len(t, p.Forest.Trees, 8)
		assert.Contains(t, out.String(), path)
	}
}

func TestTrainerCommand_OutDirFromEnv(t *testing.T) {
	outDir := t.TempDir()
	t.Setenv("FITLENS_MODELS_DIR", outDir)

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{
		"--data", filepath.Join("..", "..", "data", "clothing_samples.csv"),
		"--trees", "3",
		"--test-size", "0",
	})

	require.NoError(t, cmd.Execute())
	_, err := os.Stat(filepath.Join(outDir, "top.json"))
	assert.NoError(t, err)
}

func TestTrainerCommand_MissingDataset(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--data", filepath.Join(t.TempDir(), "missing.csv"), "--out", t.TempDir()})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load dataset")
}

func TestNewRootCmd_BindsEveryFlag(t *testing.T) {
	var root *cobra.Command
	require.NotPanics(t, func() { root = newRootCmd() })

	for _, name := range []string{"data", "out", "trees", "seed", "max-depth", "test-size"} {
		assert.NotNil(t, root.Flags().Lookup(name), "flag --%s", name)
	}
}
