package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"impacttrack/internal/entities"
	"impacttrack/internal/importer"

	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := rootCmd(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	require.Equal(t, "impactctl version "+Version+"\n", out)
}

func TestTemplateWritesWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vslas.xlsx")
	out, err := run(t, "template", "vslas", path)
	require.NoError(t, err)
	require.Contains(t, out, path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := importer.ReadWorkbook(f, "")
	require.NoError(t, err)
	_, err = importer.MapHeader(entities.ImportVSLAs, rows[0])
	require.NoError(t, err)
}

func TestArgumentValidation(t *testing.T) {
	_, err := run(t, "template", "donors", filepath.Join(t.TempDir(), "x.xlsx"))
	require.ErrorIs(t, err, entities.ErrInvalidArgument)

	_, err = run(t, "migrate", "sideways")
	require.Error(t, err)

	_, err = run(t, "import", "donors", "file.xlsx")
	require.ErrorContains(t, err, "unknown import kind")
}
