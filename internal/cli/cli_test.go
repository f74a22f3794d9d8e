package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd(&stdout, &stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	file := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))
	return file
}

func TestRender(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "values.csv", "cat,val\nA,5\nB,-3\n")
	one := writeFile(t, dir, "one.toml", "x = \"cat\"\ny = \"val\"\n[data]\npath = \"values.csv\"\n")
	two := writeFile(t, dir, "two.yaml", "x: cat\nstack_by: [val]\noutput: stacked.svg\ndata:\n  path: values.csv\n")

	out := t.TempDir()
	_, stderr, err := execute(t, "render", "-o", out, "-j", "2", one, two)
	require.NoError(t, err)
	assert.Contains(t, stderr, "rendered")

	for _, name := range []string{"one.svg", "stacked.svg"} {
		body, err := os.ReadFile(filepath.Join(out, name))
		require.NoError(t, err, name)
		assert.Contains(t, string(body), "</svg>")
	}
}

func TestRenderErrors(t *testing.T) {
	_, _, err := execute(t, "render")
	assert.Error(t, err)

	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.toml", "x = \"a\"\ngroup_by = [\"b\"]\nstack_by = [\"c\"]\n[data]\ncontent = \"a,b,c\\n\"\n")
	_, _, err = execute(t, "render", bad)
	assert.Error(t, err)
}

func TestQuantiles(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "values.csv", "name,a,b\nw,0,1\nx,2,1\ny,4,1\nz,8,1\n")

	stdout, _, err := execute(t, "quantiles", "--column", "a", "--buckets", "2", file)
	require.NoError(t, err)
	assert.Equal(t, "0\t0\n1\t3\n2\t8\n", stdout)

	stdout, _, err = execute(t, "quantiles", "-c", "a,b", "--sum", "-b", "1", file)
	require.NoError(t, err)
	assert.Equal(t, "0\t1\n1\t9\n", stdout)

	_, _, err = execute(t, "quantiles", file)
	assert.Error(t, err, "column is required")

	_, _, err = execute(t, "quantiles", "-c", "missing", file)
	assert.Error(t, err)
}

func TestHostCharts(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "values.csv", "cat,val\nA,5\nB,-3\n")
	file := writeFile(t, dir, "one.toml", "title = \"one\"\nx = \"cat\"\ny = \"val\"\n[data]\npath = \"values.csv\"\n")

	ctx := withLogger(context.Background(), log.New(io.Discard))
	srv, err := hostCharts(ctx, []string{file})
	require.NoError(t, err)

	list := srv.List()
	require.Len(t, list, 1)
	assert.Equal(t, "one", list[0].Name)

	_, err = hostCharts(ctx, []string{filepath.Join(dir, "missing.toml")})
	assert.Error(t, err)
}

func TestLoggerFromContext(t *testing.T) {
	assert.Equal(t, log.Default(), loggerFromContext(context.Background()))

	l := log.New(io.Discard)
	assert.Same(t, l, loggerFromContext(withLogger(context.Background(), l)))
}
