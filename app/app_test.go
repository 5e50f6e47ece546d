package app

import (
	"bytes"
	"testing"

	"github.com/mandelsoft/vfs/pkg/memoryfs"
	"github.com/mandelsoft/vfs/pkg/vfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	*App
	fs             vfs.FileSystem
	stdout, stderr *bytes.Buffer
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	fs := memoryfs.New()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	app, err := New("usher", "/config.json", t.TempDir(),
		WithContext(t.Context()),
		WithFDs(&bytes.Buffer{}, stdout, stderr),
		WithFS(fs),
		WithLogger(false),
	)
	require.NoError(t, err)

	return &testApp{App: app, fs: fs, stdout: stdout, stderr: stderr}
}

func TestAppInit(t *testing.T) {
	app := newTestApp(t)

	require.NoError(t, app.Run([]string{"init"}))

	// The configuration file was written with a generated auth token and the
	// default role policy.
	cfgJSON, err := vfs.ReadFile(app.fs, "/config.json")
	require.NoError(t, err)
	assert.Contains(t, string(cfgJSON), `"token"`)
	assert.Contains(t, string(cfgJSON), `"reader"`)
	assert.Contains(t, string(cfgJSON), `"editor"`)

	assert.Contains(t, app.stdout.String(), "API auth token:")
}

func TestAppInitKeepsExistingToken(t *testing.T) {
	app := newTestApp(t)

	err := vfs.WriteFile(app.fs, "/config.json",
		[]byte(`{"auth": {"token": "2UzHL"}}`), 0o644)
	require.NoError(t, err)

	require.NoError(t, app.Run([]string{"init"}))

	assert.Contains(t, app.stdout.String(), "API auth token: 2UzHL")
}

func TestAppRoutes(t *testing.T) {
	app := newTestApp(t)

	require.NoError(t, app.Run([]string{"routes"}))

	out := app.stdout.String()
	assert.Contains(t, out, "/api/v1/health")
	assert.Contains(t, out, "/api/v1/notes")
	assert.Contains(t, out, "DELETE")
}
