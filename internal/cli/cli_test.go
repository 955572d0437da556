package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/todoapp/internal/paths"
	"github.com/mesh-intelligence/todoapp/internal/storage"
	"github.com/mesh-intelligence/todoapp/pkg/types"
)

// testEnv holds isolated config and data directories.
type testEnv struct {
	configDir string
	dataDir   string
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	root := t.TempDir()
	t.Setenv(paths.EnvConfigDir, "")
	t.Setenv(paths.EnvDataDir, "")
	t.Setenv("TODOAPP_BACKEND", "")
	t.Setenv("TODOAPP_LOG_LEVEL", "")
	return testEnv{
		configDir: filepath.Join(root, "config"),
		dataDir:   filepath.Join(root, "data"),
	}
}

// exec runs one todoapp invocation and returns stdout, stderr and the exit code.
func (e testEnv) exec(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)

	full := append([]string{"--config-dir", e.configDir, "--data-dir", e.dataDir}, args...)
	code := run(root, full, &stderr)
	return stdout.String(), stderr.String(), code
}

func (e testEnv) todosPath() string {
	return filepath.Join(e.dataDir, storage.DefaultJSONFileName)
}

func TestVersion(t *testing.T) {
	env := newTestEnv(t)

	out, _, code := env.exec(t, "version")
	assert.Equal(t, exitSuccess, code)
	assert.Contains(t, out, "todoapp v"+Version)
	assert.Contains(t, out, modulePath)

	_, err := os.Stat(env.configDir)
	assert.True(t, os.IsNotExist(err), "version must not create the config dir")
}

func TestInit(t *testing.T) {
	env := newTestEnv(t)

	out, _, code := env.exec(t, "init")
	require.Equal(t, exitSuccess, code)
	assert.Contains(t, out, "todoapp initialized")
	assert.Contains(t, out, env.todosPath())

	data, err := os.ReadFile(env.todosPath())
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))

	cfg, err := os.ReadFile(filepath.Join(env.configDir, configFileExt))
	require.NoError(t, err)
	assert.Equal(t, defaultConfigYAML, string(cfg))
}

func TestInitKeepsExistingTodos(t *testing.T) {
	env := newTestEnv(t)
	_, _, code := env.exec(t, "add", "Buy", "milk")
	require.Equal(t, exitSuccess, code)

	_, _, code = env.exec(t, "init")
	require.Equal(t, exitSuccess, code)

	data, err := os.ReadFile(env.todosPath())
	require.NoError(t, err)
	assert.JSONEq(t, `[{"text":"Buy milk","done":false}]`, string(data))
}

func TestAddToggleRemoveList(t *testing.T) {
	env := newTestEnv(t)

	out, _, code := env.exec(t, "add", "Buy", "milk")
	require.Equal(t, exitSuccess, code)
	assert.Equal(t, "Added 0: [ ] Buy milk\n", out)

	out, _, code = env.exec(t, "add", "  Write report  ")
	require.Equal(t, exitSuccess, code)
	assert.Equal(t, "Added 1: [ ] Write report\n", out)

	out, _, code = env.exec(t, "toggle", "0")
	require.Equal(t, exitSuccess, code)
	assert.Equal(t, "Toggled 0: [x] Buy milk\n", out)

	out, _, code = env.exec(t, "list")
	require.Equal(t, exitSuccess, code)
	assert.Equal(t, "0  [x] Buy milk\n1  [ ] Write report\nTotal: 2    Done: 1\n", out)

	out, _, code = env.exec(t, "rm", "0")
	require.Equal(t, exitSuccess, code)
	assert.Equal(t, "Removed 0: [x] Buy milk\n", out)

	out, _, code = env.exec(t, "ls")
	require.Equal(t, exitSuccess, code)
	assert.Equal(t, "0  [ ] Write report\nTotal: 1    Done: 0\n", out)
}

func TestListEmpty(t *testing.T) {
	env := newTestEnv(t)

	out, _, code := env.exec(t, "list")
	require.Equal(t, exitSuccess, code)
	assert.Equal(t, "No todos.\nTotal: 0    Done: 0\n", out)

	_, err := os.Stat(env.todosPath())
	assert.True(t, os.IsNotExist(err), "reading must not create the file")
}

func TestListJSON(t *testing.T) {
	env := newTestEnv(t)
	env.exec(t, "add", "a")
	env.exec(t, "add", "b")
	env.exec(t, "toggle", "1")

	out, _, code := env.exec(t, "list", "--json")
	require.Equal(t, exitSuccess, code)

	var items []types.Item
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	assert.Equal(t, []types.Item{{Text: "a"}, {Text: "b", Done: true}}, items)
}

func TestAddJSON(t *testing.T) {
	env := newTestEnv(t)

	out, _, code := env.exec(t, "--json", "add", "Buy milk")
	require.Equal(t, exitSuccess, code)
	assert.JSONEq(t, `{"index":0,"text":"Buy milk","done":false}`, out)
}

func TestStatus(t *testing.T) {
	env := newTestEnv(t)
	env.exec(t, "add", "a")
	env.exec(t, "add", "b")
	env.exec(t, "toggle", "0")

	out, _, code := env.exec(t, "status")
	require.Equal(t, exitSuccess, code)
	assert.Equal(t, "Total: 2    Done: 1\n", out)

	out, _, code = env.exec(t, "status", "--json")
	require.Equal(t, exitSuccess, code)
	var sv statusView
	require.NoError(t, json.Unmarshal([]byte(out), &sv))
	assert.Equal(t, statusView{Total: 2, Done: 1, Path: env.todosPath()}, sv)
}

func TestSave(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.MkdirAll(env.dataDir, 0o755))
	require.NoError(t, os.WriteFile(env.todosPath(), []byte(`[{"text":"a","display":"x"}]`), 0o644))

	out, _, code := env.exec(t, "save")
	require.Equal(t, exitSuccess, code)
	assert.Contains(t, out, "Saved 1 todo(s)")

	data, err := os.ReadFile(env.todosPath())
	require.NoError(t, err)
	assert.NotContains(t, string(data), "display")
	assert.JSONEq(t, `[{"text":"a","done":false}]`, string(data))
}

func TestUserErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "empty text", args: []string{"add", "   "}, wantErr: types.ErrEmptyText.Error()},
		{name: "toggle out of range", args: []string{"toggle", "0"}, wantErr: types.ErrIndexOutOfRange.Error()},
		{name: "remove negative", args: []string{"remove", "--", "-1"}, wantErr: types.ErrIndexOutOfRange.Error()},
		{name: "index not a number", args: []string{"toggle", "first"}, wantErr: "is not an index"},
		{name: "missing text", args: []string{"add"}, wantErr: "requires at least 1 arg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)

			_, stderr, code := env.exec(t, tt.args...)
			assert.Equal(t, exitUserError, code)
			assert.Contains(t, stderr, tt.wantErr)

			_, err := os.Stat(env.todosPath())
			assert.True(t, os.IsNotExist(err), "failed command must not write")
		})
	}
}

func TestMalformedFileIsSystemError(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.MkdirAll(env.dataDir, 0o755))
	require.NoError(t, os.WriteFile(env.todosPath(), []byte(`{broken`), 0o644))

	_, stderr, code := env.exec(t, "add", "a")
	assert.Equal(t, exitSysError, code)
	assert.Contains(t, stderr, types.ErrFormat.Error())

	data, err := os.ReadFile(env.todosPath())
	require.NoError(t, err)
	assert.Equal(t, `{broken`, string(data), "broken file left untouched")
}

func TestSQLiteBackendFromConfig(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.MkdirAll(env.configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(env.configDir, configFileExt), []byte("backend: sqlite\n"), 0o644))

	_, _, code := env.exec(t, "add", "Buy milk")
	require.Equal(t, exitSuccess, code)
	_, _, code = env.exec(t, "toggle", "0")
	require.Equal(t, exitSuccess, code)

	_, err := os.Stat(filepath.Join(env.dataDir, storage.DefaultSQLiteFileName))
	require.NoError(t, err)

	out, _, code := env.exec(t, "list")
	require.Equal(t, exitSuccess, code)
	assert.Equal(t, "0  [x] Buy milk\nTotal: 1    Done: 1\n", out)
}

func TestUnknownBackendIsUserError(t *testing.T) {
	env := newTestEnv(t)
	t.Setenv("TODOAPP_BACKEND", "postgres")

	_, stderr, code := env.exec(t, "list")
	assert.Equal(t, exitUserError, code)
	assert.Contains(t, stderr, types.ErrBackendUnknown.Error())
}

func TestDataDirFromConfig(t *testing.T) {
	env := newTestEnv(t)
	custom := filepath.Join(t.TempDir(), "elsewhere")
	require.NoError(t, os.MkdirAll(env.configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(env.configDir, configFileExt), []byte("data_dir: "+custom+"\n"), 0o644))

	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	code := run(root, []string{"--config-dir", env.configDir, "add", "a"}, &stderr)
	require.Equal(t, exitSuccess, code, stderr.String())

	_, err := os.Stat(filepath.Join(custom, storage.DefaultJSONFileName))
	assert.NoError(t, err)
}

func TestDebugLogging(t *testing.T) {
	env := newTestEnv(t)

	_, stderr, code := env.exec(t, "--log-level", "debug", "add", "a")
	require.Equal(t, exitSuccess, code)
	assert.Contains(t, stderr, "todos saved")

	_, stderr, code = env.exec(t, "add", "b")
	require.Equal(t, exitSuccess, code)
	assert.False(t, strings.Contains(stderr, "todos saved"), "default level hides debug")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitSuccess, exitCode(nil))
	assert.Equal(t, exitUserError, exitCode(types.ErrEmptyText))
	assert.Equal(t, exitUserError, exitCode(types.ErrIndexOutOfRange))
	assert.Equal(t, exitUserError, exitCode(errInvalidArg))
	assert.Equal(t, exitSysError, exitCode(types.ErrIO))
	assert.Equal(t, exitSysError, exitCode(types.ErrFormat))
}
