package main

import (
	"bytes"
	"database/sql"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/f1o/renovate/internal/datastore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	dir        string
	configPath string
	version    atomic.Value
	posts      atomic.Int32
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{dir: t.TempDir()}
	env.version.Store("01.00")

	lookup := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("titleid")
		_, _ = fmt.Fprintf(w, `{"success":true,"metadata":{"name":"Title %s","currentVersion":%q,"region":"EU"}}`, id, env.version.Load().(string))
	}))
	t.Cleanup(lookup.Close)

	webhook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		env.posts.Add(1)
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(webhook.Close)

	cfg := fmt.Sprintf(`titles:
  orbis: ["CUSA00001"]
notification_config:
  discord_webhook_url: %q
  username: "Test Bot"
orbis_config:
  api_base_url: %q
  platform_color: "00439C"
http_client_config:
  timeout_seconds: 2
  retry_delay_seconds: 0
  max_attempts: 1
storage_config:
  history_file: %q
  lock_file: %q
  run_ledger_path: %q
log_config:
  log_level: error
  log_format: json
`, webhook.URL, lookup.URL,
		filepath.Join(env.dir, "history.json"),
		filepath.Join(env.dir, "history.json.lock"),
		filepath.Join(env.dir, "runs.db"))

	env.configPath = filepath.Join(env.dir, "config.yaml")
	require.NoError(t, os.WriteFile(env.configPath, []byte(cfg), 0o600))
	return env
}

func (env *testEnv) execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestRunCommand_BaselineThenUpdate(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.execute(t, "run")
	require.NoError(t, err)
	assert.Contains(t, out, "checked 1, updated 0, new 1, failed 0")
	assert.Equal(t, int32(0), env.posts.Load())

	env.version.Store("01.01")
	out, err = env.execute(t, "run")
	require.NoError(t, err)
	assert.Contains(t, out, "checked 1, updated 1, new 0, failed 0")
	assert.Equal(t, int32(1), env.posts.Load())

	out, err = env.execute(t, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "CUSA00001")
	assert.Contains(t, out, "01.01")

	out, err = env.execute(t, "runs", "--limit", "5")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, datastore.RunStatusCompleted))
}

func TestRunCommand_DebugLeavesStateUntouched(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.execute(t, "--debug", "run")
	require.NoError(t, err)

	env.version.Store("02.00")
	_, err = env.execute(t, "--debug", "run")
	require.NoError(t, err)

	// the empty bootstrap file is written but the baseline never is, so nothing notifies
	assert.Equal(t, int32(0), env.posts.Load())
	data, err := os.ReadFile(filepath.Join(env.dir, "history.json"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "CUSA00001")

	out, err := env.execute(t, "runs")
	require.NoError(t, err)
	assert.Contains(t, out, "No runs recorded")
}

func TestHistoryCommand_MissingFile(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.execute(t, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No titles recorded yet")
	assert.NoFileExists(t, filepath.Join(env.dir, "history.json"))
}

func TestRootCommand_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("titles:\n  orbis: [\"bad id!\"]\n"), 0o600))

	cmd := newRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", path, "run"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Titles.Orbis[0]")
}

func TestRootCommand_MissingConfigFile(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "absent.yaml"), "history"})

	assert.Error(t, cmd.Execute())
}

func TestHistoryRows(t *testing.T) {
	record := datastore.NewHistoryRecord()
	record.SetVersion("orbis", "B", "1.1")
	record.SetVersion("orbis", "A", "1.0")
	record.SetVersion("battle", "X", "9")

	rows := historyRows(record)

	assert.Equal(t, [][]string{
		{"battle", "X", "9"},
		{"orbis", "A", "1.0"},
		{"orbis", "B", "1.1"},
	}, rows)
}

func TestRunRows(t *testing.T) {
	started := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	entries := []datastore.RunLedgerEntry{
		{
			RunID:           "0123456789abcdef",
			StartedAt:       started,
			FinishedAt:      sql.NullTime{Time: started.Add(1500 * time.Millisecond), Valid: true},
			Status:          datastore.RunStatusCompleted,
			TitlesChecked:   3,
			TitlesUpdated:   1,
			TitlesBaselined: 1,
			FetchFailures:   1,
		},
		{RunID: "short", StartedAt: started, Status: datastore.RunStatusStarted},
	}

	rows := runRows(entries)

	require.Len(t, rows, 2)
	assert.Equal(t, "01234567", rows[0][0])
	assert.Equal(t, "1.5s", rows[0][2])
	assert.Equal(t, []string{"3", "1", "1", "1"}, rows[0][4:])
	assert.Equal(t, "short", rows[1][0])
	assert.Equal(t, "-", rows[1][2])
}

func TestRenderTable(t *testing.T) {
	out := renderTable([]string{"Title", "Version"}, [][]string{{"CUSA00001", "01.02"}, {"CUSA00002"}}, []columnAlignment{alignLeft, alignRight})

	assert.Contains(t, out, "TITLE")
	assert.Contains(t, out, "CUSA00001")
	assert.Contains(t, out, "01.02")
	assert.Equal(t, "", renderTable(nil, nil, nil))
}

func TestReadOnlyCommands_DoNotNeedWebhook(t *testing.T) {
	dir := t.TempDir()
	historyPath := filepath.Join(dir, "history.json")
	require.NoError(t, os.WriteFile(historyPath, []byte(`{"orbis": {"CUSA00001": "01.05"}}`), 0o600))

	cfg := fmt.Sprintf(`storage_config:
  history_file: %q
  lock_file: %q
  run_ledger_path: %q
log_config:
  log_level: error
`, historyPath, historyPath+".lock", filepath.Join(dir, "runs.db"))
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o600))

	execute := func(args ...string) (string, error) {
		cmd := newRootCommand()
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetArgs(append([]string{"--config", path}, args...))
		err := cmd.Execute()
		return out.String(), err
	}

	out, err := execute("history")
	require.NoError(t, err)
	assert.Contains(t, out, "01.05")

	out, err = execute("runs")
	require.NoError(t, err)
	assert.Contains(t, out, "No runs recorded")

	_, err = execute("run")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DiscordWebhookURL")
}
