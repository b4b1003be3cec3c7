package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/medibook/internal/cli"
	"github.com/rshade/medibook/internal/config"
	"github.com/rshade/medibook/internal/fixtures"
)

// setupCLITest isolates configuration and quiets logging.
func setupCLITest(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv("MEDIBOOK_CONFIG", path)
	t.Setenv("MEDIBOOK_PROJECT_DIR", t.TempDir())
	t.Setenv("MEDIBOOK_LOGGING_LEVEL", "error")
	t.Setenv("MEDIBOOK_DEBUG", "")
	t.Setenv("NO_COLOR", "")
	return path
}

func execute(t *testing.T, ctx context.Context, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	return stdout.String(), stderr.String(), err
}

func fixtureBackend(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(fixtures.NewServer(fixtures.Sample()).Handler())
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestAppointmentShow_Plain(t *testing.T) {
	setupCLITest(t)
	api := fixtureBackend(t)

	stdout, stderr, err := execute(t, context.Background(),
		"appointment", "show", "abc123", "--api-url", api, "--plain", "--timezone", "UTC")
	require.NoError(t, err)

	assert.Empty(t, stderr)
	assert.Contains(t, stdout, "Appointment #1042\n")
	assert.Contains(t, stdout, "Status: Pending\n")
	assert.Contains(t, stdout, "Date: Friday, March 15, 2024\n")
	assert.Contains(t, stdout, "Booked On: Sunday, March 10, 2024 at 9:15 AM\n")
	assert.NotContains(t, stdout, "Email:")
	assert.NotContains(t, stdout, "Additional Information")
}

func TestAppointmentShow_ColorWhenPiped(t *testing.T) {
	setupCLITest(t)
	api := fixtureBackend(t)

	stdout, stderr, err := execute(t, context.Background(),
		"appointment", "show", "abc123", "--api-url", api, "--color", "--timezone", "UTC")
	require.NoError(t, err)

	assert.Contains(t, stderr, "Loading appointment details...")
	assert.Contains(t, stdout, "Appointment Details")
	assert.Contains(t, stdout, "Appointment #1042")
	assert.Contains(t, stdout, "Pending")
	assert.NotContains(t, stdout, "Loading appointment details...")
}

func TestAppointmentShow_Locale(t *testing.T) {
	setupCLITest(t)
	api := fixtureBackend(t)

	stdout, _, err := execute(t, context.Background(),
		"appt", "show", "conf-001", "--api-url", api, "--plain", "--locale", "de-DE", "--timezone", "Europe/Berlin")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Time: 09:00 - 09:30\n")
	assert.Contains(t, stdout, "Email: sam.patel@example.org\n")
	assert.Contains(t, stdout, "Additional Information\n")
}

func TestAppointmentShow_JSON(t *testing.T) {
	setupCLITest(t)
	api := fixtureBackend(t)

	stdout, _, err := execute(t, context.Background(),
		"appointment", "show", "abc123", "--api-url", api, "--output", "json", "--timezone", "UTC")
	require.NoError(t, err)

	var out struct {
		Appointment map[string]any    `json:"appointment"`
		Display     map[string]any    `json:"display"`
		Links       map[string]string `json:"links"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))

	assert.Equal(t, "abc123", out.Appointment["_id"])
	assert.Equal(t, "Pending", out.Display["badgeText"])
	assert.Equal(t, "yellow", out.Display["badge"])
	assert.Equal(t, false, out.Display["showEmail"])
	assert.Equal(t, "http://localhost:3000/my-appointments", out.Links["back"])
	assert.Equal(t, "http://localhost:3000/doctordetails/doc-7", out.Links["doctor"])
}

func TestAppointmentShow_Failures(t *testing.T) {
	setupCLITest(t)
	api := fixtureBackend(t)

	tests := []struct {
		name string
		id   string
		url  string
	}{
		{"not found", "missing", api},
		{"schema violation", "broken-001", api},
		{"unreachable backend", "abc123", "http://127.0.0.1:1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, err := execute(t, context.Background(),
				"appointment", "show", tt.id, "--api-url", tt.url, "--plain", "--timeout", "2s")

			require.Error(t, err)
			assert.Empty(t, stdout)
			assert.Equal(t, "Failed to load appointment details.\n", stderr)

			code, reported := cli.ExitCode(err)
			assert.Equal(t, 1, code)
			assert.True(t, reported)
		})
	}
}

func TestAppointmentShow_InvalidFlags(t *testing.T) {
	setupCLITest(t)

	_, _, err := execute(t, context.Background(), "appointment", "show", "abc123", "--output", "xml")
	require.ErrorIs(t, err, config.ErrInvalidConfig)

	_, _, err = execute(t, context.Background(), "appointment", "show", "abc123", "--timezone", "Mars/Olympus")
	require.ErrorIs(t, err, config.ErrInvalidConfig)

	_, _, err = execute(t, context.Background(), "appointment", "show")
	require.Error(t, err)
}

func TestConfigCommands(t *testing.T) {
	path := setupCLITest(t)

	stdout, _, err := execute(t, context.Background(), "config", "init")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Configuration initialized at "+path)
	_, err = os.Stat(path)
	require.NoError(t, err)

	_, _, err = execute(t, context.Background(), "config", "init")
	require.ErrorIs(t, err, config.ErrConfigExists)

	_, _, err = execute(t, context.Background(), "config", "init", "--force")
	require.NoError(t, err)

	stdout, _, err = execute(t, context.Background(), "config", "validate")
	require.NoError(t, err)
	assert.Contains(t, stdout, "is valid")

	t.Setenv("MEDIBOOK_API_BASE_URL", "https://api.example.org")
	stdout, _, err = execute(t, context.Background(), "config", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "base_url: https://api.example.org")

	stdout, _, err = execute(t, context.Background(), "config", "path")
	require.NoError(t, err)
	assert.Equal(t, path, strings.TrimSpace(stdout))
}

func TestConfigValidate_Invalid(t *testing.T) {
	path := setupCLITest(t)
	require.NoError(t, os.WriteFile(path, []byte("display:\n  timezone: Nowhere/Special\n"), 0o600))

	_, _, err := execute(t, context.Background(), "config", "validate")
	require.ErrorIs(t, err, config.ErrInvalidConfig)

	_, _, err = execute(t, context.Background(), "config", "show")
	require.ErrorIs(t, err, config.ErrInvalidConfig, "commands that need config refuse an invalid file")
}

func TestConfigShow_ProjectOverride(t *testing.T) {
	setupCLITest(t)
	project := t.TempDir()
	dir := filepath.Join(project, ".medibook")
	require.NoError(t, os.MkdirAll(dir, 0o750))
	projectFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(projectFile, []byte("web:\n  base_url: https://clinic.example.org\n"), 0o600))

	stdout, _, err := execute(t, context.Background(), "config", "show", "--project-dir", project)
	require.NoError(t, err)
	assert.Contains(t, stdout, "base_url: https://clinic.example.org")

	stdout, _, err = execute(t, context.Background(), "config", "path", "--project-dir", project)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(stdout), projectFile))
}

func TestConfigInit_Project(t *testing.T) {
	global := setupCLITest(t)
	project := t.TempDir()
	projectFile := filepath.Join(project, ".medibook", "config.yaml")

	stdout, _, err := execute(t, context.Background(), "config", "init", "--project", "--project-dir", project)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Configuration initialized at "+projectFile)
	assert.Contains(t, stdout, "Created .gitignore")

	_, err = os.Stat(projectFile)
	require.NoError(t, err)
	_, err = os.Stat(global)
	assert.True(t, os.IsNotExist(err), "global config must not be written")

	gitignore, err := os.ReadFile(filepath.Join(project, ".medibook", ".gitignore"))
	require.NoError(t, err)
	assert.Contains(t, string(gitignore), "*.log")

	_, _, err = execute(t, context.Background(), "config", "init", "--project", "--project-dir", project)
	require.ErrorIs(t, err, config.ErrConfigExists)

	stdout, _, err = execute(t, context.Background(), "config", "init", "--project", "--project-dir", project, "--force")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "Created .gitignore")

	stdout, _, err = execute(t, context.Background(), "config", "path", "--project-dir", project)
	require.NoError(t, err)
	assert.Contains(t, stdout, projectFile)
}

func TestVersionCommand(t *testing.T) {
	setupCLITest(t)

	stdout, _, err := execute(t, context.Background(), "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "medibook ")
}

func TestFixturesList(t *testing.T) {
	setupCLITest(t)

	stdout, _, err := execute(t, context.Background(), "fixtures", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "abc123\n")
	assert.Contains(t, stdout, "broken-001\n")

	file := filepath.Join(t.TempDir(), "fixtures.yaml")
	require.NoError(t, os.WriteFile(file, []byte("appointments:\n  - _id: only-one\n"), 0o600))
	stdout, _, err = execute(t, context.Background(), "fixtures", "list", "--file", file)
	require.NoError(t, err)
	assert.Equal(t, "only-one\n", stdout)

	_, _, err = execute(t, context.Background(), "fixtures", "list", "--file", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestFixturesServe_StopsOnCancel(t *testing.T) {
	setupCLITest(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	var stdout bytes.Buffer

	go func() {
		cmd := cli.NewRootCmd("test")
		cmd.SetOut(&stdout)
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"fixtures", "serve", "--addr", "127.0.0.1:0"})
		done <- cmd.ExecuteContext(ctx)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("fixture server did not stop")
	}
	assert.Contains(t, stdout.String(), "Serving 5 appointments on 127.0.0.1:0")
	assert.Contains(t, stdout.String(), "Fixture server stopped")
}

func TestExitCode(t *testing.T) {
	code, reported := cli.ExitCode(nil)
	assert.Equal(t, 0, code)
	assert.False(t, reported)

	code, reported = cli.ExitCode(errors.New("boom"))
	assert.Equal(t, 1, code)
	assert.False(t, reported)

	wrapped := errors.Join(errors.New("outer"), &cli.ExitError{ExitCode: 3, Reason: "failed"})
	code, reported = cli.ExitCode(wrapped)
	assert.Equal(t, 3, code)
	assert.True(t, reported)
}
