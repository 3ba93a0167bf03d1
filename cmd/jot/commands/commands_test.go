package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/jot/cmd/jot/commands"
	"go.trai.ch/jot/internal/build"
	"go.trai.ch/jot/internal/core/domain"
)

type call struct {
	method   string
	words    []string
	settings domain.Settings
	chooser  string
}

type mockApp struct {
	calls []call
	err   error
}

func (m *mockApp) record(c call) error {
	m.calls = append(m.calls, c)
	return m.err
}

func (m *mockApp) Run(_ context.Context, words []string, settings domain.Settings) error {
	return m.record(call{method: "run", words: words, settings: settings})
}

func (m *mockApp) List(_ context.Context, settings domain.Settings) error {
	return m.record(call{method: "list", settings: settings})
}

func (m *mockApp) Dump(_ context.Context, settings domain.Settings) error {
	return m.record(call{method: "dump", settings: settings})
}

func (m *mockApp) Edit(_ context.Context, settings domain.Settings) error {
	return m.record(call{method: "edit", settings: settings})
}

func (m *mockApp) Choose(_ context.Context, settings domain.Settings, chooser string) error {
	return m.record(call{method: "choose", settings: settings, chooser: chooser})
}

func (m *mockApp) Exec(_ context.Context, settings domain.Settings, command []string) error {
	return m.record(call{method: "exec", words: command, settings: settings})
}

func execute(t *testing.T, m *mockApp, args ...string) (string, error) {
	t.Helper()
	cli := commands.New(m)
	cli.SetArgs(args)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	err := cli.Execute(context.Background())
	return buf.String(), err
}

func TestCommands_Run(t *testing.T) {
	t.Run("bare recipes run through the root command", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "-n", "--color", "never", "build", "--release", "x")
		require.NoError(t, err)

		require.Len(t, m.calls, 1)
		assert.Equal(t, "run", m.calls[0].method)
		assert.Equal(t, []string{"build", "--release", "x"}, m.calls[0].words)
		assert.True(t, m.calls[0].settings.DryRun)
	})

	t.Run("run subcommand wires flags", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m,
			"run", "--file", "ci.yaml", "--set", "mode=prod", "--shell", "bash", "--quiet",
			"--color", "never", "deploy", "eu",
		)
		require.NoError(t, err)

		require.Len(t, m.calls, 1)
		got := m.calls[0]
		assert.Equal(t, []string{"deploy", "eu"}, got.words)
		assert.Equal(t, "ci.yaml", got.settings.File)
		assert.Equal(t, map[string]string{"mode": "prod"}, got.settings.Overrides)
		assert.Equal(t, []string{"bash", "-cu"}, got.settings.ShellCommand())
		assert.True(t, got.settings.Quiet)
	})

	t.Run("no recipes runs the default", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "--color", "never")
		require.NoError(t, err)

		require.Len(t, m.calls, 1)
		assert.Empty(t, m.calls[0].words)
	})

	t.Run("returns error on run failure", func(t *testing.T) {
		m := &mockApp{err: errors.New("simulated error")}
		_, err := execute(t, m, "--color", "never", "build")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})

	t.Run("rejects a malformed override", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "--set", "broken", "build")
		require.Error(t, err)
		assert.Empty(t, m.calls)
	})
}

func TestCommands_Subcommands(t *testing.T) {
	tests := []struct {
		args   []string
		method string
		words  []string
	}{
		{args: []string{"list"}, method: "list"},
		{args: []string{"ls"}, method: "list"},
		{args: []string{"dump"}, method: "dump"},
		{args: []string{"edit"}, method: "edit"},
		{args: []string{"exec", "make", "-j4"}, method: "exec", words: []string{"make", "-j4"}},
	}

	for _, tt := range tests {
		t.Run(tt.args[0], func(t *testing.T) {
			m := &mockApp{}
			_, err := execute(t, m, append([]string{"--color", "never"}, tt.args...)...)
			require.NoError(t, err)

			require.Len(t, m.calls, 1)
			assert.Equal(t, tt.method, m.calls[0].method)
			assert.Equal(t, tt.words, m.calls[0].words)
		})
	}
}

func TestCommands_Choose(t *testing.T) {
	m := &mockApp{}
	_, err := execute(t, m, "choose", "--chooser", "sk --multi", "--color", "never")
	require.NoError(t, err)

	require.Len(t, m.calls, 1)
	assert.Equal(t, "sk --multi", m.calls[0].chooser)
}

func TestCommands_Exec_RequiresCommand(t *testing.T) {
	m := &mockApp{}
	_, err := execute(t, m, "exec")
	require.Error(t, err)
	assert.Empty(t, m.calls)
}

func TestCommands_Version(t *testing.T) {
	out, err := execute(t, &mockApp{}, "version")
	require.NoError(t, err)
	assert.Equal(t, "jot version "+build.Version+" (commit: "+build.Commit+", date: "+build.Date+")\n", out)
}
