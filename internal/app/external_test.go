package app_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/jot/internal/core/domain"
	"go.trai.ch/jot/internal/core/ports"
	"go.uber.org/mock/gomock"
)

func TestApp_Choose(t *testing.T) {
	needsArg := recipe("deploy")
	needsArg.Parameters = []domain.Parameter{{Name: "env"}}
	hidden := recipe("_setup")
	hidden.Attributes.Private = true
	h := newHarness(t, newTable(t, recipe("build", line(1, lit("go build"))), needsArg, hidden, recipe("test")))

	var offered string
	h.process.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p *ports.Process) (int, error) {
			assert.Equal(t, "sh", p.Program)
			assert.Equal(t, []string{"-cu", "fzf --multi"}, p.Args)
			assert.Equal(t, projectDir, p.Dir)
			data, err := io.ReadAll(p.Stdin)
			require.NoError(t, err)
			offered = string(data)
			_, err = io.WriteString(p.Stdout, "test\nbuild\n")
			return 0, err
		},
	)

	require.NoError(t, h.app.Choose(context.Background(), domain.Settings{}, ""))

	assert.Equal(t, "build\ntest\n", offered)
	assert.Equal(t, []string{"test", "build"}, h.recipes())
}

func TestApp_Choose_ChooserFromEnvironment(t *testing.T) {
	h := newHarness(t, newTable(t, recipe("build")), "JOT_CHOOSER=sk")
	h.process.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p *ports.Process) (int, error) {
			assert.Equal(t, []string{"-cu", "sk"}, p.Args)
			return 0, nil
		},
	)

	require.NoError(t, h.app.Choose(context.Background(), domain.Settings{}, ""))
	assert.Equal(t, []string{"build"}, h.recipes())
}

func TestApp_Choose_Errors(t *testing.T) {
	t.Run("nothing to choose", func(t *testing.T) {
		only := recipe("deploy")
		only.Parameters = []domain.Parameter{{Name: "env"}}
		h := newHarness(t, newTable(t, only))

		err := h.app.Choose(context.Background(), domain.Settings{}, "fzf")

		var none *domain.NoChoosableRecipesError
		require.ErrorAs(t, err, &none)
	})

	tests := []struct {
		name   string
		status int
		err    error
		check  func(t *testing.T, err error)
	}{
		{
			name: "invoke",
			err:  errors.New("exec: not found"),
			check: func(t *testing.T, err error) {
				var invoke *domain.ChooserInvokeError
				require.ErrorAs(t, err, &invoke)
				assert.Equal(t, []string{"sh", "-cu"}, invoke.Shell)
				assert.Equal(t, "fzf", invoke.Chooser)
			},
		},
		{
			name: "write",
			err:  &ports.PipeError{Direction: ports.PipeStdin, Err: io.ErrClosedPipe},
			check: func(t *testing.T, err error) {
				var write *domain.ChooserWriteError
				require.ErrorAs(t, err, &write)
				assert.ErrorIs(t, err, io.ErrClosedPipe)
			},
		},
		{
			name: "read",
			err:  &ports.PipeError{Direction: ports.PipeStdout, Err: io.ErrUnexpectedEOF},
			check: func(t *testing.T, err error) {
				var read *domain.ChooserReadError
				require.ErrorAs(t, err, &read)
			},
		},
		{
			name:   "status",
			status: 130,
			check: func(t *testing.T, err error) {
				var status *domain.ChooserStatusError
				require.ErrorAs(t, err, &status)
				assert.Equal(t, 130, domain.ExitCode(err))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, newTable(t, recipe("build")))
			h.process.EXPECT().Run(gomock.Any(), gomock.Any()).Return(tt.status, tt.err)

			err := h.app.Choose(context.Background(), domain.Settings{}, "fzf")
			tt.check(t, err)
			assert.Empty(t, h.executed)
		})
	}
}

func TestApp_Edit(t *testing.T) {
	t.Run("visual wins", func(t *testing.T) {
		h := newHarness(t, newTable(t), "VISUAL=code", "EDITOR=nano")
		h.process.EXPECT().Run(gomock.Any(), &ports.Process{
			Program: "code",
			Args:    []string{recipePath},
			Dir:     projectDir,
		}).Return(0, nil)

		require.NoError(t, h.app.Edit(context.Background(), domain.Settings{}))
	})

	t.Run("falls back to vim", func(t *testing.T) {
		h := newHarness(t, newTable(t))
		h.process.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p *ports.Process) (int, error) {
				assert.Equal(t, "vim", p.Program)
				return 0, nil
			},
		)

		require.NoError(t, h.app.Edit(context.Background(), domain.Settings{}))
	})

	t.Run("status", func(t *testing.T) {
		h := newHarness(t, newTable(t), "EDITOR=nano")
		h.process.EXPECT().Run(gomock.Any(), gomock.Any()).Return(2, nil)

		err := h.app.Edit(context.Background(), domain.Settings{})

		var status *domain.EditorStatusError
		require.ErrorAs(t, err, &status)
		assert.Equal(t, "nano", status.Editor)
		assert.Equal(t, 2, domain.ExitCode(err))
	})

	t.Run("invoke", func(t *testing.T) {
		h := newHarness(t, newTable(t), "EDITOR=nano")
		h.process.EXPECT().Run(gomock.Any(), gomock.Any()).Return(0, errors.New("not found"))

		err := h.app.Edit(context.Background(), domain.Settings{})

		var invoke *domain.EditorInvokeError
		require.ErrorAs(t, err, &invoke)
	})
}

func TestApp_Exec(t *testing.T) {
	table := newTable(t, recipe("build"))
	require.NoError(t, table.AddAssignment(domain.Assignment{Name: "VERSION", Value: lit("1.2"), Export: true}))
	require.NoError(t, table.AddAssignment(domain.Assignment{Name: "local", Value: lit("x")}))

	t.Run("exports variables", func(t *testing.T) {
		h := newHarness(t, table)
		h.process.EXPECT().Run(gomock.Any(), &ports.Process{
			Program: "make",
			Args:    []string{"release"},
			Dir:     projectDir,
			Env:     map[string]string{"VERSION": "1.2"},
		}).Return(0, nil)

		require.NoError(t, h.app.Exec(context.Background(), domain.Settings{}, []string{"make", "release"}))
	})

	t.Run("status", func(t *testing.T) {
		h := newHarness(t, table)
		h.process.EXPECT().Run(gomock.Any(), gomock.Any()).Return(3, nil)

		err := h.app.Exec(context.Background(), domain.Settings{}, []string{"false"})

		var status *domain.CommandStatusError
		require.ErrorAs(t, err, &status)
		assert.Equal(t, 3, domain.ExitCode(err))
	})

	t.Run("invoke", func(t *testing.T) {
		h := newHarness(t, table)
		h.process.EXPECT().Run(gomock.Any(), gomock.Any()).Return(0, errors.New("not found"))

		err := h.app.Exec(context.Background(), domain.Settings{}, []string{"missing"})

		var invoke *domain.CommandInvokeError
		require.ErrorAs(t, err, &invoke)
		assert.Equal(t, "missing", invoke.Binary)
	})

	t.Run("no command", func(t *testing.T) {
		h := newHarness(t, table)

		err := h.app.Exec(context.Background(), domain.Settings{}, nil)
		require.ErrorIs(t, err, domain.ErrNoCommand)
	})
}
