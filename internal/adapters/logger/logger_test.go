package logger_test

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/jot/internal/adapters/logger"
)

// captureStderr captures output written to os.Stderr during the execution of fn.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	originalStderr := os.Stderr

	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stderr = w
	t.Cleanup(func() { os.Stderr = originalStderr })

	done := make(chan string, 1)
	go func() {
		buf, _ := io.ReadAll(r)
		done <- string(buf)
	}()

	fn()

	require.NoError(t, w.Close())
	output := <-done
	require.NoError(t, r.Close())
	return output
}

func TestLogger_Info(t *testing.T) {
	output := captureStderr(t, func() {
		logger.New().Info("some message")
	})

	assert.Contains(t, output, "some message")
	assert.Contains(t, output, "INFO")
	assert.Contains(t, output, "jot")
}

func TestLogger_Warn(t *testing.T) {
	output := captureStderr(t, func() {
		logger.New().Warn("some warning")
	})

	assert.Contains(t, output, "some warning")
	assert.Contains(t, output, "WARN")
}

func TestLogger_Error(t *testing.T) {
	output := captureStderr(t, func() {
		logger.New().Error(os.ErrPermission)
	})

	assert.Contains(t, output, "permission denied")
	assert.Contains(t, output, "ERRO")
}

func TestLogger_SetOutput(t *testing.T) {
	var buf bytes.Buffer
	lg, ok := logger.New().(*logger.Logger)
	require.True(t, ok)

	lg.SetOutput(&buf)
	lg.Info("redirected")

	assert.Contains(t, buf.String(), "redirected")
}
