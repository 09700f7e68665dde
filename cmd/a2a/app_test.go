package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ab "github.com/spetersoncode/a2abatch"
	"github.com/spetersoncode/a2abatch/a2a"
	"github.com/spetersoncode/a2abatch/batch"
)

func newAgent(t *testing.T) *httptest.Server {
	t.Helper()
	agent := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			w.Write([]byte(`{"name":"echo-agent","version":"2.0.0","skills":[{"id":"echo","name":"Echo"}]}`))
			return
		}

		var req a2a.Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		text := req.Params.Message.TextContent()
		if text == "fail" {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"result":  map[string]any{"id": "task-" + text, "contextId": req.Params.Message.ContextID},
		})
	}))
	t.Cleanup(agent.Close)
	return agent
}

// run executes the CLI with args and returns stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	for _, key := range []string{"A2A_CONFIG", "A2A_SERVER_URL", "A2A_CONTINUE_ON_FAIL", "A2A_LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	var stdout, stderr bytes.Buffer
	app := newApp()
	app.Reader = strings.NewReader(stdin)
	app.Writer = &stdout
	app.ErrWriter = &stderr

	err := app.Run(append([]string{"a2a"}, args...))
	return stdout.String(), err
}

func TestSend_Message(t *testing.T) {
	agent := newAgent(t)

	out, err := run(t, "", "--server-url", agent.URL, "send", "--message", "hi", "--context-id", "ctx-9")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"task-hi","contextId":"ctx-9"}]`, out)
}

func TestSend_Batch(t *testing.T) {
	agent := newAgent(t)
	input := "{\"message\":\"a\"}\n{\"message\":\"fail\"}\n{\"message\":\"c\"}\n"

	t.Run("continue on failure", func(t *testing.T) {
		out, err := run(t, input, "--server-url", agent.URL, "send", "--input", "-", "--continue-on-fail")
		require.NoError(t, err)

		var outputs []map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &outputs))
		require.Len(t, outputs, 3)
		assert.Equal(t, "task-a", outputs[0]["id"])
		assert.Contains(t, outputs[1]["error"], "500")
		assert.Equal(t, "task-c", outputs[2]["id"])
	})

	t.Run("fail fast", func(t *testing.T) {
		out, err := run(t, input, "--server-url", agent.URL, "send", "--input", "-")
		require.Error(t, err)
		assert.Empty(t, out)

		var abortErr *batch.AbortError
		require.True(t, errors.As(err, &abortErr))
		assert.Equal(t, 1, abortErr.Index)
	})

	t.Run("file input and output", func(t *testing.T) {
		dir := t.TempDir()
		in := filepath.Join(dir, "items.json")
		outPath := filepath.Join(dir, "out.json")
		require.NoError(t, os.WriteFile(in, []byte(`[{"message":"x"},{"message":"y"}]`), 0o644))

		stdout, err := run(t, "", "--server-url", agent.URL, "send", "-i", in, "-o", outPath)
		require.NoError(t, err)
		assert.Empty(t, stdout)

		data, err := os.ReadFile(outPath)
		require.NoError(t, err)
		assert.JSONEq(t, `[{"id":"task-x","contextId":""},{"id":"task-y","contextId":""}]`, string(data))
	})
}

func TestSend_Errors(t *testing.T) {
	agent := newAgent(t)

	t.Run("no input", func(t *testing.T) {
		_, err := run(t, "", "--server-url", agent.URL, "send")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--message or --input")
	})

	t.Run("both inputs", func(t *testing.T) {
		_, err := run(t, "", "--server-url", agent.URL, "send", "-m", "a", "-i", "-")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be used together")
	})

	t.Run("missing server URL", func(t *testing.T) {
		_, err := run(t, "", "send", "-m", "a")
		require.Error(t, err)
		assert.True(t, ab.IsConfig(err))
	})
}

func TestCheck(t *testing.T) {
	agent := newAgent(t)

	out, err := run(t, "", "--server-url", agent.URL, "check")
	require.NoError(t, err)
	assert.Contains(t, out, "echo-agent")
	assert.Contains(t, out, "2.0.0")
	assert.Contains(t, out, "Skills:   1")
}
