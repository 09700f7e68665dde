package batch

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ab "github.com/spetersoncode/a2abatch"
)

func task(raw string) ab.Task {
	return ab.NewTask([]byte(raw))
}

func TestApply(t *testing.T) {
	boom := ab.NewTransportError("request failed with status 500", 500, nil)

	results := []Result{
		Succeeded(0, task(`{"id":"t1"}`)),
		Failed(1, StageBuilt, boom),
		Succeeded(2, task(`{"id":"t3"}`)),
	}

	t.Run("continue keeps every slot", func(t *testing.T) {
		outputs, err := Apply(ContinueOnFailure, results)
		require.NoError(t, err)
		require.Len(t, outputs, 3)

		data, err := json.Marshal(outputs)
		require.NoError(t, err)
		assert.JSONEq(t, `[{"id":"t1"},{"error":"request failed with status 500"},{"id":"t3"}]`, string(data))
	})

	t.Run("fail fast aborts without outputs", func(t *testing.T) {
		outputs, err := Apply(FailFast, results)
		require.Error(t, err)
		assert.Nil(t, outputs)

		var abortErr *AbortError
		require.True(t, errors.As(err, &abortErr))
		assert.Equal(t, 1, abortErr.Index)
		assert.ErrorIs(t, err, boom)
		assert.True(t, ab.IsTransport(err))
	})

	t.Run("all succeeded is identical in both modes", func(t *testing.T) {
		ok := []Result{Succeeded(0, task(`{}`)), Succeeded(1, task(`{"id":"b"}`))}

		ff, err := Apply(FailFast, ok)
		require.NoError(t, err)
		cont, err := Apply(ContinueOnFailure, ok)
		require.NoError(t, err)
		assert.Equal(t, ff, cont)
	})

	t.Run("empty batch", func(t *testing.T) {
		outputs, err := Apply(FailFast, nil)
		require.NoError(t, err)
		assert.NotNil(t, outputs)
		assert.Empty(t, outputs)
	})
}

func TestShouldStop(t *testing.T) {
	failed := Failed(0, StageDispatched, ab.NewProtocolError("invalid response", ab.ErrMissingResult))
	ok := Succeeded(0, task(`{}`))

	assert.True(t, ShouldStop(FailFast, failed))
	assert.False(t, ShouldStop(FailFast, ok))
	assert.False(t, ShouldStop(ContinueOnFailure, failed))
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{"", FailFast, false},
		{"fail-fast", FailFast, false},
		{"Continue", ContinueOnFailure, false},
		{"sometimes", FailFast, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMode(tt.input)
			if tt.wantErr {
				assert.True(t, ab.IsConfig(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, ContinueOnFailure, ModeFor(true))
	assert.Equal(t, FailFast, ModeFor(false))
}

func TestAbortError(t *testing.T) {
	cause := errors.New("connection refused")
	err := &AbortError{Index: 4, Cause: cause}

	assert.Equal(t, "batch aborted at item 4: connection refused", err.Error())
	assert.Equal(t, cause, err.Unwrap())
}
