package dtos

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		d := NewDate(time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC))

		raw, err := json.Marshal(d)
		require.NoError(t, err)
		require.Equal(t, `"2025-08-15"`, string(raw))

		var got Date
		require.NoError(t, json.Unmarshal(raw, &got))
		require.True(t, got.Equal(d.Time))
	})

	t.Run("rejects timestamps", func(t *testing.T) {
		var got Date
		err := json.Unmarshal([]byte(`"2025-08-15T10:00:00Z"`), &got)
		require.Error(t, err)
	})

	t.Run("empty string is the zero date", func(t *testing.T) {
		var got Date
		require.NoError(t, json.Unmarshal([]byte(`""`), &got))
		require.True(t, got.IsZero())
	})
}
