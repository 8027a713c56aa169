package util_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	util "github.com/saulo-duarte/streaker/internal/utils"
)

func TestDateUnmarshalJSON(t *testing.T) {
	cases := map[string]string{
		"DayKey":        `"2024-01-03"`,
		"RFC3339":       `"2024-01-03T17:45:00Z"`,
		"RFC3339Offset": `"2024-01-03T10:00:00-03:00"`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			var d util.Date
			require.NoError(t, json.Unmarshal([]byte(raw), &d))
			assert.Equal(t, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), d.Time)
		})
	}

	t.Run("Invalid", func(t *testing.T) {
		var d util.Date
		assert.Error(t, json.Unmarshal([]byte(`"03/01/2024"`), &d))
	})

	t.Run("Null", func(t *testing.T) {
		var d util.Date
		require.NoError(t, json.Unmarshal([]byte(`null`), &d))
		assert.True(t, d.IsZero())
		assert.Nil(t, util.ToTimePtr(&d))
	})
}

func TestDateMarshalJSON(t *testing.T) {
	b, err := json.Marshal(util.NewDate(time.Date(2024, 5, 6, 12, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	assert.Equal(t, `"2024-05-06"`, string(b))
}
