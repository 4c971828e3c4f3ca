package cli

import (
	"testing"

	"github.com/padmenu/padmenu/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateLogFlags(t *testing.T) {
	testCases := []struct {
		name       string
		level      string
		format     string
		wantLevel  string
		wantFormat string
		wantErr    bool
	}{
		{name: "defaults", level: "info", format: "text", wantLevel: "info", wantFormat: "text"},
		{name: "uppercase normalized", level: "DEBUG", format: "JSON", wantLevel: "debug", wantFormat: "json"},
		{name: "bad level", level: "verbose", format: "text", wantErr: true},
		{name: "bad format", level: "info", format: "yaml", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			level, format, err := ValidateLogFlags(tc.level, tc.format)
			if tc.wantErr {
				require.Error(t, err)
				var exitErr *ExitError
				require.ErrorAs(t, err, &exitErr)
				assert.Equal(t, 2, exitErr.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantLevel, level)
			assert.Equal(t, tc.wantFormat, format)
		})
	}
}

func TestNewLogger_LevelFiltering(t *testing.T) {
	buf := &testutil.SafeBuffer{}
	logger := NewLogger("warn", "text", buf)

	logger.Debug("quiet")
	logger.Info("quiet too")
	logger.Warn("loud")

	out := buf.String()
	assert.NotContains(t, out, "quiet")
	assert.Contains(t, out, "loud")
}

func TestNewLogger_JSONFormat(t *testing.T) {
	buf := &testutil.SafeBuffer{}
	logger := NewLogger("info", "json", buf)

	logger.Info("hello", "screen", "general")
	assert.Contains(t, buf.String(), `"msg":"hello"`)
	assert.Contains(t, buf.String(), `"screen":"general"`)
}
