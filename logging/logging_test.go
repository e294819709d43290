package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupWriter(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	var buf bytes.Buffer
	require.NoError(t, SetupWriter(&buf, "WARN", FormatJSON))
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	log.Info().Msg("hidden")
	log.Warn().Str("column", "LAT").Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"column":"LAT"`)
	assert.Contains(t, buf.String(), `"message":"shown"`)

	buf.Reset()
	require.NoError(t, SetupWriter(&buf, "debug", FormatConsole))
	log.Debug().Msg("visible")
	assert.Contains(t, buf.String(), "visible")

	require.NoError(t, SetupWriter(&buf, "", ""))
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestSetupWriterInvalid(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	var buf bytes.Buffer
	assert.Error(t, SetupWriter(&buf, "loud", FormatJSON))
	assert.Error(t, SetupWriter(&buf, "info", "xml"))
}
