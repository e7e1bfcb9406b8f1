package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/leads-api/pkg/logger"
)

func TestNew_JSONEnProduccion(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Output: &buf})

	log.Component("leads").Info().Str("lead_id", "abc").Msg("lead creado")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "leads", entry["component"])
	assert.Equal(t, "abc", entry["lead_id"])
	assert.Equal(t, "lead creado", entry["message"])
}

func TestNew_NivelFiltra(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "warn", Output: &buf})

	log.Info().Msg("no debe salir")
	assert.Empty(t, buf.String())

	log.Warn().Msg("sí debe salir")
	assert.Contains(t, buf.String(), "sí debe salir")
}

func TestIsConsoleEnv(t *testing.T) {
	assert.True(t, logger.IsConsoleEnv("local"))
	assert.True(t, logger.IsConsoleEnv("Development"))
	assert.False(t, logger.IsConsoleEnv("docker"))
	assert.False(t, logger.IsConsoleEnv("production"))
}

func TestNewNop_NoEscribe(t *testing.T) {
	log := logger.NewNop()
	assert.NotPanics(t, func() { log.Error().Msg("descartado") })
}
