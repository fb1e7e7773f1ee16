package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLogger_JSON(t *testing.T) {
	previous := log.Logger
	defer func() {
		log.Logger = previous
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	}()

	var buf bytes.Buffer
	initLogger(&buf, "sportzone-api", "production", "warn")

	log.Info().Msg("dropped")
	log.Warn().Str("reference", "BK-1").Msg("kept")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "sportzone-api", entry["service"])
	assert.Equal(t, "production", entry["env"])
	assert.Equal(t, "BK-1", entry["reference"])
	assert.Equal(t, "kept", entry["message"])
}

func TestLoggerFromContext_NoSpan(t *testing.T) {
	logger := LoggerFromContext(context.Background())
	assert.NotNil(t, logger)
}

func TestRecordHelpers_NilMetrics(t *testing.T) {
	ctx := context.Background()
	assert.NotPanics(t, func() {
		RecordRequestMetric(ctx, nil, "GET", "/health", 200, 0)
		RecordPaymentSession(ctx, nil, "mock", "session_open")
		RecordBookingStored(ctx, nil, "facility")
		RecordPersistFailure(ctx, nil)
		RecordDBMetric(ctx, nil, "bookings.create", 0)
	})
}
