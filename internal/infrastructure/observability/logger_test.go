package observability

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestSessionLoggerCarriesSessionID(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	defer func() { log.Logger = prev }()

	logger := SessionLogger(context.Background(), "sess_42")
	logger.Info().Msg("checked in")

	assert.Contains(t, buf.String(), `"session_id":"sess_42"`)
	assert.Contains(t, buf.String(), "checked in")
}
