package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithOutput(&buf, "info", "json")
	require.NoError(t, err)

	log.WithField("filename", "a.png").Info("stored")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "stored", line["msg"])
	assert.Equal(t, "a.png", line["filename"])
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithOutput(&buf, "warn", "text")
	require.NoError(t, err)

	log.Info("hidden")
	assert.Empty(t, buf.String())
}

func TestNewRejectsBadInput(t *testing.T) {
	_, err := New("loud", "text")
	assert.Error(t, err)

	_, err = New("info", "xml")
	assert.Error(t, err)
}
