package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_KafkaMessageClick_RoundTrip(t *testing.T) {
	sent := KafkaMessageClick{
		EventID:   uuid.New(),
		URLID:     42,
		IPAddress: "203.0.113.7",
		UserAgent: "Mozilla/5.0",
		Timestamp: time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC),
	}

	payload, err := json.Marshal(sent)
	require.NoError(t, err)

	var got KafkaMessageClick
	require.NoError(t, json.Unmarshal(payload, &got))

	assert.Equal(t, sent.EventID, got.EventID)
	assert.Equal(t, sent.URLID, got.URLID)
	assert.Equal(t, sent.IPAddress, got.IPAddress)
	assert.Equal(t, sent.UserAgent, got.UserAgent)
	assert.True(t, sent.Timestamp.Equal(got.Timestamp))
}

func Test_KafkaMessageClick_EmptyMeta(t *testing.T) {
	// IP and user agent are best effort and may be absent
	payload := []byte(`{"event_id":"8b8f0f2e-8f2a-4f6c-9a6c-2f8f0f2e8f2a","url_id":7,"ip_address":"","user_agent":"","timestamp":"2025-06-01T12:30:00Z"}`)

	var got KafkaMessageClick
	require.NoError(t, json.Unmarshal(payload, &got))

	assert.Equal(t, int64(7), got.URLID)
	assert.Empty(t, got.IPAddress)
	assert.Empty(t, got.UserAgent)
}
