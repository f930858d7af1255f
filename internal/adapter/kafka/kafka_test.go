package kafka

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/solar-almanac-service/internal/domain"
)

func TestSerializeToMessage(t *testing.T) {
	computed := time.Date(2014, time.January, 1, 6, 0, 0, 0, time.UTC)
	rise := time.Date(2014, time.January, 1, 7, 30, 0, 0, time.FixedZone("UTC-5", -5*3600))
	entry := domain.AlmanacEntry{
		ID:         "sun-abc123",
		Place:      domain.Place{Name: "Québec City", Latitude: 46.805, Longitude: -71.2316},
		Date:       "2014-01-01",
		UTCOffset:  -5,
		Status:     domain.StatusOK,
		Sunrise:    &rise,
		ComputedAt: computed,
	}

	msg, err := serializeToMessage(entry)
	require.NoError(t, err)

	assert.Equal(t, []byte("sun-abc123"), msg.Key)
	assert.Contains(t, string(msg.Value), `"status":"ok"`)
	assert.Contains(t, string(msg.Value), `"sunrise":"2014-01-01T07:30:00-05:00"`)

	require.Len(t, msg.Headers, 3)
	assert.Equal(t, "date", msg.Headers[0].Key)
	assert.Equal(t, []byte("2014-01-01"), msg.Headers[0].Value)
	assert.Equal(t, "status", msg.Headers[1].Key)
	assert.Equal(t, []byte("ok"), msg.Headers[1].Value)
	assert.Equal(t, "computed_at", msg.Headers[2].Key)
	assert.Equal(t, []byte(computed.Format(time.RFC3339)), msg.Headers[2].Value)
}
