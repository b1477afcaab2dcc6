package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursor_RoundTrip(t *testing.T) {
	ts := time.Date(2026, 10, 17, 9, 30, 0, 123456000, time.UTC)

	encoded := EncodeCursor("log-42", ts)
	decoded, err := DecodeCursor(encoded)

	require.NoError(t, err)
	assert.Equal(t, "log-42", decoded.LastID)
	assert.True(t, decoded.CreatedAt.Equal(ts))
	assert.NotContains(t, encoded, "=")
}

func TestDecodeCursor_Empty(t *testing.T) {
	c, err := DecodeCursor("")
	assert.NoError(t, err)
	assert.Nil(t, c)
}

func TestDecodeCursor_Invalid(t *testing.T) {
	for _, in := range []string{"%%%", "bm9waXBl", EncodeCursor("x", time.Now())[:4]} {
		_, err := DecodeCursor(in)
		assert.ErrorIs(t, err, ErrInvalidCursor, in)
	}
}

func TestEncodeCursor_EmptyID(t *testing.T) {
	assert.Equal(t, "", EncodeCursor("", time.Now()))
}

type row struct {
	id string
	at time.Time
}

func TestNextPage(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []row{{"a", base.Add(3 * time.Second)}, {"b", base.Add(2 * time.Second)}, {"c", base.Add(time.Second)}}
	getID := func(r row) string { return r.id }
	getAt := func(r row) time.Time { return r.at }

	items, next, more := NextPage(rows, 2, getID, getAt)
	assert.Len(t, items, 2)
	assert.True(t, more)
	c, err := DecodeCursor(next)
	require.NoError(t, err)
	assert.Equal(t, "b", c.LastID)

	items, next, more = NextPage(rows, 3, getID, getAt)
	assert.Len(t, items, 3)
	assert.False(t, more)
	assert.Equal(t, "", next)
}
