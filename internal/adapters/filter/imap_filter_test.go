package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFetchWindowNewMessages(t *testing.T) {
	from, to, ok := fetchWindow(12, 10, 10)

	assert.True(t, ok)
	assert.Equal(t, uint32(11), from)
	assert.Equal(t, uint32(12), to)
}

func TestFetchWindowNothingNew(t *testing.T) {
	_, _, ok := fetchWindow(10, 10, 10)
	assert.False(t, ok)

	_, _, ok = fetchWindow(0, 0, 10)
	assert.False(t, ok, "empty mailbox has nothing to fetch")
}

func TestFetchWindowCappedByMaxMessages(t *testing.T) {
	from, to, ok := fetchWindow(100, 0, 10)

	assert.True(t, ok)
	assert.Equal(t, uint32(91), from)
	assert.Equal(t, uint32(100), to)
}

func TestFetchWindowResetsAfterExpunge(t *testing.T) {
	// The mailbox shrank from 10 to 3 messages, then one more arrived. The
	// stale high-water mark must not suppress the fetch.
	from, to, ok := fetchWindow(4, 10, 10)

	assert.True(t, ok)
	assert.Equal(t, uint32(1), from)
	assert.Equal(t, uint32(4), to)
}

func TestFetchWindowExpungeWithCap(t *testing.T) {
	from, to, ok := fetchWindow(50, 80, 10)

	assert.True(t, ok)
	assert.Equal(t, uint32(41), from, "refetch after a shrink is still capped")
	assert.Equal(t, uint32(50), to)
}
