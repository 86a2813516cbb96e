package analytics

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kajoty/playlist-insights/internal/domain"
)

func manyEvents(n int) []domain.Event {
	events := make([]domain.Event, n)
	for i := range events {
		events[i].Title = fmt.Sprintf("song-%d", i)
	}
	return events
}

func TestPaginateSplitsCollection(t *testing.T) {
	events := manyEvents(1234)

	p1, err := Paginate(events, 500, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, p1.TotalPages)
	assert.Len(t, p1.Events, 500)
	assert.Equal(t, "song-0", p1.Events[0].Title)

	p3, err := Paginate(events, 500, 3)
	require.NoError(t, err)
	assert.Len(t, p3.Events, 234)
	assert.Equal(t, "song-1000", p3.Events[0].Title)
	assert.Equal(t, 1234, p3.TotalEvents)
}

func TestPaginateEmptyCollectionHasOnePage(t *testing.T) {
	p, err := Paginate(nil, 500, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, p.TotalPages, "never zero pages")
	assert.Empty(t, p.Events)
	assert.Zero(t, p.TotalEvents)
}

func TestPaginateExactMultiple(t *testing.T) {
	p, err := Paginate(manyEvents(1000), 500, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, p.TotalPages)
	assert.Len(t, p.Events, 500)
}

func TestPaginateRejectsOutOfRangePage(t *testing.T) {
	events := manyEvents(10)
	for _, page := range []int{0, -1, 2, 99} {
		_, err := Paginate(events, 500, page)
		assert.ErrorIs(t, err, ErrInvalidPage, "page %d", page)
	}
}

func TestPaginateRejectsBadPageSize(t *testing.T) {
	for _, size := range []int{0, -5} {
		_, err := Paginate(manyEvents(10), size, 1)
		assert.ErrorIs(t, err, ErrInvalidPageSize, "size %d", size)
	}
}
