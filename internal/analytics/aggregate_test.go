package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kajoty/playlist-insights/internal/domain"
)

// sampleEvents is the shared fixture: two SongX plays on different stations
// plus one SongY play.
func sampleEvents() []domain.Event {
	return []domain.Event{
		ev("A", "ArtistX", "SongX", date(2024, 1, 5), 8),
		ev("B", "ArtistX", "SongX", date(2024, 1, 5), 8),
		ev("A", "ArtistY", "SongY", date(2024, 1, 6), 9),
	}
}

func TestGroupCountByStation(t *testing.T) {
	got := GroupCount(sampleEvents(), ByStation)
	assert.Equal(t, []KeyCount{{Key: "A", Count: 2}, {Key: "B", Count: 1}}, got)
}

func TestTopNTitles(t *testing.T) {
	got := TopN(sampleEvents(), ByTitle, 2)
	assert.Equal(t, []KeyCount{{Key: "SongX", Count: 2}, {Key: "SongY", Count: 1}}, got)
}

func TestTopNTruncatesAndIsDeterministic(t *testing.T) {
	events := []domain.Event{
		ev("A", "", "t1", date(2024, 1, 5), 8),
		ev("A", "", "t2", date(2024, 1, 5), 9),
		ev("A", "", "t3", date(2024, 1, 5), 10),
	}

	// all counts tie at 1: first-encountered order must win, repeatably
	for i := 0; i < 10; i++ {
		got := TopN(events, ByTitle, 2)
		require.Len(t, got, 2)
		assert.Equal(t, "t1", got[0].Key)
		assert.Equal(t, "t2", got[1].Key)
	}

	assert.Len(t, TopN(events, ByTitle, 100), 3, "n larger than key set")
	assert.Empty(t, TopN(events, ByTitle, 0))
	assert.Empty(t, TopN(nil, ByTitle, 5))
}

func TestTopNExcludesEmptyKeys(t *testing.T) {
	events := []domain.Event{
		ev("A", "", "", date(2024, 1, 5), 8), // empty title and artist
		ev("A", "known", "t", date(2024, 1, 5), 9),
	}
	got := TopN(events, ByArtist, 10)
	require.Len(t, got, 1)
	assert.Equal(t, "known", got[0].Key)
	// the excluded row still counts in the collection itself
	assert.Len(t, events, 2)
}

func TestByHourZeroPadded(t *testing.T) {
	events := []domain.Event{
		ev("A", "", "t", date(2024, 1, 5), 9),
		ev("A", "", "t", date(2024, 1, 5), 10),
	}
	got := HourlyDistribution(events)
	require.Len(t, got, 2)
	assert.Equal(t, "09", got[0].Key, "zero padding keeps lexical and numeric order aligned")
	assert.Equal(t, "10", got[1].Key)
}

func TestByHourExcludesTimestamplessRows(t *testing.T) {
	events := []domain.Event{{Title: "no time", Hour: -1}}
	assert.Empty(t, HourlyDistribution(events))
}

func TestPlayedTimeHistogramCleansValues(t *testing.T) {
	mk := func(pt string) domain.Event {
		e := ev("A", "", "t", date(2024, 1, 5), 8)
		e.PlayedTime = pt
		return e
	}
	events := []domain.Event{
		mk("08:30:00"), // valid prefix
		mk("08:30"),    // exactly five chars
		mk("8:30"),     // too short, no padding
		mk("ab:cd:ef"), // garbage
		mk(""),         // missing
		mk("23:5x:00"), // prefix fails the pattern
	}

	got := PlayedTimeHistogram(events)
	require.Len(t, got, 1)
	assert.Equal(t, KeyCount{Key: "08:30", Count: 2}, got[0])
}

func TestWeekdayHourMatrixShape(t *testing.T) {
	// empty input still yields the full 7x24 zero grid
	m := WeekdayHourMatrix(nil)
	assert.Equal(t, domain.WeekdayNames(), m.Weekdays)
	cells := 0
	for _, row := range m.Counts {
		for _, c := range row {
			cells++
			assert.Zero(t, c)
		}
	}
	assert.Equal(t, 168, cells)
}

func TestWeekdayHourMatrixCounts(t *testing.T) {
	// 2024-01-05 is a Friday, 2024-01-06 a Saturday
	events := []domain.Event{
		ev("A", "", "t", date(2024, 1, 5), 8),
		ev("A", "", "t", date(2024, 1, 5), 8),
		ev("A", "", "t", date(2024, 1, 6), 23),
		{Title: "no timestamp", Hour: -1},
	}
	m := WeekdayHourMatrix(events)
	assert.Equal(t, 2, m.Counts[4][8])  // Friday row
	assert.Equal(t, 1, m.Counts[5][23]) // Saturday row
	assert.Equal(t, 0, m.Counts[0][8])
}

func TestTopTitlesForMonth(t *testing.T) {
	events := []domain.Event{
		ev("A", "", "jan-song", date(2024, 1, 5), 8),
		ev("A", "", "jun-song", date(2024, 6, 5), 8),
	}

	got, err := TopTitlesForMonth(events, 1, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "jan-song", got[0].Key)

	for _, bad := range []int{0, 13, -1} {
		_, err := TopTitlesForMonth(events, bad, 10)
		assert.ErrorIs(t, err, ErrInvalidMonth)
	}
}

func TestTopArtistsForSeason(t *testing.T) {
	events := []domain.Event{
		ev("A", "winter-artist", "t", date(2024, 1, 5), 8),
		ev("A", "summer-artist", "t", date(2024, 7, 5), 8),
	}

	got, err := TopArtistsForSeason(events, domain.SeasonWinter, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "winter-artist", got[0].Key)

	_, err = TopArtistsForSeason(events, "Monsoon", 10)
	assert.ErrorIs(t, err, ErrInvalidSeason)
}

func TestTopTitlesByWeekType(t *testing.T) {
	events := []domain.Event{
		ev("A", "", "weekday-song", date(2024, 1, 5), 8), // Friday
		ev("A", "", "weekend-song", date(2024, 1, 6), 8), // Saturday
		ev("A", "", "weekend-song", date(2024, 1, 7), 8), // Sunday
	}

	got := TopTitlesByWeekType(events, 5)
	require.Len(t, got, 2)
	assert.Equal(t, domain.WeekTypeWeekday, got[0].WeekType)
	assert.Equal(t, domain.WeekTypeWeekend, got[1].WeekType)
	require.Len(t, got[1].Titles, 1)
	assert.Equal(t, KeyCount{Key: "weekend-song", Count: 2}, got[1].Titles[0])
}

func TestTopOfYearAndYears(t *testing.T) {
	events := []domain.Event{
		ev("A", "old", "old-song", date(2023, 5, 1), 8),
		ev("A", "new", "new-song", date(2024, 5, 1), 8),
		ev("A", "new", "new-song", date(2024, 6, 1), 8),
	}

	assert.Equal(t, []int{2024, 2023}, Years(events))

	top := TopOfYear(events, 2024, 20)
	assert.Equal(t, 2024, top.Year)
	require.Len(t, top.Artists, 1)
	assert.Equal(t, KeyCount{Key: "new", Count: 2}, top.Artists[0])
	require.Len(t, top.Titles, 1)
	assert.Equal(t, KeyCount{Key: "new-song", Count: 2}, top.Titles[0])

	empty := TopOfYear(events, 1999, 20)
	assert.Empty(t, empty.Artists)
	assert.Empty(t, empty.Titles)
}

func TestRankedRepeatedCallsAgree(t *testing.T) {
	events := sampleEvents()
	first := Ranked(events, ByStation)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Ranked(events, ByStation))
	}
}

func TestSortByKeyDoesNotMutateInput(t *testing.T) {
	in := []KeyCount{{Key: "b", Count: 1}, {Key: "a", Count: 2}}
	got := SortByKey(in)
	assert.Equal(t, "a", got[0].Key)
	assert.Equal(t, "b", in[0].Key, "input order untouched")
}

func TestSeasonDerivationMatchesMonth(t *testing.T) {
	// derived season always agrees with the month it came from
	for m := time.January; m <= time.December; m++ {
		e := ev("A", "", "t", date(2024, m, 15), 12)
		assert.Equal(t, domain.SeasonOf(m), e.Season)
	}
}
