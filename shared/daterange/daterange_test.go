package daterange_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"seaview/shared/daterange"
)

func date(value string) time.Time {
	t, err := time.Parse(daterange.DateLayout, value)
	if err != nil {
		panic(err)
	}

	return t
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		wantErr bool
	}{
		{name: "valid range", start: "2026-03-10", end: "2026-03-14", wantErr: false},
		{name: "single night", start: "2026-03-10", end: "2026-03-11", wantErr: false},
		{name: "equal dates rejected", start: "2026-03-10", end: "2026-03-10", wantErr: true},
		{name: "inverted rejected", start: "2026-03-14", end: "2026-03-10", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := daterange.New(date(tt.start), date(tt.end))

			if tt.wantErr {
				assert.ErrorIs(t, err, daterange.ErrStartNotBeforeEnd)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewNormalizesTimeOfDay(t *testing.T) {
	start := time.Date(2026, 3, 10, 15, 4, 5, 0, time.UTC)
	end := time.Date(2026, 3, 12, 9, 30, 0, 0, time.UTC)

	r, err := daterange.New(start, end)

	assert.NoError(t, err)
	assert.Equal(t, date("2026-03-10"), r.Start)
	assert.Equal(t, date("2026-03-12"), r.End)
}

func TestOverlaps(t *testing.T) {
	booked, err := daterange.Parse("2026-04-01", "2026-04-05")
	assert.NoError(t, err)

	tests := []struct {
		name  string
		start string
		end   string
		want  bool
	}{
		{name: "overlapping tail", start: "2026-04-04", end: "2026-04-08", want: true},
		{name: "overlapping head", start: "2026-03-28", end: "2026-04-02", want: true},
		{name: "fully contained", start: "2026-04-02", end: "2026-04-03", want: true},
		{name: "fully covering", start: "2026-03-28", end: "2026-04-10", want: true},
		{name: "checkout-day turnover allowed", start: "2026-04-05", end: "2026-04-08", want: false},
		{name: "checkin-day turnover allowed", start: "2026-03-28", end: "2026-04-01", want: false},
		{name: "disjoint after", start: "2026-04-10", end: "2026-04-12", want: false},
		{name: "disjoint before", start: "2026-03-20", end: "2026-03-25", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other, err := daterange.Parse(tt.start, tt.end)
			assert.NoError(t, err)

			assert.Equal(t, tt.want, booked.Overlaps(other))
			assert.Equal(t, tt.want, other.Overlaps(booked))
		})
	}
}

func TestFromInclusive(t *testing.T) {
	t.Run("extends end by one day", func(t *testing.T) {
		r, err := daterange.FromInclusive(date("2026-05-01"), date("2026-05-03"))

		assert.NoError(t, err)
		assert.Equal(t, date("2026-05-04"), r.End)
		assert.Equal(t, 3, r.Nights())
	})

	t.Run("single day block spans one night", func(t *testing.T) {
		r, err := daterange.FromInclusive(date("2026-05-01"), date("2026-05-01"))

		assert.NoError(t, err)
		assert.Equal(t, 1, r.Nights())
		assert.True(t, r.Contains(date("2026-05-01")))
		assert.False(t, r.Contains(date("2026-05-02")))
	})

	t.Run("inverted rejected", func(t *testing.T) {
		_, err := daterange.FromInclusive(date("2026-05-03"), date("2026-05-01"))

		assert.ErrorIs(t, err, daterange.ErrStartNotBeforeEnd)
	})
}

func TestParseDate(t *testing.T) {
	_, err := daterange.ParseDate("not-a-date")
	assert.ErrorIs(t, err, daterange.ErrInvalidDate)

	parsed, err := daterange.ParseDate("2026-06-15")
	assert.NoError(t, err)
	assert.Equal(t, date("2026-06-15"), parsed)
}

func TestNightsAndContains(t *testing.T) {
	r, err := daterange.Parse("2026-07-01", "2026-07-05")
	assert.NoError(t, err)

	assert.Equal(t, 4, r.Nights())
	assert.True(t, r.Contains(date("2026-07-01")))
	assert.True(t, r.Contains(date("2026-07-04")))
	assert.False(t, r.Contains(date("2026-07-05")))
	assert.Equal(t, date("2026-07-04"), r.EndInclusive())
}
