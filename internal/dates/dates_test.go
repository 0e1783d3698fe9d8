package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		month  string
		day    string
		want   time.Time
		wantOK bool
	}{
		{name: "Abbreviation", month: "Feb", day: "15", want: Date(2024, time.February, 15), wantOK: true},
		{name: "FullMonthUpper", month: "MARCH", day: "3", want: Date(2024, time.March, 3), wantOK: true},
		{name: "TrailingPunctuation", month: "jan", day: "9,", want: Date(2024, time.January, 9), wantOK: true},
		{name: "OrdinalSuffix", month: "Apr", day: "21st", want: Date(2024, time.April, 21), wantOK: true},
		{name: "SingleDigitOrdinal", month: "Apr", day: "2nd", want: Date(2024, time.April, 2), wantOK: true},
		{name: "OverflowKeepsFirstDigit", month: "Feb", day: "31", want: Date(2024, time.February, 3), wantOK: true},
		{name: "LeapDay", month: "Feb", day: "29", want: Date(2024, time.February, 29), wantOK: true},
		{name: "UnknownMonth", month: "Foo", day: "3"},
		{name: "ShortMonth", month: "Ja", day: "3"},
		{name: "NoDigits", month: "Jan", day: "TBD"},
		{name: "ZeroDay", month: "Jan", day: "0"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Normalize(2024, tc.month, tc.day)
			assert.Equal(t, tc.wantOK, ok)
			if tc.wantOK {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestNormalizeUsesGivenYear(t *testing.T) {
	got, ok := Normalize(2023, "Feb", "29")
	assert.True(t, ok)
	assert.Equal(t, Date(2023, time.February, 2), got)
}

func TestNormalizePartial(t *testing.T) {
	tests := []struct {
		code   string
		want   time.Time
		wantOK bool
	}{
		{code: "1/9", want: Date(2024, time.January, 9), wantOK: true},
		{code: "01/09", want: Date(2024, time.January, 9), wantOK: true},
		{code: "2/16,", want: Date(2024, time.February, 16), wantOK: true},
		{code: " 12/1) ", want: Date(2024, time.December, 1), wantOK: true},
		{code: "13/1"},
		{code: "2/30"},
		{code: "2-16"},
		{code: ""},
	}

	for _, tc := range tests {
		t.Run(tc.code, func(t *testing.T) {
			got, ok := NormalizePartial(2024, tc.code)
			assert.Equal(t, tc.wantOK, ok)
			if tc.wantOK {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestSortValue(t *testing.T) {
	assert.Equal(t, 0, SortValue(time.Time{}))

	jan31 := SortValue(Date(2024, time.January, 31))
	feb1 := SortValue(Date(2024, time.February, 1))
	nextYear := SortValue(Date(2025, time.January, 1))
	assert.Positive(t, jan31)
	assert.Less(t, jan31, feb1)
	assert.Less(t, feb1, nextYear)
}

func TestDateOf(t *testing.T) {
	la, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		t.Skip("tzdata not available")
	}
	instant := time.Date(2024, time.January, 24, 3, 0, 0, 0, time.UTC)

	assert.Equal(t, Date(2024, time.January, 23), DateOf(instant, la))
	assert.Equal(t, Date(2024, time.January, 24), DateOf(instant, nil))
}
