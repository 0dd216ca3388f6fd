package crawler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTitleYear(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   string
		wantOK bool
	}{
		{"trailing text", "Inception (2010) - Full Transcript", "Inception (2010)", true},
		{"no space before year", "Heat(1995)", "Heat (1995)", true},
		{"first year wins", "Alien (1979) vs Aliens (1986)", "Alien (1979)", true},
		{"year inside title", "Blade Runner 2049 (2017) - full transcript", "Blade Runner 2049 (2017)", true},
		{"leading whitespace", "   Up (2009)", "Up (2009)", true},
		{"non ascii", "Amélie (2001) - Transcript", "Amélie (2001)", true},
		{"no year", "Home Page", "", false},
		{"short year", "Movie (99)", "", false},
		{"year without parens", "Movie 2010", "", false},
		{"year only", "(2010)", "", false},
		{"empty", "", "", false},
		{"full width digits", "Movie (２０１０)", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractTitleYear(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitTitleYear(t *testing.T) {
	title, year, ok := SplitTitleYear("The Matrix (1999) - Full Transcript")
	assert.True(t, ok)
	assert.Equal(t, "The Matrix", title)
	assert.Equal(t, 1999, year)

	_, _, ok = SplitTitleYear("About us")
	assert.False(t, ok)
}
