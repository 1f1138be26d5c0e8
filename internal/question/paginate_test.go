package question

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginateBounds(t *testing.T) {
	for _, n := range []int{0, 1, 9, 10, 11, 15, 20, 35} {
		all := rangeQuestions(n)
		for page := 1; page <= 5; page++ {
			got := Paginate(all, page)
			want := min(PageSize, max(0, n-(page-1)*PageSize))
			assert.Len(t, got, want, "n=%d page=%d", n, page)
			for i := 1; i < len(got); i++ {
				assert.Less(t, got[i-1].ID, got[i].ID)
			}
		}
	}
}

func TestPaginateSecondPage(t *testing.T) {
	got := Paginate(rangeQuestions(15), 2)
	assert.Len(t, got, 5)
	assert.Equal(t, 11, got[0].ID)
	assert.Equal(t, 15, got[4].ID)
}

func TestPaginateBeyondRangeIsEmpty(t *testing.T) {
	got := Paginate(rangeQuestions(3), 1000)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestPaginateHugePageIsEmpty(t *testing.T) {
	for _, page := range []int{math.MaxInt, math.MaxInt / PageSize, math.MaxInt/PageSize + 2} {
		got := Paginate(rangeQuestions(25), page)
		assert.NotNil(t, got)
		assert.Empty(t, got, "page=%d", page)
	}
	assert.Equal(t, math.MaxInt, ParsePage("9223372036854775807"))
}

func TestPaginateDoesNotAliasInput(t *testing.T) {
	all := rangeQuestions(3)
	got := Paginate(all, 1)
	got[0].Question = "changed"
	assert.Equal(t, "q1", all[0].Question)
}

func TestParsePage(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"", 1},
		{"1", 1},
		{"2", 2},
		{" 3 ", 3},
		{"abc", 1},
		{"0", 1},
		{"-4", 1},
		{"1.5", 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParsePage(tt.raw), "raw=%q", tt.raw)
	}

	all := rangeQuestions(25)
	assert.Equal(t, Paginate(all, 1), Paginate(all, ParsePage("")))
}
