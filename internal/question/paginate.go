package question

import (
	"strconv"
	"strings"
)

// Paginate returns the 1-indexed page of an id-ordered slice. Pages past the
// end yield an empty slice; callers decide whether that means "not found".
func Paginate(ordered []Question, page int) []Question {
	if page < 1 {
		page = 1
	}
	pages := (len(ordered) + PageSize - 1) / PageSize
	if page > pages {
		return []Question{}
	}
	start := (page - 1) * PageSize
	end := min(start+PageSize, len(ordered))

	out := make([]Question, end-start)
	copy(out, ordered[start:end])
	return out
}

// ParsePage reads a page query value, falling back to 1 when it is absent,
// malformed or below 1.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
