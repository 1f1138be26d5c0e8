package question

import "strings"

// Search keeps the questions whose text contains term, ignoring case.
// A blank term matches every question, mirroring ILIKE '%%'.
func Search(all []Question, term string) []Question {
	if strings.TrimSpace(term) == "" {
		out := make([]Question, len(all))
		copy(out, all)
		return out
	}

	needle := strings.ToLower(term)
	out := make([]Question, 0)
	for _, q := range all {
		if strings.Contains(strings.ToLower(q.Question), needle) {
			out = append(out, q)
		}
	}
	return out
}
