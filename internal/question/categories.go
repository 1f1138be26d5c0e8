package question

// FormatCategories projects categories into an id -> type lookup.
func FormatCategories(categories []Category) map[int]string {
	out := make(map[int]string, len(categories))
	for _, c := range categories {
		out[c.ID] = c.Type
	}
	return out
}
