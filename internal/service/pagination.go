package service

// QuestionsPerPage is the fixed size of a listing page.
const QuestionsPerPage = 10

// Paginate returns the 1-based page of items, or an empty slice when the
// page lies outside the available range.
func Paginate[T any](page int, items []T) []T {
	if page < 1 {
		return []T{}
	}
	start := (page - 1) * QuestionsPerPage
	if start >= len(items) {
		return []T{}
	}
	end := min(start+QuestionsPerPage, len(items))
	return items[start:end]
}
