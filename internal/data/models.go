package data

// Question is a single trivia question.
type Question struct {
	ID         int64  `db:"id" json:"id"`
	Question   string `db:"question" json:"question"`
	Answer     string `db:"answer" json:"answer"`
	Category   int64  `db:"category" json:"category"`
	Difficulty int    `db:"difficulty" json:"difficulty"`
}

// Category groups questions under a label such as "Science".
type Category struct {
	ID   int64  `db:"id" json:"id"`
	Type string `db:"type" json:"type"`
}
