package models

// Deck is a named grouping that problems belong to, exactly one per problem.
type Deck struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Tag is a free-form label, many-to-many with problems.
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Problem is a single practice item. Content holds the JSON-encoded
// question/answer pair and is unique across all problems. Topic,
// ReviewCount, LastReviewDate, Feedback and Src are reserved for the
// spaced-repetition feature; nothing writes them yet.
type Problem struct {
	ID             int64   `json:"id"`
	Topic          *string `json:"topic"`
	ReviewCount    *int    `json:"review_count"`
	LastReviewDate *string `json:"last_review_date"`
	Feedback       *int    `json:"feedback"`
	Src            *string `json:"src"`
	DeckID         int64   `json:"deck_id"`
	Content        string  `json:"content"`
	CreationDate   string  `json:"creation_date"`
}

// ProblemContent is the structured form of a problem's content blob.
type ProblemContent struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
