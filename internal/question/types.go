package question

// PageSize is the number of questions served per page.
const PageSize = 10

// AnyCategory is the quiz category id meaning "no category restriction".
const AnyCategory = 0

// Question is a single trivia record as stored and served.
type Question struct {
	ID         int    `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int    `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// Category is a read-only question grouping.
type Category struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
}

// QuizCategory selects the category a quiz draws from; ID 0 means any.
type QuizCategory struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
}

// QuizRequest asks for the next quiz question.
type QuizRequest struct {
	PreviousQuestions []int         `json:"previous_questions"`
	QuizCategory      *QuizCategory `json:"quiz_category" validate:"required"`
}

// CreateQuestionInput carries a new question. Pointer fields distinguish
// "absent" from zero values; every field must be present.
type CreateQuestionInput struct {
	Question   *string `json:"question" validate:"required"`
	Answer     *string `json:"answer" validate:"required"`
	Category   *int    `json:"category" validate:"required"`
	Difficulty *int    `json:"difficulty" validate:"required"`
}

// CategoryList is the result of listing categories.
type CategoryList struct {
	Categories map[int]string
	Total      int
}

// QuestionPage is one page of questions plus listing metadata.
type QuestionPage struct {
	Questions       []Question
	Total           int
	CurrentCategory *int
	Categories      map[int]string
}

// CreateResult reports a created question together with the refreshed listing.
type CreateResult struct {
	ID        int
	Questions []Question
	Total     int
}
