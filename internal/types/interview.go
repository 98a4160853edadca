package types

// QuestionAnswer is one scraped interview question with its answer
type QuestionAnswer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// InterviewQuestions is the question bank for a role
type InterviewQuestions struct {
	Role      string           `json:"role"`
	SourceURL string           `json:"source_url"`
	Questions []QuestionAnswer `json:"questions"`
}
