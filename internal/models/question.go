package models

// Question is one entry of the static bank. The bank is compiled in and
// loaded once at startup; nothing mutates it afterwards.
type Question struct {
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
}

// QuestionDTO is the quiz-taker view of a question. The correct index is
// only present for admin consumers.
type QuestionDTO struct {
	Index         int      `json:"index"`
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer *int     `json:"correct_answer,omitempty"`
}

func (q Question) ToDTO(index int, includeAnswer bool) QuestionDTO {
	dto := QuestionDTO{
		Index:   index,
		Text:    q.Text,
		Options: q.Options,
	}
	if includeAnswer {
		answer := q.CorrectAnswer
		dto.CorrectAnswer = &answer
	}
	return dto
}
