// Package knowledge holds the question and answer collections the agent
// learns from.
package knowledge

// Question is a sentence the agent has seen as input. AskedCount starts at 1
// and grows each time the same question is recognized again.
type Question struct {
	ID         int    `yaml:"id" json:"id"`
	Text       string `yaml:"text" json:"text"`
	AskedCount int    `yaml:"asked_count" json:"asked_count"`
}

// Answer is a reply the user gave to a question the agent asked.
// QuestionID is not checked against the question collection.
type Answer struct {
	ID         int    `yaml:"id" json:"id"`
	QuestionID int    `yaml:"question_id" json:"question_id"`
	Text       string `yaml:"text" json:"text"`
}

var (
	NoQuestion = Question{ID: -1}
	NoAnswer   = Answer{ID: -1, QuestionID: -1}
)

func (q Question) Found() bool { return q.ID >= 0 }

func (a Answer) Found() bool { return a.ID >= 0 }

// Base owns both collections. They are append-only and ids equal the
// position at insertion time.
type Base struct {
	Questions []Question
	Answers   []Answer
}

func New() *Base {
	return &Base{
		Questions: []Question{},
		Answers:   []Answer{},
	}
}

func (b *Base) AddQuestion(text string) Question {
	q := Question{ID: len(b.Questions), Text: text, AskedCount: 1}
	b.Questions = append(b.Questions, q)
	return q
}

func (b *Base) AddAnswer(questionID int, text string) Answer {
	a := Answer{ID: len(b.Answers), QuestionID: questionID, Text: text}
	b.Answers = append(b.Answers, a)
	return a
}

// IncrementAsked bumps the asked counter of the first question with id and
// returns the updated question.
func (b *Base) IncrementAsked(id int) (Question, bool) {
	for i := range b.Questions {
		if b.Questions[i].ID == id {
			b.Questions[i].AskedCount++
			return b.Questions[i], true
		}
	}
	return NoQuestion, false
}

func (b *Base) AnswersFor(questionID int) []Answer {
	var out []Answer
	for _, a := range b.Answers {
		if a.QuestionID == questionID {
			out = append(out, a)
		}
	}
	return out
}

func (b *Base) CountAnswers(questionID int) int {
	n := 0
	for _, a := range b.Answers {
		if a.QuestionID == questionID {
			n++
		}
	}
	return n
}
