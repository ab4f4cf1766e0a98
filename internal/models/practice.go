package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// QuestionKind is how a practice question is asked.
type QuestionKind string

const (
	KindTermToTranslation QuestionKind = "term_to_translation"
	KindTranslationToTerm QuestionKind = "translation_to_term"
	KindMultipleChoice    QuestionKind = "multiple_choice"
)

func (k QuestionKind) Label() string {
	switch k {
	case KindTermToTranslation:
		return "Term → Translation"
	case KindTranslationToTerm:
		return "Translation → Term"
	case KindMultipleChoice:
		return "Multiple Choice"
	default:
		return string(k)
	}
}

type PracticeSession struct {
	ID            string     `json:"id"`
	LanguageID    int64      `json:"language_id"`
	LanguageName  string     `json:"language_name,omitempty"`
	LessonID      *int64     `json:"lesson_id,omitempty"`
	LessonTitle   string     `json:"lesson_title,omitempty"`
	QuestionCount int        `json:"question_count"`
	CorrectCount  int        `json:"correct_count"`
	Cursor        int        `json:"cursor"`
	CreatedAt     time.Time  `json:"created_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

// Complete reports whether every question has been answered.
func (s PracticeSession) Complete() bool {
	return s.Cursor >= s.QuestionCount
}

type PracticeQuestion struct {
	ID         int64        `json:"id"`
	SessionID  string       `json:"session_id"`
	Position   int          `json:"position"`
	Word       Word         `json:"word"`
	Kind       QuestionKind `json:"kind"`
	Options    []string     `json:"options,omitempty"`
	UserAnswer string       `json:"user_answer"`
	IsCorrect  bool         `json:"is_correct"`
	AnsweredAt *time.Time   `json:"answered_at,omitempty"`
}

// Prompt is the text shown to the learner.
func (q PracticeQuestion) Prompt() string {
	if q.Kind == KindTranslationToTerm {
		return q.Word.Translation
	}
	return q.Word.Term
}

// Answered reports whether the learner already submitted an answer.
func (q PracticeQuestion) Answered() bool {
	return q.UserAnswer != ""
}

// PracticeState is a session together with the question to answer next.
type PracticeState struct {
	Session     PracticeSession   `json:"session"`
	Question    *PracticeQuestion `json:"question,omitempty"`
	Answered    int               `json:"answered"`
	Total       int               `json:"total"`
	ProgressPct int               `json:"progress_pct"`
	Complete    bool              `json:"complete"`
}

// CurrentIndex is the 1-based number of the question being asked.
func (s PracticeState) CurrentIndex() int {
	return s.Answered + 1
}

type PracticeResult struct {
	Session   PracticeSession    `json:"session"`
	Percent   int                `json:"percent"`
	Mood      string             `json:"mood"`
	Questions []PracticeQuestion `json:"questions"`
	Missed    []PracticeQuestion `json:"missed"`
}

// EncodeOptions stores options as a JSON array so any text survives the round trip.
func EncodeOptions(options []string) (string, error) {
	if options == nil {
		options = []string{}
	}
	b, err := json.Marshal(options)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeOptions reverses EncodeOptions; an empty array yields nil.
func DecodeOptions(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}
	var options []string
	if err := json.Unmarshal([]byte(s), &options); err != nil {
		return nil, fmt.Errorf("decode options: %w", err)
	}
	if len(options) == 0 {
		return nil, nil
	}
	return options, nil
}

// AnswerOutcome is the grading of one submitted answer plus the state that follows it.
type AnswerOutcome struct {
	Correct  bool          `json:"correct"`
	Expected string        `json:"expected"`
	State    PracticeState `json:"state"`
}
