// Package practice builds quiz questions from a word pool and grades answers.
package practice

import (
	"strings"

	"github.com/VA-creat/eassylang/internal/models"
)

// MaxDistractors is the number of wrong options offered in a multiple-choice question.
const MaxDistractors = 3

// PickWords returns the pool in random order when n covers it, otherwise a random
// sample of n distinct words. The caller's slice is not modified.
func PickWords(src Source, pool []models.Word, n int) []models.Word {
	if n <= 0 || len(pool) == 0 {
		return []models.Word{}
	}

	picked := make([]models.Word, len(pool))
	copy(picked, pool)

	if n >= len(picked) {
		src.Shuffle(len(picked), func(i, j int) { picked[i], picked[j] = picked[j], picked[i] })
		return picked
	}

	// Partial Fisher-Yates: the first n slots end up as a uniform sample.
	for i := 0; i < n; i++ {
		j := i + src.Intn(len(picked)-i)
		picked[i], picked[j] = picked[j], picked[i]
	}
	return picked[:n]
}

// KindFor returns the question kind for the zero-based position i.
func KindFor(i int, multipleChoice bool) models.QuestionKind {
	switch {
	case multipleChoice && i%3 == 2:
		return models.KindMultipleChoice
	case i%2 == 0:
		return models.KindTermToTranslation
	default:
		return models.KindTranslationToTerm
	}
}

// AssignKinds returns the kinds for n consecutive positions.
func AssignKinds(n int, multipleChoice bool) []models.QuestionKind {
	kinds := make([]models.QuestionKind, 0, n)
	for i := 0; i < n; i++ {
		kinds = append(kinds, KindFor(i, multipleChoice))
	}
	return kinds
}

// Distractors collects up to MaxDistractors wrong translations for word from pool.
// Candidates skip the word itself, empty translations, and any translation that
// normalizes to the correct answer; equal candidates are only offered once.
func Distractors(src Source, word models.Word, pool []models.Word) []string {
	correct := Normalize(word.Translation)
	seen := map[string]bool{correct: true}

	var candidates []string
	for _, w := range pool {
		if w.ID == word.ID || w.Translation == "" {
			continue
		}
		key := Normalize(w.Translation)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		candidates = append(candidates, w.Translation)
	}

	if len(candidates) <= MaxDistractors {
		return candidates
	}
	for i := 0; i < MaxDistractors; i++ {
		j := i + src.Intn(len(candidates)-i)
		candidates[i], candidates[j] = candidates[j], candidates[i]
	}
	return candidates[:MaxDistractors]
}

// Options returns the shuffled multiple-choice options for word: its distractors
// plus the correct translation, which appears exactly once.
func Options(src Source, word models.Word, pool []models.Word) []string {
	options := append(Distractors(src, word, pool), word.Translation)
	src.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })
	return options
}

// BuildQuestions turns the chosen words into ordered questions. Multiple-choice
// options are drawn from pool.
func BuildQuestions(src Source, chosen, pool []models.Word, multipleChoice bool) []models.PracticeQuestion {
	questions := make([]models.PracticeQuestion, 0, len(chosen))
	for i, w := range chosen {
		q := models.PracticeQuestion{
			Position: i,
			Word:     w,
			Kind:     KindFor(i, multipleChoice),
		}
		if q.Kind == models.KindMultipleChoice {
			q.Options = Options(src, w, pool)
		}
		questions = append(questions, q)
	}
	return questions
}

// Normalize trims surrounding whitespace and lowercases s.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Grade reports whether submitted matches expected after normalization.
func Grade(submitted, expected string) bool {
	return Normalize(submitted) == Normalize(expected)
}

// ExpectedAnswer is the value a question is graded against: the term for
// translation-to-term questions, the translation otherwise.
func ExpectedAnswer(kind models.QuestionKind, word models.Word) string {
	if kind == models.KindTranslationToTerm {
		return word.Term
	}
	return word.Translation
}

// GradeQuestion grades submitted against q's expected answer.
func GradeQuestion(q models.PracticeQuestion, submitted string) bool {
	return Grade(submitted, ExpectedAnswer(q.Kind, q.Word))
}

// Percent is the floored share of correct answers; a zero total counts as one.
func Percent(correct, total int) int {
	if total <= 0 {
		total = 1
	}
	return correct * 100 / total
}

// Mood is the encouragement shown next to a score.
func Mood(percent int) string {
	switch {
	case percent >= 100:
		return "Perfect! Time to raise the level."
	case percent >= 80:
		return "Great result! A little more and it will be 100%."
	case percent >= 50:
		return "Not bad! A couple of repetitions and it will get better."
	default:
		return "Try short lessons and repetition."
	}
}
