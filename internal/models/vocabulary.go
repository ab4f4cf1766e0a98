package models

import (
	"strings"
	"time"
)

type Language struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	WordCount int       `json:"word_count"`
	CreatedAt time.Time `json:"created_at"`
}

// PartOfSpeech classifies a word entry.
type PartOfSpeech string

const (
	PartNoun   PartOfSpeech = "noun"
	PartVerb   PartOfSpeech = "verb"
	PartAdj    PartOfSpeech = "adj"
	PartAdv    PartOfSpeech = "adv"
	PartPhrase PartOfSpeech = "phrase"
	PartOther  PartOfSpeech = "other"
)

// PartsOfSpeech lists the accepted values in display order.
var PartsOfSpeech = []PartOfSpeech{PartNoun, PartVerb, PartAdj, PartAdv, PartPhrase, PartOther}

func (p PartOfSpeech) Valid() bool {
	for _, v := range PartsOfSpeech {
		if p == v {
			return true
		}
	}
	return false
}

func (p PartOfSpeech) Label() string {
	switch p {
	case PartNoun:
		return "Noun"
	case PartVerb:
		return "Verb"
	case PartAdj:
		return "Adjective"
	case PartAdv:
		return "Adverb"
	case PartPhrase:
		return "Phrase"
	default:
		return "Other"
	}
}

// ParsePartOfSpeech maps free text onto a PartOfSpeech, falling back to "other".
func ParsePartOfSpeech(s string) PartOfSpeech {
	p := PartOfSpeech(strings.ToLower(strings.TrimSpace(s)))
	if p.Valid() {
		return p
	}
	return PartOther
}

type Word struct {
	ID           int64        `json:"id"`
	LanguageID   int64        `json:"language_id"`
	LanguageName string       `json:"language_name,omitempty"`
	Term         string       `json:"term"`
	Translation  string       `json:"translation"`
	PartOfSpeech PartOfSpeech `json:"part_of_speech"`
	Example      string       `json:"example,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}

type WordFilter struct {
	LanguageID int64
	Query      string
	Limit      int
	Offset     int
}

type Lesson struct {
	ID           int64     `json:"id"`
	LanguageID   int64     `json:"language_id"`
	LanguageName string    `json:"language_name,omitempty"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	WordCount    int       `json:"word_count"`
	CreatedAt    time.Time `json:"created_at"`
}

type LessonWithWords struct {
	Lesson
	Words []Word `json:"words"`
}

type DashboardCounts struct {
	Languages int `json:"languages"`
	Words     int `json:"words"`
	Lessons   int `json:"lessons"`
}

// Dashboard is what the home page shows.
type Dashboard struct {
	Counts DashboardCounts   `json:"counts"`
	Recent []PracticeSession `json:"recent"`
}
