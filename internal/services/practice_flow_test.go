package services_test

import (
	"context"
	"testing"

	"github.com/VA-creat/eassylang/internal/errors"
	"github.com/VA-creat/eassylang/internal/practice"
	"github.com/VA-creat/eassylang/internal/repository/sqlite"
	"github.com/VA-creat/eassylang/internal/services"
	"github.com/VA-creat/eassylang/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPracticeFlow(t *testing.T) (services.PracticeService, *testutil.Fixture) {
	fx := testutil.NewFixture(t)
	svc := services.NewPracticeService(
		sqlite.NewSessionRepository(fx.DB),
		sqlite.NewWordRepository(fx.DB),
		sqlite.NewLessonRepository(fx.DB),
		sqlite.NewLanguageRepository(fx.DB),
		practice.NewSource(42),
		services.PracticeSettings{DefaultQuestions: 10, MaxQuestions: 50},
	)
	return svc, fx
}

func TestPracticeFlow_NoWordsCreatesNoSession(t *testing.T) {
	svc, fx := newPracticeFlow(t)
	empty := testutil.SeedLanguage(t, fx.DB, "Klingon", "tlh")

	session, err := svc.Start(context.Background(), services.StartPracticeRequest{LanguageID: empty, QuestionCount: 5})

	assert.Nil(t, session)
	assert.True(t, errors.IsCode(err, errors.ErrCodeNoWords))

	var n int
	require.NoError(t, fx.DB.QueryRow(`SELECT COUNT(*) FROM practice_sessions`).Scan(&n))
	assert.Zero(t, n)
}

func TestPracticeFlow_AnsweringEverythingCompletesSession(t *testing.T) {
	svc, fx := newPracticeFlow(t)
	ctx := context.Background()
	lang := testutil.SeedLanguage(t, fx.DB, "Spanish", "es")
	for term, translation := range map[string]string{
		"gato": "cat", "perro": "dog", "casa": "house", "agua": "water", "sol": "sun",
	} {
		testutil.SeedWord(t, fx.DB, lang, term, translation)
	}

	session, err := svc.Start(ctx, services.StartPracticeRequest{LanguageID: lang, QuestionCount: 5, MultipleChoice: true})
	require.NoError(t, err)
	require.Equal(t, 5, session.QuestionCount)

	wantCorrect := 0
	for i := 0; i < session.QuestionCount; i++ {
		state, err := svc.Current(ctx, session.ID)
		require.NoError(t, err)
		require.False(t, state.Complete)
		require.Equal(t, i, state.Question.Position)

		// Answer even positions correctly, odd ones wrongly.
		answer := "definitely wrong"
		if i%2 == 0 {
			answer = "  " + practice.ExpectedAnswer(state.Question.Kind, state.Question.Word) + " "
			wantCorrect++
		}
		outcome, err := svc.Answer(ctx, session.ID, answer)
		require.NoError(t, err)
		assert.Equal(t, i%2 == 0, outcome.Correct)
	}

	state, err := svc.Current(ctx, session.ID)
	require.NoError(t, err)
	assert.True(t, state.Complete)
	assert.Equal(t, wantCorrect, state.Session.CorrectCount)
	assert.NotNil(t, state.Session.CompletedAt)

	_, err = svc.Answer(ctx, session.ID, "one more")
	assert.True(t, errors.IsCode(err, errors.ErrCodeConflict))

	result, err := svc.Result(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, wantCorrect*100/5, result.Percent)
	assert.Len(t, result.Missed, 5-wantCorrect)
	for _, q := range result.Questions {
		assert.NotEmpty(t, q.UserAnswer)
		if q.Kind == "multiple_choice" {
			assert.Contains(t, q.Options, q.Word.Translation)
		}
	}
}

func TestPracticeFlow_OptionsSurviveSeparatorLikeText(t *testing.T) {
	svc, fx := newPracticeFlow(t)
	ctx := context.Background()
	lang := testutil.SeedLanguage(t, fx.DB, "English", "en")
	testutil.SeedWord(t, fx.DB, lang, "o", "or||either")
	testutil.SeedWord(t, fx.DB, lang, "perro", "dog")
	testutil.SeedWord(t, fx.DB, lang, "casa", "house")
	testutil.SeedWord(t, fx.DB, lang, "sol", "sun")

	session, err := svc.Start(ctx, services.StartPracticeRequest{LanguageID: lang, QuestionCount: 4, MultipleChoice: true})
	require.NoError(t, err)

	for i := 0; i < session.QuestionCount; i++ {
		state, err := svc.Current(ctx, session.ID)
		require.NoError(t, err)
		q := state.Question
		if q.Kind == "multiple_choice" {
			assert.LessOrEqual(t, len(q.Options), 4)
			assert.Contains(t, q.Options, q.Word.Translation)
			assert.Contains(t, q.Options, "or||either")
		}
		_, err = svc.Answer(ctx, session.ID, practice.ExpectedAnswer(q.Kind, q.Word))
		require.NoError(t, err)
	}

	result, err := svc.Result(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, result.Percent)
}

func TestPracticeFlow_DeletingAWordMidSession(t *testing.T) {
	svc, fx := newPracticeFlow(t)
	ctx := context.Background()
	lang := testutil.SeedLanguage(t, fx.DB, "Spanish", "es")
	testutil.SeedWord(t, fx.DB, lang, "gato", "cat")
	testutil.SeedWord(t, fx.DB, lang, "perro", "dog")
	testutil.SeedWord(t, fx.DB, lang, "casa", "house")
	words := sqlite.NewWordRepository(fx.DB)

	session, err := svc.Start(ctx, services.StartPracticeRequest{LanguageID: lang, QuestionCount: 3})
	require.NoError(t, err)

	state, err := svc.Current(ctx, session.ID)
	require.NoError(t, err)
	deleted := state.Question.Word
	require.NoError(t, words.Delete(ctx, deleted.ID))

	state, err = svc.Current(ctx, session.ID)
	require.NoError(t, err)
	require.NotNil(t, state.Question)
	assert.Equal(t, deleted.Term, state.Question.Word.Term)

	for i := 0; i < session.QuestionCount; i++ {
		state, err := svc.Current(ctx, session.ID)
		require.NoError(t, err)
		outcome, err := svc.Answer(ctx, session.ID, practice.ExpectedAnswer(state.Question.Kind, state.Question.Word))
		require.NoError(t, err)
		assert.True(t, outcome.Correct)
	}

	result, err := svc.Result(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, result.Percent)
	assert.Len(t, result.Questions, 3)
}
