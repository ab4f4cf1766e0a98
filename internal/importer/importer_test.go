package importer_test

import (
	"strings"
	"testing"

	"github.com/VA-creat/eassylang/internal/importer"
	"github.com/VA-creat/eassylang/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadCSV_VariableFields(t *testing.T) {
	input := "\ufeffapple,яблоко,noun,An apple a day\n" +
		"book,книга\n" +
		"\n" +
		" run , бежать , VERB\n" +
		"\"say \"\"hi\"\"\",сказать привет,phrase\n"

	rows, err := importer.ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, models.ImportRow{Line: 1, Term: "apple", Translation: "яблоко", Part: "noun", Example: "An apple a day"}, rows[0])
	assert.Equal(t, "book", rows[1].Term)
	assert.Equal(t, "", rows[1].Part)
	assert.Equal(t, "run", rows[2].Term)
	assert.Equal(t, "бежать", rows[2].Translation)
	assert.Equal(t, `say "hi"`, rows[3].Term)
}

func TestReadCSV_SkipsHeaderRow(t *testing.T) {
	rows, err := importer.ReadCSV(strings.NewReader("Term,Translation,part_of_speech,example\ncat,кошка\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "cat", rows[0].Term)
}

func TestReadXLSX_FirstSheet(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"term", "translation"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"gracias", "thank you", "phrase", "¡Muchas gracias!"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{"casa", "house"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	rows, err := importer.ReadRows("words.XLSX", buf)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "gracias", rows[0].Term)
	assert.Equal(t, "phrase", rows[0].Part)
	assert.Equal(t, "¡Muchas gracias!", rows[0].Example)
	assert.Equal(t, "house", rows[1].Translation)
}

func TestReadRows_UnsupportedFormat(t *testing.T) {
	_, err := importer.ReadRows("words.pdf", strings.NewReader(""))
	assert.ErrorIs(t, err, importer.ErrUnsupportedFormat)

	assert.True(t, importer.Supported("list.csv"))
	assert.True(t, importer.Supported("list.xlsx"))
	assert.False(t, importer.Supported("list.doc"))
}

func TestWords_CountsInvalidAndSkipsBlank(t *testing.T) {
	rows := []models.ImportRow{
		{Line: 1, Term: "apple", Translation: "яблоко"},
		{Line: 2},
		{Line: 3, Term: "orphan"},
		{Line: 4, Translation: "без слова"},
		{Line: 5, Term: "run", Translation: "бежать", Part: "Verb"},
		{Line: 6, Term: "wow", Translation: "вау", Part: "interjection"},
	}

	words, invalid := importer.Words(3, rows)

	assert.Equal(t, 2, invalid)
	require.Len(t, words, 3)
	assert.Equal(t, int64(3), words[0].LanguageID)
	assert.Equal(t, models.PartOther, words[0].PartOfSpeech)
	assert.Equal(t, models.PartVerb, words[1].PartOfSpeech)
	assert.Equal(t, models.PartOther, words[2].PartOfSpeech)
}
