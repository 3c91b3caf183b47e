package question_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrisurvey/internal/question"
	dErrors "agrisurvey/pkg/domain-errors"
)

func mustQuestion(t *testing.T, code string, typ question.Type, obligatoire bool, opts []question.Option) *question.Question {
	t.Helper()
	q, err := question.New("", code, "prompt "+code, typ, obligatoire, opts, now)
	require.NoError(t, err)
	return q
}

func TestValidateResponse_EmptyHandling(t *testing.T) {
	t.Run("obligatory rejects empty", func(t *testing.T) {
		q := mustQuestion(t, "Q1", question.TypeText, true, nil)
		for _, empty := range []any{nil, "", []any{}, []string{}} {
			err := q.ValidateResponse(empty)
			require.Error(t, err)
			assert.True(t, dErrors.IsValidation(err))
		}
	})

	t.Run("optional accepts empty trivially", func(t *testing.T) {
		q := mustQuestion(t, "Q1", question.TypeNumber, false, nil)
		assert.NoError(t, q.ValidateResponse(nil))
		assert.NoError(t, q.ValidateResponse(""))
	})
}

func TestValidateResponse_Number(t *testing.T) {
	q := mustQuestion(t, "Q2", question.TypeNumber, true, nil)

	assert.NoError(t, q.ValidateResponse(12.5))
	assert.NoError(t, q.ValidateResponse(7))
	assert.NoError(t, q.ValidateResponse("42.75"), "numeric strings coerce")
	assert.Error(t, q.ValidateResponse("douze"))
	assert.Error(t, q.ValidateResponse(true))
}

func TestValidateResponse_Date(t *testing.T) {
	q := mustQuestion(t, "Q3", question.TypeDate, true, nil)

	assert.NoError(t, q.ValidateResponse("2026-01-20"))
	assert.NoError(t, q.ValidateResponse("2026-01-20T08:30:00Z"))
	assert.NoError(t, q.ValidateResponse(time.Now()))
	assert.Error(t, q.ValidateResponse("hier"))
	assert.Error(t, q.ValidateResponse(20260120))
}

func TestValidateResponse_Boolean(t *testing.T) {
	q := mustQuestion(t, "Q4", question.TypeBoolean, true, nil)

	assert.NoError(t, q.ValidateResponse(true))
	assert.NoError(t, q.ValidateResponse(false))
	assert.NoError(t, q.ValidateResponse("true"))
	assert.NoError(t, q.ValidateResponse("false"))
	assert.Error(t, q.ValidateResponse("oui"))
	assert.Error(t, q.ValidateResponse(1))
}

func TestValidateResponse_SingleChoice(t *testing.T) {
	opts := []question.Option{
		{Libelle: "Cacao", Valeur: "cacao"},
		{Libelle: "Café", Valeur: "cafe"},
	}
	q := mustQuestion(t, "Q5", question.TypeSingleChoice, true, opts)

	assert.NoError(t, q.ValidateResponse("cacao"))
	err := q.ValidateResponse("hevea")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hevea")
	assert.Error(t, q.ValidateResponse(3))
}

func TestValidateResponse_MultiChoice(t *testing.T) {
	opts := []question.Option{
		{Libelle: "Tracteur", Valeur: "tracteur"},
		{Libelle: "Motopompe", Valeur: "motopompe"},
		{Libelle: "Pulvérisateur", Valeur: "pulverisateur"},
	}
	q := mustQuestion(t, "Q6", question.TypeMultiChoice, true, opts)

	assert.NoError(t, q.ValidateResponse([]string{"tracteur", "motopompe"}))
	assert.NoError(t, q.ValidateResponse([]any{"pulverisateur"}), "JSON-decoded slices coerce")
	assert.Error(t, q.ValidateResponse([]string{"tracteur", "drone"}))
	assert.Error(t, q.ValidateResponse([]any{"tracteur", 4}))
	assert.Error(t, q.ValidateResponse("tracteur"), "scalar rejected for multi_choice")
}

func TestNextQuestionCode(t *testing.T) {
	opts := []question.Option{
		{Libelle: "Oui", Valeur: "yes", Goto: "Q5"},
		{Libelle: "Non", Valeur: "no", Goto: "Q9"},
		{Libelle: "Peut-être", Valeur: "maybe_later"},
	}
	q := mustQuestion(t, "Q2", question.TypeSingleChoice, true, opts)

	assert.Equal(t, "Q5", q.NextQuestionCode("yes"))
	assert.Equal(t, "Q9", q.NextQuestionCode("no"))
	assert.Empty(t, q.NextQuestionCode("maybe"), "unknown value has no branch")
	assert.Empty(t, q.NextQuestionCode("maybe_later"), "option without goto has no branch")
	assert.Empty(t, q.NextQuestionCode(""), "no response, no branch")
}

func TestQuestionRoundTrip(t *testing.T) {
	opts := []question.Option{{Libelle: "Oui", Valeur: "yes", Goto: "Q5", Ordre: 1}}
	original, err := question.New("q-77", "Q7", "Membre d'une coopérative?", question.TypeSingleChoice, true, opts, now)
	require.NoError(t, err)
	require.NoError(t, original.SetReferenceTable(question.RefProducteur, "code", now.Add(time.Minute)))

	restored, err := question.FromAPI(original.ToAPI(), now.Add(time.Hour))
	require.NoError(t, err)

	assert.Equal(t, original.ID, restored.ID)
	assert.Equal(t, original.Code, restored.Code)
	assert.Equal(t, original.Options, restored.Options)
	assert.Equal(t, original.ReferenceTable, restored.ReferenceTable)
	assert.Equal(t, original.CreatedAt, restored.CreatedAt, "timestamps preserved")
	assert.Equal(t, original.UpdatedAt, restored.UpdatedAt)
}

func TestFromAPI_AlternateID(t *testing.T) {
	in := question.API{
		ExternalID: "mongo-abc123",
		Code:       "Q10",
		Texte:      "Âge du verger",
		Type:       "number",
	}
	q, err := question.FromAPI(in, now)
	require.NoError(t, err)
	assert.Equal(t, "mongo-abc123", q.ID)
}

func TestFromAPI_RejectsInvalid(t *testing.T) {
	t.Run("unknown type", func(t *testing.T) {
		_, err := question.FromAPI(question.API{Code: "Q1", Texte: "t", Type: "grid"}, now)
		require.Error(t, err)
	})

	t.Run("reference table outside whitelist", func(t *testing.T) {
		in := question.API{Code: "Q1", Texte: "t", Type: "text", ReferenceTable: "Marche", ReferenceField: "nom"}
		_, err := question.FromAPI(in, now)
		require.Error(t, err)
	})

	t.Run("choice without options", func(t *testing.T) {
		_, err := question.FromAPI(question.API{Code: "Q1", Texte: "t", Type: "multi_choice"}, now)
		require.Error(t, err)
	})
}
