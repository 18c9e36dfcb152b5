package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDFromContent(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		a := IDFromContent("income $60000 employed 5 years")
		b := IDFromContent("income $60000 employed 5 years")
		assert.Equal(t, a, b)
	})

	t.Run("distinct content distinct ids", func(t *testing.T) {
		a := IDFromContent("income $60000")
		b := IDFromContent("income $60001")
		assert.NotEqual(t, a, b)
	})
}

func TestQueryKindString(t *testing.T) {
	assert.Equal(t, "text", KindText.String())
	assert.Equal(t, "pdf", KindPDF.String())
	assert.Equal(t, "image", KindImage.String())
}

func TestFallbackIntent(t *testing.T) {
	intent := FallbackIntent("clients who defaulted")
	assert.Equal(t, "clients who defaulted", intent.SearchText)
	assert.Empty(t, intent.Filters)
	assert.Empty(t, intent.DetectedAttributes)
}

func TestRetrievalRequestValidate(t *testing.T) {
	valid := RetrievalRequest{QueryVectorText: "high income", TopK: 5}
	assert.NoError(t, valid.Validate())

	assert.ErrorIs(t, RetrievalRequest{QueryVectorText: "q", TopK: 0}.Validate(), ErrInvalidTopK)
	assert.ErrorIs(t, RetrievalRequest{QueryVectorText: "q", TopK: -1}.Validate(), ErrInvalidTopK)
	assert.ErrorIs(t, RetrievalRequest{TopK: 3}.Validate(), ErrEmptyQuery)
}
