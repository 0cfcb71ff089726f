package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ats-analyzer/internal/shared/testutil"
)

func TestExtractPDFJoinsPagesWithText(t *testing.T) {
	data := testutil.MinimalPDF("Senior Go Engineer", "", "Kubernetes and gRPC")

	text, err := ExtractPDF(context.Background(), data)

	require.NoError(t, err)
	assert.NotEmpty(t, text)
	assert.Contains(t, text, "Senior Go Engineer")
	assert.Contains(t, text, "Kubernetes and gRPC")
	assert.Equal(t, "Senior Go Engineer Kubernetes and gRPC", text)
}

func TestExtractPDFBlankPagesFail(t *testing.T) {
	data := testutil.MinimalPDF("", "")

	text, err := ExtractPDF(context.Background(), data)

	require.Error(t, err)
	assert.Empty(t, text)
	var extractErr *ExtractionError
	require.True(t, errors.As(err, &extractErr))
	assert.True(t, errors.Is(err, ErrExtraction))
	assert.Contains(t, err.Error(), "PDF Error: ")
	assert.Contains(t, err.Error(), "no text extracted from the PDF")
}

func TestExtractPDFCorruptInputCarriesCause(t *testing.T) {
	_, err := ExtractPDF(context.Background(), []byte("definitely not a pdf document, just words"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrExtraction))
	assert.Contains(t, err.Error(), "PDF Error: ")
	assert.Contains(t, err.Error(), "not a PDF file")
}

func TestExtractPDFEmptyInput(t *testing.T) {
	_, err := ExtractPDF(context.Background(), nil)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrExtraction))
}

func TestExtractPDFCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ExtractPDF(ctx, testutil.MinimalPDF("hello"))

	assert.ErrorIs(t, err, context.Canceled)
}
