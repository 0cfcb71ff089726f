package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrExtraction matches every *ExtractionError via errors.Is.
var ErrExtraction = errors.New("pdf extraction failed")

var errNoText = errors.New("no text extracted from the PDF")

// ExtractionError reports an unreadable or text-empty PDF.
type ExtractionError struct {
	Cause error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("PDF Error: %v", e.Cause)
}

func (e *ExtractionError) Unwrap() error { return e.Cause }

func (e *ExtractionError) Is(target error) bool { return target == ErrExtraction }

// ExtractPDF returns the text of every page that has any, joined by single spaces.
func ExtractPDF(ctx context.Context, data []byte) (text string, err error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", &ExtractionError{Cause: errors.New("empty document")}
	}

	// The parser panics on some malformed inputs.
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = &ExtractionError{Cause: fmt.Errorf("malformed pdf: %v", rec)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Cause: err}
	}

	pages := make([]string, 0, reader.NumPage())
	var lastErr error
	for i := 1; i <= reader.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		plain, err := page.GetPlainText(nil)
		if err != nil {
			lastErr = fmt.Errorf("page %d: %w", i, err)
			continue
		}
		plain = strings.TrimSpace(plain)
		if plain == "" {
			continue
		}
		pages = append(pages, plain)
	}

	text = strings.Join(pages, " ")
	if text == "" {
		if lastErr != nil {
			return "", &ExtractionError{Cause: fmt.Errorf("%w: %v", errNoText, lastErr)}
		}
		return "", &ExtractionError{Cause: errNoText}
	}
	return text, nil
}
