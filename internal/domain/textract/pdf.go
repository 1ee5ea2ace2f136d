package textract

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/okian/scribe/pkg/logger"
)

// extractPDF concatenates the plain text of each page. Pages that fail to
// decode are skipped; partial text is acceptable.
func (e *Extractor) extractPDF(ctx context.Context, data []byte) (text string, err error) {
	// The pdf library panics on some malformed files; a corrupt upload must
	// surface as a normal extraction failure.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("pdf parse panic: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	maxPages := reader.NumPage()
	if e.maxPDFPages > 0 && e.maxPDFPages < maxPages {
		maxPages = e.maxPDFPages
	}

	var builder strings.Builder
	for i := 1; i <= maxPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			e.warn(ctx, "skipping unreadable pdf page", logger.Int("page", i), logger.Error(err))
			continue
		}
		builder.WriteString(pageText)
	}

	return builder.String(), nil
}
