package textract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// documentXMLPath is the WordprocessingML main document part inside the
// .docx zip container.
const documentXMLPath = "word/document.xml"

// extractDOCX joins the text of each paragraph in the main document part
// with newlines.
func (e *Extractor) extractDOCX(_ context.Context, data []byte) (string, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx container: %w", err)
	}

	var doc *zip.File
	for _, f := range archive.File {
		if f.Name == documentXMLPath {
			doc = f
			break
		}
	}
	if doc == nil {
		return "", fmt.Errorf("docx container has no %s", documentXMLPath)
	}

	rc, err := doc.Open()
	if err != nil {
		return "", fmt.Errorf("open document part: %w", err)
	}
	defer rc.Close()

	return readParagraphs(rc)
}

// readParagraphs walks the WordprocessingML token stream collecting the
// character data of w:t runs and emitting a newline at each paragraph end.
func readParagraphs(r io.Reader) (string, error) {
	var (
		builder strings.Builder
		decoder = xml.NewDecoder(r)
		inText  bool
	)

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("decode document part: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				builder.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				builder.Write(t)
			}
		}
	}

	return builder.String(), nil
}
