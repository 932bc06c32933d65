package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNotDocx is returned when the data is not a zip package holding
// word/document.xml.
var ErrNotDocx = errors.New("not a docx document")

const documentPart = "word/document.xml"

// maxDocumentBytes caps the decompressed size of the document part.
var maxDocumentBytes int64 = 64 << 20

// ReadParagraphs returns the text of every paragraph in the main document
// part, in document order. Paragraphs inside tables are included. Tabs and
// breaks within a paragraph become "\t" and "\n".
func ReadParagraphs(data []byte) ([]string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotDocx, err)
	}

	var part *zip.File
	for _, f := range zr.File {
		if f.Name == documentPart {
			part = f
			break
		}
	}
	if part == nil {
		return nil, fmt.Errorf("%w: missing %s", ErrNotDocx, documentPart)
	}

	if part.UncompressedSize64 > uint64(maxDocumentBytes) {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrNotDocx, documentPart, maxDocumentBytes)
	}

	rc, err := part.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", documentPart, err)
	}
	defer rc.Close()

	// The header size is not trusted; cap what is actually inflated.
	body, err := io.ReadAll(io.LimitReader(rc, maxDocumentBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", documentPart, err)
	}
	if int64(len(body)) > maxDocumentBytes {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrNotDocx, documentPart, maxDocumentBytes)
	}

	return parseParagraphs(bytes.NewReader(body))
}

func parseParagraphs(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)

	var (
		paragraphs []string
		current    strings.Builder
		depth      int  // nesting of <w:p>, text boxes can nest paragraphs
		inText     bool // inside <w:t>
		inProps    int  // inside <w:pPr>, whose <w:tab> elements are tab stops
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", documentPart, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != wordNS {
				continue
			}
			switch t.Name.Local {
			case "p":
				if depth == 0 {
					current.Reset()
				}
				depth++
			case "pPr":
				inProps++
			case "t":
				inText = depth > 0
			case "tab":
				if depth > 0 && inProps == 0 {
					current.WriteByte('\t')
				}
			case "br", "cr":
				if depth > 0 {
					current.WriteByte('\n')
				}
			}
		case xml.EndElement:
			if t.Name.Space != wordNS {
				continue
			}
			switch t.Name.Local {
			case "p":
				if depth > 0 {
					depth--
					if depth == 0 {
						paragraphs = append(paragraphs, current.String())
					}
				}
			case "pPr":
				inProps--
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		}
	}
	return paragraphs, nil
}
