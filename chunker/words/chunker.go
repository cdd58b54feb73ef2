package words

import (
	"regexp"
	"strings"

	"github.com/lexaid/counsel/chunker"
)

const defaultSize = 200

var (
	// Section 41 - Parking and waiting in prohibited areas: ₱400.00
	penaltyLine = regexp.MustCompile(`(?i)(Section|Article)\s+([A-Za-z0-9()/]+)\s*[-:]?\s+(.+?)\s*[:\-]\s*₱?([0-9][0-9,.]*)`)
	// ARTICLE VI, ARTICLE 3
	articleHeading = regexp.MustCompile(`(?i)\bARTICLE\s+([IVXLCDM]+|[0-9]+)\b`)
)

type wordChunker struct {
	options chunker.Options
}

// Chunk accumulates whitespace-normalized words until the word threshold is
// reached and flushes the accumulation as one chunk. A trailing partial
// accumulation below the threshold is still flushed. Each flushed chunk is
// scanned for a heading pattern; when a monetary penalty is detected the
// heading segment is rewritten in place with a normalized "Penalty: <amount>"
// form and the currency symbol stripped, leaving the surrounding text intact.
func (c *wordChunker) Chunk(text string, source string) []chunker.Chunk {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}

	size := c.options.Size

	var chunks []chunker.Chunk
	for i := 0; i < len(fields); i += size {
		end := i + size
		if end > len(fields) {
			end = len(fields)
		}

		content := strings.Join(fields[i:end], " ")
		title, content := annotate(content)

		chunks = append(chunks, chunker.Chunk{
			Index:   len(chunks),
			Title:   title,
			Content: content,
			Source:  source,
		})
	}

	return chunks
}

func annotate(content string) (string, string) {
	if loc := penaltyLine.FindStringSubmatchIndex(content); loc != nil {
		title := strings.TrimSpace(content[loc[2]:loc[3]] + " " + content[loc[4]:loc[5]])
		rewritten := strings.TrimSpace(content[loc[6]:loc[7]]) + " Penalty: " + strings.TrimSpace(content[loc[8]:loc[9]])

		// only the heading segment is rewritten; the rest of the chunk survives
		if prefix := strings.TrimSpace(content[:loc[0]]); len(prefix) > 0 {
			rewritten = prefix + " " + rewritten
		}
		if suffix := strings.TrimSpace(content[loc[1]:]); len(suffix) > 0 {
			rewritten = rewritten + " " + suffix
		}

		return title, rewritten
	}

	if m := articleHeading.FindStringSubmatch(content); m != nil {
		return "ARTICLE " + strings.ToUpper(m[1]), content
	}

	return "", content
}

func NewChunker(opts ...chunker.Option) chunker.Chunker {
	options := chunker.NewOptions(opts...)

	if options.Size <= 0 {
		options.Size = defaultSize
	}

	return &wordChunker{
		options: options,
	}
}
