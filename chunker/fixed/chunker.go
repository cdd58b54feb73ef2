package fixed

import "github.com/lexaid/counsel/chunker"

const defaultSize = 500

type fixedChunker struct {
	options chunker.Options
}

// Chunk cuts every Size runes regardless of word boundaries. The
// concatenation of all chunks reconstructs the input exactly.
func (c *fixedChunker) Chunk(text string, source string) []chunker.Chunk {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	size := c.options.Size

	var chunks []chunker.Chunk
	for i := 0; i < len(runes); i += size {
		end := i + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, chunker.Chunk{
			Index:   len(chunks),
			Content: string(runes[i:end]),
			Source:  source,
		})
	}

	return chunks
}

func NewChunker(opts ...chunker.Option) chunker.Chunker {
	options := chunker.NewOptions(opts...)

	if options.Size <= 0 {
		options.Size = defaultSize
	}

	return &fixedChunker{
		options: options,
	}
}
