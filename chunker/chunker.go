package chunker

// Chunk is a bounded segment of source document text prepared for embedding.
// Chunks are immutable once produced.
type Chunk struct {
	Index   int
	Title   string
	Content string
	Source  string
}

type Chunker interface {
	Chunk(text string, source string) []Chunk
}
