package chunker

type Option func(*Options)

type Options struct {
	// Size is the maximum unit count per chunk. The fixed chunker reads it
	// as a rune count, the words chunker as a word count.
	Size int
}

func WithSize(size int) Option {
	return func(o *Options) {
		o.Size = size
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
