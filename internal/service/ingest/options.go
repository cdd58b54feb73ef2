package ingest

import "time"

type Option func(*Options)

type Options struct {
	// MaxChunks caps chunks processed per document to bound cost and latency.
	MaxChunks int
	// MinChunkLength drops noise chunks before embedding.
	MinChunkLength int
	// EmbedInterval paces embedding calls to stay under the remote rate limit.
	EmbedInterval time.Duration
}

func WithMaxChunks(max int) Option {
	return func(o *Options) {
		o.MaxChunks = max
	}
}

func WithMinChunkLength(min int) Option {
	return func(o *Options) {
		o.MinChunkLength = min
	}
}

func WithEmbedInterval(interval time.Duration) Option {
	return func(o *Options) {
		o.EmbedInterval = interval
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		MaxChunks:      100,
		MinChunkLength: 10,
		EmbedInterval:  100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
