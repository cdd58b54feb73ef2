package http

type Option func(*Options)

type Options struct {
	MaxUploadBytes int64
}

func WithMaxUploadBytes(max int64) Option {
	return func(o *Options) {
		o.MaxUploadBytes = max
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		MaxUploadBytes: 2 << 20,
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
