package catalogs

// catalogOptions holds the settings for a Catalog.
type catalogOptions struct {
	path  string // file used by Save and Load
	width Width
}

func (c *catalogOptions) apply(opts ...Option) *catalogOptions {
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func catalogDefaults() *catalogOptions {
	return &catalogOptions{
		width: Width64,
	}
}

// Option configures a catalog.
type Option func(*catalogOptions)

// WithPath sets the file the catalog is saved to and loaded from.
func WithPath(path string) Option {
	return func(c *catalogOptions) {
		c.path = path
	}
}

// WithWidth sets the length-prefix width of the binary format. Invalid
// widths are ignored.
func WithWidth(w Width) Option {
	return func(c *catalogOptions) {
		if w.Valid() {
			c.width = w
		}
	}
}
