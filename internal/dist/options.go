package dist

import "github.com/git-pkgs/pkginfo/internal/logging"

const (
	// DefaultMaxArchiveSize caps how much of an archive is read into memory.
	DefaultMaxArchiveSize int64 = 1 << 30
	// DefaultMaxMetadataSize caps the size of the metadata member.
	DefaultMaxMetadataSize int64 = 16 << 20
)

type config struct {
	logger          logging.Logger
	maxArchiveSize  int64
	maxMetadataSize int64
}

// Option configures how a distribution is opened.
type Option func(*config)

// WithLogger sets the logger that receives classification and lookup details.
func WithLogger(l logging.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMaxArchiveSize sets the largest archive that will be read. Zero or a
// negative value removes the limit.
func WithMaxArchiveSize(n int64) Option {
	return func(c *config) {
		c.maxArchiveSize = n
	}
}

// WithMaxMetadataSize sets the largest metadata member that will be read.
// Zero or a negative value removes the limit.
func WithMaxMetadataSize(n int64) Option {
	return func(c *config) {
		c.maxMetadataSize = n
	}
}

func newConfig(opts []Option) *config {
	c := &config{
		logger:          logging.NewNullLogger(),
		maxArchiveSize:  DefaultMaxArchiveSize,
		maxMetadataSize: DefaultMaxMetadataSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
