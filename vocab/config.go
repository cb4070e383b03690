package vocab

import "github.com/Firemoon777/Vela-Vocabulary/payload"

// Config carries the build parameters.
type Config struct {
	// LeafThreshold is the key count below which a subtree is collapsed into a
	// single leaf block.
	LeafThreshold int

	// Field selectors for raw input rows (see RecordsFromRows).
	KeyField           string
	TranslationField   string
	TranscriptionField string

	DuplicatePolicy DuplicatePolicy
	Codec           payload.Codec
}

// DefaultConfig returns the configuration used for the ENG-RU vocabulary.
func DefaultConfig() Config {
	return Config{
		LeafThreshold:      DefaultLeafThreshold,
		KeyField:           "en",
		TranslationField:   "ru",
		TranscriptionField: "tr",
		DuplicatePolicy:    KeepLast,
		Codec:              payload.JSONCodec{},
	}
}

// NewConfig applies opts over DefaultConfig.
func NewConfig(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	return cfg
}

type Option func(*Config)

func WithLeafThreshold(threshold int) Option {
	return func(c *Config) {
		c.LeafThreshold = threshold
	}
}

// WithFields sets the raw row field names for the key, translation and
// transcription.
func WithFields(key, translation, transcription string) Option {
	return func(c *Config) {
		c.KeyField = key
		c.TranslationField = translation
		c.TranscriptionField = transcription
	}
}

func WithDuplicatePolicy(policy DuplicatePolicy) Option {
	return func(c *Config) {
		c.DuplicatePolicy = policy
	}
}

func WithCodec(codec payload.Codec) Option {
	return func(c *Config) {
		c.Codec = codec
	}
}
