package vocab

import (
	"fmt"

	"github.com/Firemoon777/Vela-Vocabulary/payload"
	"github.com/datatrails/go-datatrails-common/logger"
)

// Builder runs the construction pipeline over one record set:
// normalize, dedupe, partition, lay out, encode.
type Builder struct {
	log logger.Logger
	cfg Config
}

// Result is a finished build. Data is only set when the whole pipeline
// succeeded; construction never yields a partial buffer.
type Result struct {
	Config     Config
	Entries    []Entry
	Duplicates []*DuplicateKeyError
	Vocabulary *Vocabulary
	Data       []byte
}

// Keys returns the normalized keys of every entry in the vocabulary.
func (r *Result) Keys() []string {
	keys := make([]string, len(r.Entries))
	for i, e := range r.Entries {
		keys[i] = e.Key
	}
	return keys
}

func NewBuilder(log logger.Logger, opts ...Option) *Builder {
	return &Builder{
		log: log,
		cfg: NewConfig(opts...),
	}
}

// Config returns the effective build configuration.
func (b *Builder) Config() Config {
	return b.cfg
}

// BuildRows maps raw rows through the configured field selectors and builds.
func (b *Builder) BuildRows(rows []map[string]string) (*Result, error) {
	records, err := RecordsFromRows(rows, b.cfg)
	if err != nil {
		return nil, err
	}
	return b.Build(records)
}

// Build constructs and encodes the vocabulary for records.
//
// Records whose keys collide are resolved by the configured DuplicatePolicy.
// Each conflict is logged with both records and listed in Result.Duplicates;
// under Reject the first conflict aborts the build.
func (b *Builder) Build(records []payload.Record) (*Result, error) {
	if b.cfg.LeafThreshold < 1 {
		return nil, ErrBadThreshold
	}
	codec := b.cfg.Codec
	if codec == nil {
		codec = payload.JSONCodec{}
	}

	entries, dups, err := Dedupe(records, b.cfg.DuplicatePolicy)
	for _, d := range dups {
		b.log.Infof("duplicate key %q (%s): kept %+v, dropped %+v", d.Key, b.cfg.DuplicatePolicy, d.Kept, d.Dropped)
	}
	if err != nil {
		return nil, err
	}

	v, err := Partition(entries, b.cfg.LeafThreshold)
	if err != nil {
		return nil, fmt.Errorf("partition: %w", err)
	}
	if err := AssignLayout(v, codec); err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	data, err := Encode(v)
	if err != nil {
		return nil, err
	}

	b.log.Debugf(
		"built vocabulary: words=%d, duplicates=%d, tables=%d, leaves=%d, bytes=%d, codec=%s",
		len(entries), len(dups), len(v.Nodes), len(v.Leaves), len(data), codec.Name(),
	)

	cfg := b.cfg
	cfg.Codec = codec
	return &Result{
		Config:     cfg,
		Entries:    entries,
		Duplicates: dups,
		Vocabulary: v,
		Data:       data,
	}, nil
}
