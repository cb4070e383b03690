package vocabstore

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/Firemoon777/Vela-Vocabulary/keyfilter"
	"github.com/Firemoon777/Vela-Vocabulary/payload"
	"github.com/Firemoon777/Vela-Vocabulary/vocab"
	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/spf13/afero"
)

type Store struct {
	log logger.Logger
	fs  afero.Fs
}

func NewStore(log logger.Logger, fs afero.Fs) *Store {
	return &Store{log: log, fs: fs}
}

// Fs returns the underlying filesystem.
func (s *Store) Fs() afero.Fs {
	return s.fs
}

// Save writes res to path along with its manifest and, if requested, a key
// filter. The returned manifest is the one written.
//
// Everything that can fail short of I/O is done before the first file is
// renamed into place, so a rejected save leaves the previous files untouched.
func (s *Store) Save(path string, res *vocab.Result, opts ...SaveOption) (Manifest, error) {
	o := SaveOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if res == nil || res.Data == nil {
		return Manifest{}, ErrNoResult
	}

	m := NewManifest(res)

	var region []byte
	if o.filterBitsPerKey > 0 {
		var err error
		region, err = keyfilter.Build(res.Keys(), o.filterBitsPerKey, o.filterK)
		if err != nil {
			return Manifest{}, fmt.Errorf("key filter: %w", err)
		}
		m.KeyFilter = true
	}

	manifest, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return Manifest{}, err
	}

	if err := s.writeAtomic(path, res.Data); err != nil {
		return Manifest{}, err
	}
	if region != nil {
		if err := s.writeAtomic(KeyFilterPath(path), region); err != nil {
			return Manifest{}, err
		}
	}
	if err := s.writeAtomic(ManifestPath(path), append(manifest, '\n')); err != nil {
		return Manifest{}, err
	}
	if region == nil {
		if err := s.removeIfExists(KeyFilterPath(path)); err != nil {
			return Manifest{}, err
		}
	}

	s.log.Infof(
		"saved vocabulary %s: build=%s, words=%d, size=%d, codec=%s, key_filter=%v",
		path, m.BuildID, m.Words, m.Size, m.Codec, m.KeyFilter,
	)
	return m, nil
}

// Open reads the vocabulary at path and returns a Dictionary over it.
//
// When a manifest is present the vocabulary must match its size and checksum,
// and its codec and key filter are used. Otherwise the JSON codec is assumed
// and the returned manifest only carries what can be read from the bytes.
func (s *Store) Open(path string, opts ...OpenOption) (*vocab.Dictionary, Manifest, error) {
	o := OpenOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, Manifest{}, err
	}

	m, found, err := s.ReadManifest(path)
	if err != nil {
		return nil, Manifest{}, err
	}
	if !found {
		s.log.Debugf("no manifest for %s, assuming %s payloads", path, payload.CodecJSON)
		m = Manifest{Codec: payload.CodecJSON, Size: uint32(len(data))}
	} else {
		if int(m.Size) != len(data) {
			return nil, Manifest{}, fmt.Errorf("%w: %s has %d bytes, manifest says %d", ErrSizeMismatch, path, len(data), m.Size)
		}
		if sum := checksum(data); sum != m.SHA256 {
			return nil, Manifest{}, fmt.Errorf("%w: %s is %s, manifest says %s", ErrChecksumMismatch, path, sum, m.SHA256)
		}
	}

	codec, err := payload.CodecByName(m.Codec)
	if err != nil {
		return nil, Manifest{}, err
	}

	dictOpts := []vocab.DictionaryOption{vocab.WithReaderCodec(codec)}
	if o.cacheSize > 0 {
		dictOpts = append(dictOpts, vocab.WithLeafCache(o.cacheSize))
	}
	if m.KeyFilter && !o.skipFilter {
		region, err := afero.ReadFile(s.fs, KeyFilterPath(path))
		if err != nil {
			return nil, Manifest{}, fmt.Errorf("%w: %v", ErrFilterMissing, err)
		}
		dictOpts = append(dictOpts, vocab.WithKeyFilter(region))
	}
	dictOpts = append(dictOpts, o.dictOptions...)

	d, err := vocab.NewDictionary(data, dictOpts...)
	if err != nil {
		return nil, Manifest{}, err
	}
	return d, m, nil
}

// ReadManifest returns the manifest saved alongside path. found=false means
// there is none.
func (s *Store) ReadManifest(path string) (m Manifest, found bool, err error) {
	mp := ManifestPath(path)
	ok, err := afero.Exists(s.fs, mp)
	if err != nil || !ok {
		return Manifest{}, false, err
	}
	data, err := afero.ReadFile(s.fs, mp)
	if err != nil {
		return Manifest{}, false, err
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, false, fmt.Errorf("manifest %s: %w", mp, err)
	}
	return m, true, nil
}

func (s *Store) writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := afero.TempFile(s.fs, dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = s.fs.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = s.fs.Remove(tmp)
		return err
	}
	if err := s.fs.Rename(tmp, path); err != nil {
		_ = s.fs.Remove(tmp)
		return err
	}
	return nil
}

func (s *Store) removeIfExists(path string) error {
	ok, err := afero.Exists(s.fs, path)
	if err != nil || !ok {
		return err
	}
	return s.fs.Remove(path)
}
