package vocabstore

import "errors"

var (
	ErrChecksumMismatch = errors.New("vocabstore: vocabulary does not match the manifest checksum")
	ErrSizeMismatch     = errors.New("vocabstore: vocabulary size does not match the manifest")
	ErrNoResult         = errors.New("vocabstore: nothing to save, the build produced no data")
	ErrFilterMissing    = errors.New("vocabstore: manifest names a key filter but none was found")
)
