package vocabstore

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/Firemoon777/Vela-Vocabulary/vocab"
	"github.com/google/uuid"
)

const (
	ManifestSuffix  = ".manifest.json"
	KeyFilterSuffix = ".kf"
)

// Manifest describes one saved vocabulary. It lives next to the vocabulary
// file and never changes the vocabulary bytes themselves.
type Manifest struct {
	BuildID       uuid.UUID `json:"build_id"`
	Created       time.Time `json:"created"`
	Codec         string    `json:"codec"`
	LeafThreshold int       `json:"leaf_threshold"`
	Duplicates    string    `json:"duplicates"`
	Words         int       `json:"words"`
	Tables        int       `json:"tables"`
	Leaves        int       `json:"leaves"`
	Size          uint32    `json:"size"`
	SHA256        string    `json:"sha256"`
	KeyFilter     bool      `json:"key_filter"`
}

func ManifestPath(path string) string {
	return path + ManifestSuffix
}

func KeyFilterPath(path string) string {
	return path + KeyFilterSuffix
}

func checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// NewManifest summarises res. The build id is freshly generated.
func NewManifest(res *vocab.Result) Manifest {
	m := Manifest{
		BuildID:       uuid.New(),
		Created:       time.Now().UTC(),
		LeafThreshold: res.Config.LeafThreshold,
		Duplicates:    res.Config.DuplicatePolicy.String(),
		Words:         len(res.Entries),
		Size:          uint32(len(res.Data)),
		SHA256:        checksum(res.Data),
	}
	if res.Config.Codec != nil {
		m.Codec = res.Config.Codec.Name()
	}
	if res.Vocabulary != nil {
		m.Tables = len(res.Vocabulary.Nodes)
		m.Leaves = len(res.Vocabulary.Leaves)
	}
	return m
}
