package vocab

import (
	"fmt"
	"os"
	"testing"

	"github.com/Firemoon777/Vela-Vocabulary/payload"
	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.New("NOOP")
	code := m.Run()
	logger.OnExit()
	os.Exit(code)
}

func testLogger() logger.Logger {
	return logger.Sugar.WithServiceName("vocab_test")
}

func mkRecord(id string) payload.Record {
	return payload.Record{ID: id, Translation: "t:" + id, Transcription: "[" + id + "]"}
}

// testRecords returns a vocabulary with shared prefixes, words that are
// prefixes of other words, mixed case and multi-byte letters.
func testRecords() []payload.Record {
	words := []string{
		"a", "ab", "abc", "abcd", "abd", "b", "ba", "bat", "bath", "bathe",
		"Cat", "catalog", "catch", "cattle", "dog", "dot", "ab c",
		"кот", "кошка", "ёж", "naïve", "Über", "日本",
	}
	for i := 0; i < 120; i++ {
		words = append(words, fmt.Sprintf("w%03d", i))
	}
	for i := 0; i < 60; i++ {
		words = append(words, fmt.Sprintf("x%dy", i))
	}
	records := make([]payload.Record, len(words))
	for i, w := range words {
		records[i] = mkRecord(w)
	}
	return records
}

func testEntries(t *testing.T, records []payload.Record) []Entry {
	entries, dups, err := Dedupe(records, Reject)
	require.NoError(t, err)
	require.Empty(t, dups)
	return entries
}

func mustBuild(t *testing.T, records []payload.Record, opts ...Option) *Result {
	res, err := NewBuilder(testLogger(), opts...).Build(records)
	require.NoError(t, err)
	require.NotEmpty(t, res.Data)
	return res
}

func testCodecs(t *testing.T) []payload.Codec {
	cborCodec, err := payload.NewCBORCodec()
	require.NoError(t, err)
	return []payload.Codec{payload.JSONCodec{}, cborCodec}
}

// checkNodeInvariants checks the count and ordering invariants of every node.
func checkNodeInvariants(t *testing.T, v *Vocabulary) {
	t.Helper()
	for i, n := range v.Nodes {
		want := uint32(0)
		if n.Leaf != nil {
			require.Equal(t, i, n.Leaf.Owner)
			want += uint32(len(n.Leaf.Records))
		}
		for j, c := range n.Children {
			if j > 0 {
				require.Less(t, n.Children[j-1].Letter, c.Letter, "node %q", n.Prefix)
			}
			child := v.Nodes[c.Target]
			require.Greater(t, c.Target, i, "children follow parents in pre-order")
			require.Equal(t, n.Prefix+string(c.Letter), child.Prefix)
			require.Equal(t, n.Depth+1, child.Depth)
			want += child.Total
		}
		require.Equal(t, want, n.Total, "node %q", n.Prefix)
	}
}
