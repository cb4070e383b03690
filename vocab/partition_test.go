package vocab

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/Firemoon777/Vela-Vocabulary/payload"
	"github.com/stretchr/testify/require"
)

func TestPartitionCollapsesBelowThreshold(t *testing.T) {
	var records []payload.Record
	for i := 0; i < 39; i++ {
		records = append(records, mkRecord(fmt.Sprintf("a%02d", i)))
	}

	v, err := Partition(testEntries(t, records), DefaultLeafThreshold)
	require.NoError(t, err)
	require.Len(t, v.Nodes, 1)
	require.Len(t, v.Leaves, 1)
	require.Empty(t, v.Root().Children)
	require.Len(t, v.Root().Leaf.Records, 39)
	require.Equal(t, uint32(39), v.Root().Total)
}

func TestPartitionSplitsAtThreshold(t *testing.T) {
	var records []payload.Record
	for i := 0; i < 41; i++ {
		records = append(records, mkRecord(string(rune('а'+i%32))+fmt.Sprintf("%02d", i)))
	}

	v, err := Partition(testEntries(t, records), DefaultLeafThreshold)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(v.Root().Children), 2)
	require.Nil(t, v.Root().Leaf)
	require.Equal(t, uint32(41), v.Root().Total)
	checkNodeInvariants(t, v)
}

func TestPartitionKeysEndingAtNode(t *testing.T) {
	records := []payload.Record{mkRecord("abc"), mkRecord("b"), mkRecord("ab"), mkRecord("a")}

	v, err := Partition(testEntries(t, records), 2)
	require.NoError(t, err)
	checkNodeInvariants(t, v)

	var prefixes []string
	for _, n := range v.Nodes {
		prefixes = append(prefixes, n.Prefix)
	}
	require.Equal(t, []string{"", "a", "ab", "b"}, prefixes)

	leafIDs := func(l *LeafBlock) []string {
		var ids []string
		for _, r := range l.Records {
			ids = append(ids, r.ID)
		}
		return ids
	}
	require.Len(t, v.Leaves, 3)
	require.Equal(t, []string{"a"}, leafIDs(v.Leaves[0]))
	require.Equal(t, []string{"ab", "abc"}, leafIDs(v.Leaves[1]))
	require.Equal(t, []string{"b"}, leafIDs(v.Leaves[2]))

	require.Nil(t, v.Root().Leaf)
	require.Equal(t, uint32(4), v.Root().Total)
	require.Equal(t, uint32(3), v.Nodes[1].Total)
}

func TestPartitionThresholdOneSplitsEveryKey(t *testing.T) {
	entries := testEntries(t, testRecords())
	v, err := Partition(entries, 1)
	require.NoError(t, err)
	checkNodeInvariants(t, v)

	// Every key ends in its own node's leaf.
	require.Len(t, v.Leaves, len(entries))
	for _, l := range v.Leaves {
		require.Len(t, l.Records, 1)
		key, err := NormalizeKey(l.Records[0].ID)
		require.NoError(t, err)
		require.Equal(t, key, v.Nodes[l.Owner].Prefix)
	}
}

func TestPartitionLeafOrderedByID(t *testing.T) {
	records := []payload.Record{mkRecord("dog"), mkRecord("Cat"), mkRecord("bat"), mkRecord("ant")}
	v, err := Partition(testEntries(t, records), 40)
	require.NoError(t, err)
	require.Len(t, v.Leaves, 1)

	var ids []string
	for _, r := range v.Leaves[0].Records {
		ids = append(ids, r.ID)
	}
	require.Equal(t, []string{"Cat", "ant", "bat", "dog"}, ids)
}

func TestPartitionIndependentOfInputOrder(t *testing.T) {
	records := testRecords()
	v1, err := Partition(testEntries(t, records), 5)
	require.NoError(t, err)

	shuffled := append([]payload.Record{}, records...)
	rand.New(rand.NewSource(1)).Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	v2, err := Partition(testEntries(t, shuffled), 5)
	require.NoError(t, err)

	require.Equal(t, len(v1.Nodes), len(v2.Nodes))
	for i := range v1.Nodes {
		require.Equal(t, v1.Nodes[i].Prefix, v2.Nodes[i].Prefix)
		require.Equal(t, v1.Nodes[i].Total, v2.Nodes[i].Total)
	}
	require.Equal(t, len(v1.Leaves), len(v2.Leaves))
	for i := range v1.Leaves {
		require.Equal(t, v1.Leaves[i].Records, v2.Leaves[i].Records)
	}
}

func TestPartitionEmpty(t *testing.T) {
	v, err := Partition(nil, DefaultLeafThreshold)
	require.NoError(t, err)
	require.Len(t, v.Nodes, 1)
	require.Empty(t, v.Leaves)
	require.Equal(t, uint32(0), v.Root().Total)
}

func TestPartitionErrors(t *testing.T) {
	_, err := Partition(nil, 0)
	require.ErrorIs(t, err, ErrBadThreshold)

	_, err = Partition([]Entry{{Key: "", Record: mkRecord("")}}, 1)
	require.ErrorIs(t, err, ErrInvalidKey)

	// Partition still catches duplicates that bypassed Dedupe.
	dup := []Entry{
		{Key: "cat", Record: mkRecord("cat")},
		{Key: "cat", Record: mkRecord("Cat")},
	}
	for _, threshold := range []int{1, 40} {
		_, err = Partition(dup, threshold)
		require.ErrorIs(t, err, ErrDuplicateKey)
		var dke *DuplicateKeyError
		require.ErrorAs(t, err, &dke)
		require.Equal(t, "cat", dke.Key)
	}
}
