package keyfilter

/*

# Key prefilter for vocabulary lookups

This package provides a Bloom filter over the normalized keys of a
vocabulary. It is stored next to the vocabulary file (never inside it, so the
trie format is unchanged) and lets a reader reject most absent words without
reading a single table.

- If the filter says "definitely not present", the word is not present.
- If the filter says "maybe present", the trie must be consulted.

## Layout

	+----------------------+  32B header
	| HeaderV1             |  magic, version, hash scheme, key form, k,
	|                      |  mBits, key count, nInserted
	+----------------------+  ceil(mBits/8) bytes
	| bitset               |
	+----------------------+

The header records how keys were normalized before insertion. A reader must
normalize queries the same way; a filter with an unknown key form or hash
scheme is rejected rather than consulted.

The bitset is sized for a fixed key count. Inserting more keys than that is
ErrFilterFull.

## Indexing and bit numbering

Indices are derived by double hashing two xxhash digests of the key:
j_i = (h1 + i*h2) mod mBits for i in [0, k). Bit j lives in byte j>>3 at
position j&7, least significant bit first.

*/
