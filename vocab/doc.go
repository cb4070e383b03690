package vocab

/*

# Vocabulary trie (build once, read in place)

This package builds and reads a compact prefix trie mapping lower-cased words
to payload records. The encoded file is designed for random access: a reader
only ever loads the handful of tables on the path to a word and, at most, one
leaf block per table.

## Construction

Build runs as a pipeline over one immutable record set:

	normalize keys -> detect duplicates -> Partition -> AssignLayout -> Encode

Partition recursively splits the record set on successive letters until a
subset has fewer than LeafThreshold keys, at which point the subset is
collapsed into a single leaf block. Keys that end exactly at a node are kept in
that node's own leaf.

Every child entry embeds the absolute offset of the table it points to, and
that offset depends on the length of every table and leaf before it.
AssignLayout therefore fixes all lengths first, then all offsets, and only
then copies the references in.

## Layout

All integers are big-endian uint32.

	+---------------------------+  offset 0
	| first_table_size          |
	+---------------------------+  offset 4
	| table 0 (root)            |  data_offset, data_length, child entries...
	| table 1                   |
	| ...                       |  tables in pre-order
	+---------------------------+
	| leaf block                |  opaque payload bytes
	| ...                       |  leaves in the same relative order
	+---------------------------+

A table has no count field and no terminator. Its extent is carried by the
reference to it: the header for the root, the parent's child entry otherwise.

	child entry = letter (UTF-8, one rune) | words | offset | size

## Reading

ReadHeader, ReadTable, (Table).Child and ReadLeaf are the primitives; Lookup
is the word resolution algorithm built on them. They are stateless and never
mutate the buffer, so any number of goroutines may share one buffer.

*/
