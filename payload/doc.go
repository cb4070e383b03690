package payload

/*

# Leaf payload codecs

A leaf block of the vocabulary file is an opaque, length-delimited byte
sequence. The trie layer only needs to know its length; the payload layer
decides how a list of records becomes bytes.

Two encodings are provided:

- JSON: a UTF-8 array of `{"i": id, "o": translation, "s": transcription}`
  objects. This is the format existing readers of the vocabulary expect.
- CBOR: the same list encoded with core deterministic CBOR. Smaller and
  cheaper to decode, but not understood by text-only readers.

The file itself does not record which codec was used; the builder and the
reader must agree (see the manifest written by `vocabstore`).

Decoding must consume exactly the bytes given. Trailing bytes are an error:
a leaf block is self-delimited by the `data_length` field of its table.

*/
