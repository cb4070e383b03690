// Package vocabstore saves and opens encoded vocabularies on an afero.Fs.
//
// A saved vocabulary is up to three files:
//
//	<path>                the vocabulary itself, byte for byte as encoded
//	<path>.manifest.json  build id, codec, counts, size and sha256
//	<path>.kf             optional keyfilter region over the normalized keys
//
// Every file is written to a temporary name and renamed into place. The
// manifest is renamed last, so a manifest on disk implies its siblings are
// complete. A vocabulary without a manifest can still be opened; it is read
// with the JSON codec and is not checksummed.
package vocabstore
