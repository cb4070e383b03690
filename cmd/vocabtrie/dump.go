package main

import (
	"fmt"
	"io"

	"github.com/Firemoon777/Vela-Vocabulary/payload"
	"github.com/Firemoon777/Vela-Vocabulary/vocab"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	offsetFlag = "offset"
	lengthFlag = "length"
	leafFlag   = "leaf"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the tables of a vocabulary",
	Long: `Dump prints every table reachable from the root, or only the table at
--offset/--length. With --leaf the leaf records of each table are printed too.`,
	Args: cobra.NoArgs,
	PreRun: func(cmd *cobra.Command, _ []string) {
		ff := cmd.Flags()
		for _, name := range []string{inputFlag, offsetFlag, lengthFlag, leafFlag} {
			_ = viper.BindPFlag(name, ff.Lookup(name))
		}
	},
	RunE: dumpFunc,
}

func init() {
	ff := dumpCmd.Flags()
	ff.StringP(inputFlag, "i", "", "vocabulary file")
	ff.Uint32(offsetFlag, 0, "offset of a single table to print")
	ff.Uint32(lengthFlag, 0, "length of the table at --offset")
	ff.Bool(leafFlag, false, "also print leaf records")
	_ = dumpCmd.MarkFlagRequired(inputFlag)
}

func dumpFunc(cmd *cobra.Command, _ []string) error {
	d, m, err := newStore().Open(viper.GetString(inputFlag))
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	leaves := viper.GetBool(leafFlag)

	fmt.Fprintf(w, "first table size: %d\n", d.Header().FirstTableSize)
	if m.BuildID != uuid.Nil {
		fmt.Fprintf(w, "build: %s, codec: %s, words: %d\n", m.BuildID, m.Codec, m.Words)
	}

	if offset := viper.GetUint32(offsetFlag); offset != 0 {
		t, err := d.Table(vocab.TableRef{Offset: offset, Size: viper.GetUint32(lengthFlag)})
		if err != nil {
			return err
		}
		return printTable(w, d, "?", t, leaves)
	}

	return vocab.Walk(d.Bytes(), func(prefix string, t vocab.Table) error {
		return printTable(w, d, prefix, t, leaves)
	})
}

func printTable(w io.Writer, d *vocab.Dictionary, prefix string, t vocab.Table, leaves bool) error {
	fmt.Fprintf(w, "table %q at %d+%d\n", prefix, t.Ref.Offset, t.Ref.Size)
	if t.HasLeaf() {
		fmt.Fprintf(w, "\tleaf at %d+%d\n", t.DataOffset, t.DataLength)
	}
	for _, c := range t.Children {
		fmt.Fprintf(w, "\t%q words=%d table=%d+%d\n", c.Letter, c.Words, c.Table.Offset, c.Table.Size)
	}
	if !leaves || !t.HasLeaf() {
		return nil
	}
	records, err := d.Leaf(t)
	if err != nil {
		return err
	}
	printRecords(w, records)
	return nil
}

func printRecords(w io.Writer, records []payload.Record) {
	for _, r := range records {
		fmt.Fprintf(w, "\t\t%s %s: %s\n", r.ID, r.Transcription, r.Translation)
	}
}
