package main

import (
	"fmt"
	"math"
	"os"

	"github.com/Firemoon777/Vela-Vocabulary/keyfilter"
	"github.com/Firemoon777/Vela-Vocabulary/payload"
	"github.com/Firemoon777/Vela-Vocabulary/vocab"
	"github.com/Firemoon777/Vela-Vocabulary/vocabstore"
	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	outputFlag             = "output"
	thresholdFlag          = "threshold"
	codecFlag              = "codec"
	keyFieldFlag           = "key-field"
	translationFieldFlag   = "translation-field"
	transcriptionFieldFlag = "transcription-field"
	duplicatesFlag         = "duplicates"
	filterBitsFlag         = "filter-bits"
	filterKFlag            = "filter-k"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a vocabulary from raw JSON rows",
	Long: `Build reads a JSON array of objects, takes the key, translation and
transcription from the configured fields and writes the encoded vocabulary
with its manifest and, optionally, a key filter.`,
	Args: cobra.NoArgs,
	PreRun: func(cmd *cobra.Command, _ []string) {
		ff := cmd.Flags()
		for _, name := range []string{
			inputFlag, outputFlag, thresholdFlag, codecFlag,
			keyFieldFlag, translationFieldFlag, transcriptionFieldFlag,
			duplicatesFlag, filterBitsFlag, filterKFlag,
		} {
			_ = viper.BindPFlag(name, ff.Lookup(name))
		}
	},
	RunE: buildFunc,
}

func init() {
	def := vocab.DefaultConfig()

	ff := buildCmd.Flags()
	ff.StringP(inputFlag, "i", "", "raw JSON rows")
	ff.StringP(outputFlag, "o", "", "vocabulary file to write")
	ff.Int(thresholdFlag, def.LeafThreshold, "maximum number of words a table keeps in its own leaf")
	ff.String(codecFlag, payload.CodecJSON, "leaf payload codec (json, cbor)")
	ff.String(keyFieldFlag, def.KeyField, "row field holding the word")
	ff.String(translationFieldFlag, def.TranslationField, "row field holding the translation")
	ff.String(transcriptionFieldFlag, def.TranscriptionField, "row field holding the transcription")
	ff.String(duplicatesFlag, def.DuplicatePolicy.String(), "duplicate key policy (keep-last, keep-first, reject)")
	ff.Uint64(filterBitsFlag, 0, "key filter bits per key, 0 disables the filter")
	ff.Uint8(filterKFlag, keyfilter.DefaultK, "key filter probes per key")

	_ = buildCmd.MarkFlagRequired(inputFlag)
	_ = buildCmd.MarkFlagRequired(outputFlag)
}

func buildFunc(cmd *cobra.Command, _ []string) error {
	log := logger.Sugar.WithServiceName("vocabtrie")

	codec, err := payload.CodecByName(viper.GetString(codecFlag))
	if err != nil {
		return err
	}
	policy, err := vocab.ParseDuplicatePolicy(viper.GetString(duplicatesFlag))
	if err != nil {
		return err
	}
	probes, err := filterProbes(viper.GetUint(filterKFlag))
	if err != nil {
		return err
	}

	f, err := os.Open(viper.GetString(inputFlag))
	if err != nil {
		return err
	}
	defer f.Close()
	rows, err := readRows(f)
	if err != nil {
		return err
	}

	b := vocab.NewBuilder(log,
		vocab.WithLeafThreshold(viper.GetInt(thresholdFlag)),
		vocab.WithFields(
			viper.GetString(keyFieldFlag),
			viper.GetString(translationFieldFlag),
			viper.GetString(transcriptionFieldFlag),
		),
		vocab.WithDuplicatePolicy(policy),
		vocab.WithCodec(codec),
	)
	res, err := b.BuildRows(rows)
	if err != nil {
		return err
	}

	var opts []vocabstore.SaveOption
	if bits := viper.GetUint64(filterBitsFlag); bits > 0 {
		opts = append(opts, vocabstore.WithKeyFilter(bits, probes))
	}
	m, err := newStore().Save(viper.GetString(outputFlag), res, opts...)
	if err != nil {
		return err
	}

	cmd.Printf("words: %d (duplicates: %d)\n", m.Words, len(res.Duplicates))
	cmd.Printf("tables: %d, leaves: %d\n", m.Tables, m.Leaves)
	cmd.Printf("size: %d bytes, first table: %d bytes\n", m.Size, res.Vocabulary.FirstTableSize)
	cmd.Printf("build: %s\n", m.BuildID)
	return nil
}

// filterProbes range checks the configured number of filter probes. Values
// from a config file or the environment are not limited by the flag type.
func filterProbes(k uint) (uint8, error) {
	if k == 0 || k > math.MaxUint8 {
		return 0, fmt.Errorf("--%s must be in [1, %d], got %d", filterKFlag, math.MaxUint8, k)
	}
	return uint8(k), nil
}
