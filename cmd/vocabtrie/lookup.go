package main

import (
	"github.com/Firemoon777/Vela-Vocabulary/vocabstore"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup WORD...",
	Short: "Look words up in a vocabulary",
	Args:  cobra.MinimumNArgs(1),
	PreRun: func(cmd *cobra.Command, _ []string) {
		_ = viper.BindPFlag(inputFlag, cmd.Flags().Lookup(inputFlag))
	},
	RunE: lookupFunc,
}

func init() {
	lookupCmd.Flags().StringP(inputFlag, "i", "", "vocabulary file")
	_ = lookupCmd.MarkFlagRequired(inputFlag)
}

func lookupFunc(cmd *cobra.Command, args []string) error {
	d, _, err := newStore().Open(viper.GetString(inputFlag), vocabstore.WithLeafCache(len(args)))
	if err != nil {
		return err
	}
	for _, word := range args {
		r, ok, err := d.Lookup(word)
		if err != nil {
			return err
		}
		if !ok {
			cmd.Printf("%s: not found\n", word)
			continue
		}
		cmd.Printf("%s %s: %s\n", r.ID, r.Transcription, r.Translation)
	}
	return nil
}
