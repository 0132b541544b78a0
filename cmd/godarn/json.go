package main

import (
	"encoding/json"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var flagJSONOut string

var jsonCmd = &cobra.Command{
	Use:   "json FILE",
	Short: "Export records as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := readRecords(args[0])
		if err != nil {
			return err
		}
		b, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return err
		}
		b = append(b, '\n')
		if flagJSONOut == "" {
			_, err = cmd.OutOrStdout().Write(b)
			return err
		}
		if err := os.WriteFile(flagJSONOut, b, 0644); err != nil {
			return err
		}
		log.WithFields(log.Fields{
			"file":    flagJSONOut,
			"records": len(records),
		}).Info("json exported")
		return nil
	},
}

func init() {
	jsonCmd.Flags().StringVarP(&flagJSONOut, "output", "o", "",
		"write to a file instead of stdout")
}
