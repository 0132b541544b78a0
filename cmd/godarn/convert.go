package main

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/superdarn/godarn/dmap"
	"github.com/superdarn/godarn/superdarn"
)

var convertCmd = &cobra.Command{
	Use:   "convert FILE OUT",
	Short: "Validate records against a schema and rewrite them",
	Long: `convert reads a DMAP file, checks every record against the schema
picked with --format and writes a clean copy. It fails rather than
write a file that does not satisfy the schema.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		reader, err := dmap.NewReader(args[0])
		if err != nil {
			return err
		}
		if err := reader.CheckIntegrity(); err != nil {
			return err
		}
		records, err := reader.ReadRecords()
		if err != nil {
			return err
		}

		schema, err := schemaFor(flagFormat)
		if err != nil {
			return err
		}
		if err := superdarn.Write(records, schema, args[1]); err != nil {
			return err
		}
		log.WithFields(log.Fields{
			"in":      args[0],
			"out":     args[1],
			"format":  schema.Name,
			"records": len(records),
		}).Info("converted")
		return nil
	},
}

func schemaFor(format string) (superdarn.Schema, error) {
	switch strings.ToLower(format) {
	case "fitacf":
		return superdarn.Fitacf, nil
	case "rawacf":
		return superdarn.Rawacf, nil
	case "iqdat":
		return superdarn.Iqdat, nil
	case "grid":
		return superdarn.Grid, nil
	case "map":
		return superdarn.Map, nil
	default:
		return superdarn.Schema{}, fmt.Errorf("unknown format %q", format)
	}
}
