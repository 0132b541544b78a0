package main

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/superdarn/godarn/rtp"
)

var (
	flagReportBeam int
	flagReportOut  string
)

var reportCmd = &cobra.Command{
	Use:   "report FILE",
	Short: "Render an interactive HTML report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := readRecords(args[0])
		if err != nil {
			return err
		}
		beam := flagReportBeam
		if !cmd.Flags().Changed("beam") {
			beam = viper.GetInt("plot.beam")
		}
		out := flagReportOut
		if out == "" {
			out = "report.html"
		}
		if err := rtp.HTMLReport(records, beam, out); err != nil {
			return err
		}
		log.WithField("file", out).Info("report written")
		return nil
	},
}

func init() {
	reportCmd.Flags().IntVarP(&flagReportBeam, "beam", "b", 0, "beam number")
	reportCmd.Flags().StringVarP(&flagReportOut, "output", "o", "", "output HTML path")
}
