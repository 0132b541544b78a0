package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gonum.org/v1/plot/vg"

	"github.com/superdarn/godarn/rtp"
)

var (
	flagPlotType  string
	flagPlotBeam  int
	flagPlotField string
	flagPlotOut   string
	flagPlotScan  int
	flagSplitFreq float64
)

var plotCmd = &cobra.Command{
	Use:   "plot FILE",
	Short: "Render a PNG plot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := readRecords(args[0])
		if err != nil {
			return err
		}

		beam := flagPlotBeam
		if !cmd.Flags().Changed("beam") {
			beam = viper.GetInt("plot.beam")
		}
		field := flagPlotField
		if !cmd.Flags().Changed("field") {
			field = viper.GetString("plot.field")
		}
		out := flagPlotOut
		if out == "" {
			out = flagPlotType + ".png"
		}

		switch flagPlotType {
		case "rtp":
			p, err := rtp.RangeTime(records, rtp.Options{
				Field:         field,
				Beam:          beam,
				GroundScatter: true,
				Levels:        viper.GetInt("plot.levels"),
			})
			if err != nil {
				return err
			}
			if err := rtp.SavePNG(p, 9*vg.Inch, 4*vg.Inch, out); err != nil {
				return err
			}
		case "summary":
			if err := rtp.Summary(records, beam, out); err != nil {
				return err
			}
		case "fan":
			p, err := rtp.Fan(records, flagPlotScan, field)
			if err != nil {
				return err
			}
			if err := rtp.SavePNG(p, 6*vg.Inch, 6*vg.Inch, out); err != nil {
				return err
			}
		case "power":
			p, err := rtp.LagZeroPower(records, beam, flagSplitFreq, rtp.Mean)
			if err != nil {
				return err
			}
			if err := rtp.SavePNG(p, 9*vg.Inch, 3*vg.Inch, out); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown plot type %q", flagPlotType)
		}

		log.WithFields(log.Fields{
			"type": flagPlotType,
			"file": out,
		}).Info("plot written")
		return nil
	},
}

func init() {
	plotCmd.Flags().StringVarP(&flagPlotType, "type", "t", "rtp",
		"plot type: rtp, summary, fan, power")
	plotCmd.Flags().IntVarP(&flagPlotBeam, "beam", "b", 0, "beam number")
	plotCmd.Flags().StringVar(&flagPlotField, "field", "p_l",
		"gate field: p_l, v, w_l, elv")
	plotCmd.Flags().StringVarP(&flagPlotOut, "output", "o", "", "output PNG path")
	plotCmd.Flags().IntVar(&flagPlotScan, "scan", 1, "scan number for fan plots")
	plotCmd.Flags().Float64Var(&flagSplitFreq, "split-freq", 0,
		"split power series at this frequency [kHz]")
}
