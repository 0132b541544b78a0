package main

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/superdarn/godarn/superdarn"
)

var (
	flagVerbose bool
	flagFormat  string
)

var rootCmd = &cobra.Command{
	Use:   "godarn",
	Short: "SuperDARN DMAP file tool",
	Long: `godarn reads SuperDARN DMAP files (fitacf, rawacf, iqdat, grid, map),
validates them against their format schema and renders plots and reports.`,
	SilenceUsage: true,
	PersistentPreRun: func(*cobra.Command, []string) {
		if flagVerbose {
			log.SetLevel(log.DebugLevel)
		}
		loadConfig()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false,
		"enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "fitacf",
		"file format: fitacf, rawacf, iqdat, grid, map, dmap")

	rootCmd.AddCommand(infoCmd, jsonCmd, plotCmd, reportCmd, convertCmd)
}

// loadConfig reads godarn.toml from /etc/godarn or the working
// directory. Absent file means defaults; flags set on the command line
// win over the file.
func loadConfig() {
	viper.SetConfigName("godarn")
	viper.SetConfigType("toml")
	viper.AddConfigPath("/etc/godarn")
	viper.AddConfigPath(".")

	viper.SetDefault("plot.beam", 0)
	viper.SetDefault("plot.field", "p_l")
	viper.SetDefault("plot.levels", 50)

	if err := viper.ReadInConfig(); err != nil {
		log.WithError(err).Debug("no config file, using defaults")
		return
	}
	log.WithField("file", viper.ConfigFileUsed()).Debug("config loaded")
	if viper.GetBool("verbose") {
		log.SetLevel(log.DebugLevel)
	}
}

// readRecords loads a file with the schema picked by --format.
func readRecords(path string) ([]superdarn.Record, error) {
	switch strings.ToLower(flagFormat) {
	case "fitacf":
		return superdarn.ReadFitacf(path)
	case "rawacf":
		return superdarn.ReadRawacf(path)
	case "iqdat":
		return superdarn.ReadIqdat(path)
	case "grid":
		return superdarn.ReadGrid(path)
	case "map":
		return superdarn.ReadMap(path)
	case "dmap":
		return superdarn.ReadDmap(path)
	default:
		return nil, fmt.Errorf("unknown format %q", flagFormat)
	}
}
