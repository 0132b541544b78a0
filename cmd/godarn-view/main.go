// Command godarn-view opens a window showing the lag-0 power profile of
// one beam of a fitacf file.
package main

import (
	"fmt"
	"os"

	"gioui.org/app"
	"gioui.org/unit"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/superdarn/godarn/superdarn"
)

func main() {
	beam := pflag.IntP("beam", "b", 0, "beam number to display")
	record := pflag.IntP("record", "r", 0, "record index within the beam")
	verbose := pflag.BoolP("verbose", "v", false, "enable debug logging")
	pflag.Parse()

	if pflag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: godarn-view [flags] FILE")
		pflag.PrintDefaults()
		os.Exit(2)
	}
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	records, err := superdarn.ReadFitacf(pflag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	profile, when, err := powerProfile(records, *beam, *record)
	if err != nil {
		log.Fatal(err)
	}

	go func() {
		w := new(app.Window)
		w.Option(app.Title(fmt.Sprintf("godarn beam %d, %s", *beam,
			when.Format("2006-01-02 15:04:05"))))
		w.Option(app.Size(unit.Dp(800), unit.Dp(600)))

		if err := run(w, profile); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}
