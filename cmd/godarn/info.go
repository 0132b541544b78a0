package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/superdarn/godarn/radar"
	"github.com/superdarn/godarn/superdarn"
)

var infoCmd = &cobra.Command{
	Use:   "info FILE",
	Short: "Summarize a DMAP file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := readRecords(args[0])
		if err != nil {
			return err
		}
		return printInfo(cmd, records)
	},
}

func printInfo(cmd *cobra.Command, records []superdarn.Record) error {
	if len(records) == 0 {
		return &superdarn.NoDataError{What: "records"}
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "records:  %d\n", len(records))

	first := records[0]
	if stid, err := first.Int("stid"); err == nil {
		name := fmt.Sprintf("%d", stid)
		if stn, err := radar.Lookup(stid); err == nil {
			name = fmt.Sprintf("%s (%s, stid %d)", stn.Name, stn.Abbrev, stid)
		}
		fmt.Fprintf(out, "station:  %s\n", name)
	}

	start, err := first.Time()
	if err == nil {
		end, err := records[len(records)-1].Time()
		if err != nil {
			end = start
		}
		fmt.Fprintf(out, "span:     %s to %s\n",
			start.Format("2006-01-02 15:04:05"), end.Format("2006-01-02 15:04:05"))
	}

	beams := map[int]bool{}
	cpids := map[int]bool{}
	for _, rec := range records {
		if bm, err := rec.Int("bmnum"); err == nil {
			beams[bm] = true
		}
		if cp, err := rec.Int("cp"); err == nil {
			cpids[cp] = true
		}
	}
	if len(beams) > 0 {
		fmt.Fprintf(out, "beams:    %s\n", joinInts(beams))
	}
	if len(cpids) > 0 {
		fmt.Fprintf(out, "cpid:     %s\n", joinInts(cpids))
	}
	return nil
}

func joinInts(set map[int]bool) string {
	keys := make([]int, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	s := ""
	for i, k := range keys {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("%d", k)
	}
	return s
}
