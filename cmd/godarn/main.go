// Command godarn reads, validates, converts and plots SuperDARN DMAP
// files.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
