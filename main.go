package main

import (
	"os"

	"github.com/pvemon/check-pve/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		// 4 keeps usage errors outside the 0-3 severity scale.
		os.Exit(4)
	}
}
