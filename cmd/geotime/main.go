package main

import (
	"fmt"
	"os"

	"github.com/chris-shaw-2011/geo-time-tracker/internal/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
