// Command itinctl inspects and edits the stored itinerary collection from
// the command line, using the same configuration as the API server.
package main

import (
	"os"

	"github.com/pkordes/travel-planner/cmd/itinctl/commands"
)

func main() {
	if err := commands.Execute(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}
