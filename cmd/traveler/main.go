package main

import (
	"os"

	"github.com/njprem/Fit_city_Booking/cmd/traveler/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
