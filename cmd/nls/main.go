package main

import (
	"os"

	"github.com/joho/godotenv"

	nls "github.com/CovidWA/normalized-location-schema/golang"
)

func main() {
	// .env is optional, the environment may already be set
	if err := godotenv.Load(); err != nil {
		nls.Log.Debugf("No .env file loaded: %v", err)
	}

	nls.Run(os.Args)
}
