package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/studysmarter/studysmarter/studyservice"
)

func main() {
	// Local development convenience; the file is optional.
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found")
	}

	if err := studyservice.Run(); err != nil {
		os.Exit(1)
	}
}
