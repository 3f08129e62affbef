package main

import (
	"pantry-timeclock/cmd"

	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()

	cmd.Execute()
}
