package main

import (
	"context"
	"errors"
	"io/fs"

	"orderflow/cmd"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

func main() {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	if err := cmd.NewRootCommand().ExecuteContext(context.Background()); err != nil {
		log.Fatal(err)
	}
}
