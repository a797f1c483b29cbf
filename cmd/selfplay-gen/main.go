package main

import (
	"log/slog"

	"selfplay-gen/internal/logging"
)

func main() {
	slog.SetDefault(logging.New())
	Execute()
}
