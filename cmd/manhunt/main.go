package main

import (
	"github.com/manhunt-game/manhunt-go/internal/cli"
)

func main() {
	cli.Execute()
}
