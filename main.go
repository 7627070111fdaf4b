package main

import (
	"os"

	"github.com/msaldanha/nulldev/commands"
)

func main() {
	if er := commands.Execute(); er != nil {
		os.Exit(1)
	}
}
