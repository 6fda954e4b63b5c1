package main

import (
	"fmt"
	"os"

	"github.com/example/kanban/internal/cli"
	"github.com/example/kanban/internal/wire"
)

func main() {
	rootCmd := cli.RootCmd()

	err := rootCmd.Execute()
	wire.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
