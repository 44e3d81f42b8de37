package main

import (
	"os"

	"github.com/grovetools/jsonlview/cli"
	"github.com/grovetools/jsonlview/cmd"
)

func main() {
	rootCmd := cmd.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		cli.NewErrorHandler(cli.GetOptions(rootCmd).Verbose).Handle(err)
		os.Exit(1)
	}
}
