// Package main is the entry point for the ksavers CLI.
package main

import (
	"fmt"
	"os"

	"github.com/kolade082/ksavers/cmd/analyze"
	"github.com/kolade082/ksavers/cmd/categorize"
	"github.com/kolade082/ksavers/cmd/history"
	"github.com/kolade082/ksavers/cmd/root"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(analyze.Cmd)
	root.Cmd.AddCommand(categorize.Cmd)
	root.Cmd.AddCommand(history.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
