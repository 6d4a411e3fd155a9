package main

import (
	"fmt"
	"os"

	"github.com/celestiaorg/zkmsg/cmd/zkmsg/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
