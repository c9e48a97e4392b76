package main

import (
	"fmt"
	"os"

	"github.com/sandeepkv93/lifeboost/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "lifeboost failed: %v\n", err)
		os.Exit(1)
	}
}
