package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/typedisk/cmd/typedisk"
	"github.com/arthur-debert/typedisk/internal/version"
)

func main() {
	rootCmd := typedisk.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "TYPEDISK",
		Section: "1",
		Source:  "typedisk " + version.Version,
		Manual:  "typedisk manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
