package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/arthur-debert/typedisk/cmd/typedisk"
	"github.com/arthur-debert/typedisk/pkg/errors"
	"github.com/arthur-debert/typedisk/pkg/ui/styles"
)

func main() {
	rootCmd := typedisk.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		st, serr := styles.New(os.Stderr)
		msg := fmt.Sprintf("Error: %v", err)
		if serr == nil {
			msg = st.Render("Error", msg)
		}
		fmt.Fprintln(os.Stderr, msg)

		// Structured details (path, attempts, ...) go below the message
		details := errors.GetErrorDetails(err)
		keys := make([]string, 0, len(details))
		for key := range details {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Fprintf(os.Stderr, "  %s: %v\n", key, details[key])
		}
		os.Exit(1)
	}
}
