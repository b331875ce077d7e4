// Command mediasensectl administers a mediasense deployment: index setup,
// one-off embeddings, offline ranking and document ingestion.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
