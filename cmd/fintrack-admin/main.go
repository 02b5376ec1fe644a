// Command fintrack-admin runs maintenance tasks against the fintrack
// database: migrations, the category catalog, reports, account deletion,
// development tokens and export reconciliation.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
