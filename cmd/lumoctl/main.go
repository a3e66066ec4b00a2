// Command lumoctl runs the storefront chat engine against a local catalog
// seed file, for checking catalog edits before they are published.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
