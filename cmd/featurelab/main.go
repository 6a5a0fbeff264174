// Package main provides the featurelab CLI: feature table builds for the
// late-payment risk model and a scheduled scoring server.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
