// ABOUTME: Terminal client for the repository search proxy
// ABOUTME: Runs one search and prints the ranked results or the failure message

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	app := newApp(os.Stdout, os.Stderr)

	if err := app.Run(context.Background(), os.Args); err != nil {
		if !errors.Is(err, errSearchFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
