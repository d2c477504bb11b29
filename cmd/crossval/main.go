// Command crossval splits data for n-fold cross validation, cross validates
// least-squares regressions on synthetic data, and scores binary predictions.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
