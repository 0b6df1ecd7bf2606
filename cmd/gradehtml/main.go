package main

import (
	"fmt"
	"os"
)

// Exit codes. Grading itself never fails the process: a missing or broken
// submission still produces reports and exits 0.
const (
	ExitSuccess = 0
	ExitError   = 1 // Configuration or usage error
)

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitError)
	}
}
