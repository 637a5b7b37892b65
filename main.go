// The main package for the govbills executable.
package main

import (
	"github.com/JakeFAU/govbills-crawler/cmd"
)

// main defers all execution to the Cobra CLI.
func main() {
	cmd.Execute()
}
