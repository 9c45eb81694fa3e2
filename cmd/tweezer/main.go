// Command tweezer compiles HCL move plans against an AOD architecture,
// checks the resulting schedule and exports it as YAML.
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
