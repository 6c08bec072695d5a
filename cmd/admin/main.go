// Command admin manages the admin flag on user accounts.
package main

import (
	"fmt"
	"os"
)

func main() {
	cmd := newRootCommand(newCommandContext(nil))
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
