// Command contactsctl runs maintenance tasks against the contact store.
package main

import (
	"github.com/spf13/cobra"
)

func main() {
	cobra.CheckErr(newRootCmd().Execute())
}
