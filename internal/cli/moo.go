package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var mooCmd = &cobra.Command{
	Use:    "moo",
	Short:  "An easter egg",
	Hidden: true,
	Args:   cobra.ArbitraryArgs,
	RunE:   runMoo,
}

func init() {
	rootCmd.AddCommand(mooCmd)
}

const catArt = `
     |\---/|
     | o_o |
      \_^_/
`

func runMoo(cmd *cobra.Command, args []string) error {
	moos := 0
	for _, arg := range args {
		if arg == "moo" {
			moos++
		}
	}

	fmt.Print(catArt)
	switch moos {
	case 0:
		fmt.Println(`    "I can't moo for I'm a cat"`)
	case 1:
		fmt.Println(`    "Okay, fine. Moo."`)
	default:
		fmt.Println(`    "Moooooooooooooooooo!"`)
	}
	return nil
}
