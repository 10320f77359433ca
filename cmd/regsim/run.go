package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ezrec/regsim/emulator"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run file",
	Short: "Run a program and display the registers",
	Long: `Run executes every line of the program in order and prints the
registers. Execution stops at the first failing line; the registers then
show the effect of the lines before it.

Use '-' to read the program from standard input.
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prog, err := loadProgram(args[0])
		if err != nil {
			return err
		}

		emu := emulator.NewEmulator()
		emu.Verbose = verbose

		err = emu.Run(prog.lines)
		fmt.Fprint(cmd.OutOrStdout(), emu.Snapshot())

		return prog.describe(err)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
