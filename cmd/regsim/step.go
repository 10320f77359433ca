package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ezrec/regsim/emulator"
)

// stepCmd represents the step command
var stepCmd = &cobra.Command{
	Use:   "step file",
	Short: "Trace a program one line at a time",
	Long: `Step executes the program one line at a time, printing each line
followed by the registers after it.
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prog, err := loadProgram(args[0])
		if err != nil {
			return err
		}

		emu := emulator.NewEmulator()
		emu.Verbose = verbose
		out := cmd.OutOrStdout()

		for {
			index := emu.LineIndex()
			outcome, err := emu.Step(prog.lines)
			if err != nil {
				return prog.describe(err)
			}
			if outcome == emulator.STEP_COMPLETE {
				return nil
			}
			fmt.Fprintf(out, "%04d: %v\n", index, emu.Program[index])
			fmt.Fprint(out, emu.Snapshot())
		}
	},
}

func init() {
	rootCmd.AddCommand(stepCmd)
}
