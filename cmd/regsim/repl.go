package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
	"golang.org/x/term"

	"github.com/ezrec/regsim/emulator"
	"github.com/ezrec/regsim/monitor"
)

// replCmd represents the repl command
var replCmd = &cobra.Command{
	Use:   "repl [file]",
	Short: "Interactive monitor",
	Long: `Repl starts the interactive monitor. Program lines typed at the
prompt are added to the edit buffer; lines starting with ':' are commands.
Type ':help' for the command list.
`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		fd := int(os.Stdin.Fd())
		if !term.IsTerminal(fd) {
			return serve(cmd.OutOrStdout(), monitor.NewScanner(os.Stdin), args)
		}

		oldState, err := term.MakeRaw(fd)
		if err != nil {
			return
		}
		restore := func() { _ = term.Restore(fd, oldState) }
		atexit.Register(restore)
		defer restore()

		screen := struct {
			io.Reader
			io.Writer
		}{os.Stdin, os.Stdout}
		terminal := term.NewTerminal(screen, "regsim> ")

		return serve(terminal, terminal, args)
	},
}

// serve runs a monitor on a fresh emulator, optionally loading a file first.
func serve(out io.Writer, in monitor.LineReader, args []string) (err error) {
	mon := monitor.NewMonitor(emulator.NewEmulator(), out)
	mon.Verbose = verbose
	mon.Assemble = assemble

	if len(args) == 1 {
		err = mon.Load(args[0])
		if err != nil {
			return
		}
	}

	return mon.Serve(in)
}

func init() {
	rootCmd.AddCommand(replCmd)
}
