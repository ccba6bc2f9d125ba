package imgfscli

import (
	"fmt"
	"io"
)

// Run is imgfscmd's entry point, mirroring the ticket CLI's flat
// name->Command dispatch table. Returns the process exit code.
func Run(out, errOut io.Writer, args []string) int {
	commands := allCommands()

	commandMap := make(map[string]*Command, len(commands))
	for _, cmd := range commands {
		commandMap[cmd.Name()] = cmd
	}

	cmdIO := NewIO(out, errOut)

	if len(args) < 2 {
		printUsage(out, commands)
		return 1
	}

	name := args[1]

	if name == "help" || name == "-h" || name == "--help" {
		printUsage(out, commands)
		return 0
	}

	cmd, ok := commandMap[name]
	if !ok {
		fprintln(errOut, "error: unknown command:", name)
		printUsage(errOut, commands)

		return 1
	}

	return cmd.Run(cmdIO, args[2:])
}

// allCommands returns every imgfscmd subcommand in display order.
func allCommands() []*Command {
	return []*Command{
		ListCmd(),
		CreateCmd(),
		ReadCmd(),
		InsertCmd(),
		DeleteCmd(),
	}
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

func printUsage(w io.Writer, commands []*Command) {
	fprintln(w, "imgfscmd - single-file JPEG image database")
	fprintln(w)
	fprintln(w, "Usage: imgfscmd <cmd> [args...]")
	fprintln(w)
	fprintln(w, "Commands:")

	for _, cmd := range commands {
		fprintln(w, cmd.HelpLine())
	}

	fprintln(w, "  help                                     Show this help")
}
