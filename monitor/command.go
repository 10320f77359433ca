package monitor

import (
	"strings"
)

// Command is a parsed monitor command with name and arguments.
type Command struct {
	Name string
	Args []string
}

// ParseCommand splits a ':' command line into a command name and arguments.
func ParseCommand(input string) Command {
	input = strings.TrimPrefix(strings.TrimSpace(input), ":")
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return Command{}
	}

	return Command{
		Name: strings.ToLower(parts[0]),
		Args: parts[1:],
	}
}

// IsCommand reports whether an input line is a monitor command rather than
// program text.
func IsCommand(input string) bool {
	return strings.HasPrefix(strings.TrimSpace(input), ":")
}
