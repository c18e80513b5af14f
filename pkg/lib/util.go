package lib

import (
	"fmt"
	"strings"

	"github.com/google/shlex"
	"github.com/google/uuid"
)

// NewID generates a UUID version 4 string (RFC 4122)
func NewID() string {
	return uuid.NewString()
}

// ParseCommand builds a Command from the submitted line. When args is empty the line is
// split using shell word rules, so "sh -c 'echo hi'" yields three words.
func ParseCommand(line string, args []string) (Command, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Command{}, ErrInvalidCommand
	}

	if len(args) > 0 {
		all := append([]string{line}, args...)
		return Command{
			Line:    strings.Join(all, " "),
			Command: line,
			Args:    append([]string(nil), args...),
		}, nil
	}

	words, err := shlex.Split(line)
	if err != nil {
		return Command{}, fmt.Errorf("%w: %v", ErrInvalidCommand, err)
	}
	if len(words) == 0 {
		return Command{}, ErrInvalidCommand
	}

	return Command{Line: line, Command: words[0], Args: words[1:]}, nil
}
