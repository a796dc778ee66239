package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/tartampluch/go-addressbook/internal/config"
	"golang.org/x/term"
)

// Console is the line-oriented boundary between the App and the user.
type Console interface {
	PrintMessage(msg string)
	ReadLine() (string, error)
}

// StdConsole reads lines from in and writes messages to out.
// ReadLine returns io.EOF once the input is exhausted.
type StdConsole struct {
	scanner *bufio.Scanner
	out     io.Writer
	prompt  string
}

// NewStdConsole returns a console over in/out. An empty prompt disables it.
func NewStdConsole(in io.Reader, out io.Writer, prompt string) *StdConsole {
	return &StdConsole{
		scanner: bufio.NewScanner(in),
		out:     out,
		prompt:  prompt,
	}
}

func (c *StdConsole) PrintMessage(msg string) {
	_, _ = fmt.Fprintln(c.out, msg)
}

func (c *StdConsole) ReadLine() (string, error) {
	if c.prompt != "" {
		_, _ = fmt.Fprint(c.out, c.prompt)
	}
	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return "", fmt.Errorf("%s: %w", config.ErrConsoleRead, err)
		}
		return "", io.EOF
	}
	return c.scanner.Text(), nil
}

// IsTerminal reports whether f is attached to an interactive terminal.
// Prompts are only shown in that case so piped sessions stay clean.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
