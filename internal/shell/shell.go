// Package shell implements the interactive prompt of vocabbuilder. Each
// input line is split like a POSIX shell would split it and handed to an
// executor, which runs it as a vocabbuilder command.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/kballard/go-shellquote"
)

// Executor runs one command line given as arguments
type Executor func(ctx context.Context, args []string) error

const defaultPrompt = "vocabbuilder> "

const helpText = `Type commands without the "vocabbuilder" prefix, e.g.

  generate Family --level B1
  quiz --mode vi-en
  ielts part1

"exit" or Ctrl-D leaves the shell.`

// Shell reads command lines and runs them until the input ends
type Shell struct {
	in     *bufio.Reader
	out    io.Writer
	exec   Executor
	prompt func() string
}

// Option configures a Shell
type Option func(*Shell)

// WithPrompt sets a function producing the prompt shown before each line
func WithPrompt(prompt func() string) Option {
	return func(s *Shell) { s.prompt = prompt }
}

// New creates a shell. Commands run by exec that read input must read from
// the same in, so that no buffered input is lost between commands.
func New(in *bufio.Reader, out io.Writer, exec Executor, opts ...Option) *Shell {
	s := &Shell{
		in:     in,
		out:    out,
		exec:   exec,
		prompt: func() string { return defaultPrompt },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run reads and executes lines until exit, the end of the input or until
// ctx is cancelled. Command errors are printed, not returned.
func (s *Shell) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		fmt.Fprint(s.out, s.prompt())
		line, readErr := s.in.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return readErr
		}
		if readErr == io.EOF && strings.TrimSpace(line) == "" {
			fmt.Fprintln(s.out)
			return nil
		}

		quit, err := s.Execute(ctx, line)
		if err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
		}
		if quit || readErr == io.EOF {
			return nil
		}
	}
}

// Execute runs a single input line and reports whether the shell should
// exit
func (s *Shell) Execute(ctx context.Context, line string) (bool, error) {
	args, err := Split(line)
	if err != nil {
		return false, err
	}
	if len(args) == 0 {
		return false, nil
	}

	switch strings.ToLower(args[0]) {
	case "exit", "quit", "q":
		return true, nil
	case "help", "?":
		fmt.Fprintln(s.out, helpText)
		fmt.Fprintln(s.out)
		return false, s.exec(ctx, append([]string{"help"}, args[1:]...))
	case "vocabbuilder":
		// Pasted full command lines
		args = args[1:]
		if len(args) == 0 {
			return false, nil
		}
	}
	return false, s.exec(ctx, args)
}

// Split splits line into arguments, honouring quotes and escapes
func Split(line string) ([]string, error) {
	args, err := shellquote.Split(line)
	if err != nil {
		return nil, fmt.Errorf("could not parse command line: %w", err)
	}
	return args, nil
}
