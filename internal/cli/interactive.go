package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/vocabbuilder/internal/session"
	"codeberg.org/snonux/vocabbuilder/internal/shell"
)

const welcome = `vocabbuilder - học từ vựng tiếng Anh và tiếng Trung
Type "help" for the list of commands, "exit" to leave.`

func newShellCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive shell (default without a command)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd, rt)
		},
	}
}

// runShell runs commands read from the command's input against one shared
// App, so that generated questions and answers stay available between
// commands.
func runShell(cmd *cobra.Command, rt *runtime) error {
	if rt.inShell {
		return errors.New("already in the interactive shell")
	}

	return rt.run(func(app *App) error {
		in := bufio.NewReader(cmd.InOrStdin())
		out := cmd.OutOrStdout()

		exec := func(ctx context.Context, args []string) error {
			child := createRootCommand(rt.child())
			child.SetArgs(args)
			child.SetIn(in)
			child.SetOut(out)
			child.SetErr(cmd.ErrOrStderr())
			return child.ExecuteContext(ctx)
		}

		fmt.Fprintln(out, welcome)
		sh := shell.New(in, out, exec, shell.WithPrompt(func() string {
			return prompt(app.Processor.State())
		}))
		return sh.Run(cmd.Context())
	})
}

// prompt shows the active topic and level
func prompt(state session.State) string {
	if set, ok := state.ActiveSet(); ok {
		return fmt.Sprintf("vocabbuilder (%s, %s)> ", set.Topic, set.Level)
	}
	return "vocabbuilder> "
}
