package keys

import (
	"fmt"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github/chapool/go-near-tools/internal/util/command"
	"golang.org/x/term"
)

func New() *cobra.Command {
	return command.NewSubcommandGroup("keys",
		newGenerate(),
		newInspect(),
		newEncrypt(),
	)
}

// promptPassword reads a password from the terminal without echoing it.
func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)

	passwordBytes, err := term.ReadPassword(syscall.Stdin)
	if err != nil {
		return "", errors.Wrap(err, "failed to read password from terminal")
	}

	fmt.Println()

	return string(passwordBytes), nil
}
