package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// AuthCmd is the parent command for auth operations
var AuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage authentication",
	Long:  `Commands for logging in, registering, and inspecting the current session.`,
}

func init() {
	AuthCmd.AddCommand(loginCmd)
	AuthCmd.AddCommand(registerCmd)
	AuthCmd.AddCommand(logoutCmd)
	AuthCmd.AddCommand(statusCmd)
	AuthCmd.AddCommand(exportCmd)
}

var errEphemeralToken = errors.New("DALEEL_TOKEN is set; unset it to log in with a stored session")

// prompt asks for a value unless prompting is disabled.
func prompt(label string, secret, nonInteractive bool) (string, error) {
	if nonInteractive {
		return "", fmt.Errorf("%s is required (interactive prompts are disabled)", strings.ToLower(label))
	}
	input := pterm.DefaultInteractiveTextInput
	if secret {
		input = *input.WithMask("*")
	}
	value, err := input.Show(label)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(label), err)
	}
	return strings.TrimSpace(value), nil
}
