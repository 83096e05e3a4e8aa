package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pandeptwidyaop/launchpad/internal/services"
)

var generateToken bool

var hashTokenCmd = &cobra.Command{
	Use:   "hash-token [token]",
	Short: "Print the bcrypt hash to put in auth.token_hash",
	Long: `Print the bcrypt hash of a bridge token for auth.token_hash.

The token is read from the argument, from a prompt, or from stdin.
With --generate a random token is created and printed together with its hash.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHashToken,
}

func init() {
	hashTokenCmd.Flags().BoolVarP(&generateToken, "generate", "g", false, "generate a random token")
}

func runHashToken(cmd *cobra.Command, args []string) error {
	token, err := readToken(args)
	if err != nil {
		return err
	}

	hash, err := services.HashToken(token)
	if err != nil {
		return fmt.Errorf("failed to hash token: %w", err)
	}

	if generateToken {
		fmt.Printf("token:      %s\n", token)
		fmt.Printf("token_hash: %s\n", hash)
		return nil
	}
	fmt.Println(hash)
	return nil
}

func readToken(args []string) (string, error) {
	switch {
	case generateToken:
		return services.GenerateToken()
	case len(args) == 1:
		return args[0], nil
	}

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(os.Stderr, "Token: ")
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", err
		}
		return nonEmpty(string(b))
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", errors.New("no token on stdin")
	}
	return nonEmpty(line)
}

func nonEmpty(token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", errors.New("token must not be empty")
	}
	return token, nil
}
