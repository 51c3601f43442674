package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/deploymenttheory/go-dmcrypt/internal/config"
	"github.com/deploymenttheory/go-dmcrypt/pkg/app"
)

var errNoEmail = app.NewError(app.ErrCodeInvalidInput,
	fmt.Sprintf("email is required: pass --email or set %s_EMAIL", config.EnvPrefix), nil)

// promptEmail reads the account email interactively when in is a terminal
func promptEmail(in *os.File, out io.Writer) (string, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return "", errNoEmail
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return "", fmt.Errorf("failed to prepare terminal: %w", err)
	}
	defer term.Restore(fd, oldState)

	t := term.NewTerminal(struct {
		io.Reader
		io.Writer
	}{in, out}, "Account email: ")

	line, err := t.ReadLine()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", errNoEmail
		}
		return "", fmt.Errorf("failed to read email: %w", err)
	}

	email := strings.TrimSpace(line)
	if email == "" {
		return "", errNoEmail
	}
	return email, nil
}
