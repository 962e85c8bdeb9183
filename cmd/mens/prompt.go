package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

var errNotInteractive = errors.New("not running in a terminal")

// isInteractive reports whether stdin and stdout are both terminals.
func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// confirmAction asks a yes/no question. An aborted prompt counts as no.
func confirmAction(prompt string) (bool, error) {
	if !isInteractive() {
		return false, errNotInteractive
	}

	var ok bool
	err := huh.NewConfirm().
		Title(prompt).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return ok, err
}

// editContent opens a multi-line editor prefilled with initial.
func editContent(title, initial string) (string, error) {
	content := initial
	err := huh.NewText().
		Title(title).
		Description("ctrl+e opens $EDITOR").
		Lines(10).
		Value(&content).
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New("content cannot be empty")
			}
			return nil
		}).
		Run()
	if err != nil {
		return "", err
	}
	return content, nil
}

// readContent resolves note content from args, piped stdin or an editor prompt.
func readContent(args []string, stdin io.Reader, title, initial string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return strings.TrimRight(string(data), "\n"), nil
	}

	return editContent(title, initial)
}

// selectOption shows a single-choice menu and returns the chosen value.
func selectOption(title string, options []huh.Option[string]) (string, error) {
	var choice string
	err := huh.NewSelect[string]().
		Title(title).
		Options(options...).
		Value(&choice).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return "", nil
	}
	return choice, err
}
