package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Stdin solicits credentials on the terminal. It implements ports.Prompter.
// Reads block without timeout; a closed input stream means the credential is
// unavailable.
type Stdin struct {
	in  *bufio.Reader
	out io.Writer
}

// NewStdin creates a prompter bound to os.Stdin and os.Stderr.
func NewStdin() *Stdin {
	return &Stdin{in: bufio.NewReader(os.Stdin), out: os.Stderr}
}

// New creates a prompter over arbitrary streams, for tests.
func New(in io.Reader, out io.Writer) *Stdin {
	return &Stdin{in: bufio.NewReader(in), out: out}
}

// Email asks for the account email address.
func (p *Stdin) Email(ctx context.Context) (string, error) {
	line, err := p.ask(ctx, "Enter your account email address: ")
	if err != nil {
		return "", err
	}
	return line, nil
}

// OTP asks for the one-time passcode. Returns an empty string without error
// when input is closed, e.g. running non-interactively; the caller treats
// that as a fatal authentication failure.
func (p *Stdin) OTP(ctx context.Context) (string, error) {
	line, err := p.ask(ctx, "One-time passcode from your email: ")
	if errors.Is(err, io.EOF) {
		return "", nil
	}
	return line, err
}

func (p *Stdin) ask(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(p.out, prompt)
	line, err := p.in.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
