package utils

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	kerrors "github.com/PolarWolf314/ksdecrypt/internal/errors"
)

// Prompter reads answers to interactive questions. It wraps a single
// buffered reader so consecutive prompts don't lose input.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter returns a Prompter reading from r and writing prompts to w.
func NewPrompter(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(r), out: w}
}

// Line prints prompt and returns the next line with surrounding whitespace
// removed. When the answer is empty, def is returned.
func (p *Prompter) Line(prompt, def string) (string, error) {
	fmt.Fprint(p.out, prompt)

	line, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return def, nil
	}
	return line, nil
}

// Select asks for a number between 1 and count and returns its zero-based
// index. Anything else is ErrInvalidSelection.
func (p *Prompter) Select(prompt string, count int) (int, error) {
	answer, err := p.Line(prompt, "")
	if err != nil {
		return 0, err
	}

	choice, err := strconv.Atoi(answer)
	if err != nil || choice < 1 || choice > count {
		return 0, fmt.Errorf("%q is not between 1 and %d: %w", answer, count, kerrors.ErrInvalidSelection)
	}

	return choice - 1, nil
}

// Confirm asks a yes/no question. Only "y" and "yes" (any case) are yes; an
// empty answer or end of input is no.
func (p *Prompter) Confirm(prompt string) (bool, error) {
	answer, err := p.Line(prompt, "")
	if err != nil {
		return false, err
	}

	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}

// ReadPassphraseLine reads a passphrase from the next input line. It shares
// the Prompter's buffer, so answers before and after it are not lost.
func (p *Prompter) ReadPassphraseLine() ([]byte, error) {
	return ReadPassphraseLine(p.in)
}
