package utils

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/awnumar/memguard"
)

// ReadPassphraseLine reads a single line from r and returns it without the
// trailing newline. An empty line is a valid (empty) passphrase, but an empty
// stream is an error.
func ReadPassphraseLine(r io.Reader) ([]byte, error) {
	reader := bufio.NewReader(r)

	line, err := reader.ReadBytes('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		memguard.WipeBytes(line)
		return nil, fmt.Errorf("failed to read passphrase: %w", err)
	}
	if len(line) == 0 && errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("no passphrase provided on stdin")
	}

	n := len(line)
	if n > 0 && line[n-1] == '\n' {
		n--
	}
	if n > 0 && line[n-1] == '\r' {
		n--
	}

	passphrase := make([]byte, n)
	copy(passphrase, line[:n])
	memguard.WipeBytes(line)

	return passphrase, nil
}
