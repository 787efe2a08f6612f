package input

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// GetConfirmation asks a yes/no question on buf. Any answer starting with
// y or Y confirms; everything else, including an empty line, declines.
func GetConfirmation(prompt string, buf *bufio.Reader) (bool, error) {
	answer, err := GetString(prompt+" [y/N]", buf)
	if err != nil {
		return false, err
	}
	return strings.HasPrefix(strings.ToLower(answer), "y"), nil
}

// GetString reads one trimmed line from buf. The prompt is written to
// stderr only when stdin is a terminal, so piped answers stay silent.
func GetString(prompt string, buf *bufio.Reader) (string, error) {
	if prompt != "" && interactive() {
		fmt.Fprintf(os.Stderr, "%s: ", prompt)
	}
	line, err := buf.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func interactive() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
