package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// runScript reads logical key symbols from r, one or more per line separated
// by spaces or commas, and prints the resulting stack. Lines starting with
// '#' are comments.
func runScript(sess *session, r io.Reader, out io.Writer) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		for _, k := range splitKeys(line) {
			sess.press(k, "script")
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	_, err := fmt.Fprintln(out, plainStack(sess.state(), sess.display()))
	return err
}
