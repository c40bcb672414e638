package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const continuePrompt = "Press Enter to continue (other key to cancel): "

// promptContinue shows prompt and reads a single line from in.
// Only an empty answer confirms; any other answer, or no answer at all, cancels.
func promptContinue(in io.Reader, out io.Writer, prompt string) bool {
	_, _ = fmt.Fprint(out, prompt)

	reader := bufio.NewReader(in)
	response, err := reader.ReadString('\n')
	if err != nil && response == "" {
		return false
	}
	return strings.TrimSpace(strings.ToLower(response)) == ""
}
