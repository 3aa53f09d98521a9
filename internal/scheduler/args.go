package scheduler

import (
	"strings"

	"github.com/mattn/go-shellwords"
)

// HasFlag reports whether the qsub argument string already contains flag
// as a standalone token. Arguments the tokenizer cannot fully consume
// (unbalanced quotes, or an unquoted ; | & < > where parsing stops) fall
// back to a whitespace split of the whole string.
func HasFlag(args string, flag string) bool {
	if strings.TrimSpace(args) == "" {
		return false
	}
	parser := shellwords.NewParser()
	tokens, err := parser.Parse(args)
	if err != nil || parser.Position >= 0 {
		return containsToken(strings.Fields(args), flag)
	}
	return containsToken(tokens, flag)
}

func containsToken(tokens []string, flag string) bool {
	for _, tok := range tokens {
		if tok == flag {
			return true
		}
	}
	return false
}

// redirectFlags returns the engine's -o/-e flags for batchScript, omitting
// any flag the caller already set in qsubArgs.
func redirectFlags(qsubArgs string, batchScript string) (stdout string, stderr string) {
	if !HasFlag(qsubArgs, "-o") {
		stdout = "-o " + batchScript + ".o"
	}
	if !HasFlag(qsubArgs, "-e") {
		stderr = "-e " + batchScript + ".e"
	}
	return stdout, stderr
}
