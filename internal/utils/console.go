package utils

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// DebugMode enables PrintDebug. QuietMode drops everything except warnings
// and errors.
var (
	DebugMode = false
	QuietMode = false
)

const projectPrefix = "[QSG]"

// Stdout and Stderr receive all console output.
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

var (
	red      = color.New(color.FgRed).SprintFunc()
	green    = color.New(color.FgGreen).SprintFunc()
	yellow   = color.New(color.FgYellow).SprintFunc()
	blueBold = color.New(color.FgBlue, color.Bold).SprintFunc()
	magenta  = color.New(color.FgMagenta).SprintFunc()
	cyan     = color.New(color.FgCyan).SprintFunc()
	gray     = color.New(color.FgWhite).SprintFunc()
	bold     = color.New(color.Bold).SprintFunc()
)

// Status styles, one color per message kind.
func StyleError(msg string) string   { return red(msg) }
func StyleSuccess(msg string) string { return green(msg) }
func StyleWarning(msg string) string { return yellow(msg) }
func StyleHint(msg string) string    { return cyan(msg) }
func StyleNote(msg string) string    { return magenta(msg) }

// StyleInfo formats status labels and dialect names.
func StyleInfo(msg string) string { return magenta(msg) }

func StyleDebug(msg string) string { return gray(msg) }

// StyleCommand formats shell commands or flags.
func StyleCommand(cmd string) string { return gray(cmd) }

// StyleTitle formats section headings in command output.
func StyleTitle(title string) string { return bold(cyan(title)) }

// StyleNumber formats counts and job indices.
func StyleNumber(num interface{}) string {
	return magenta(fmt.Sprintf("%v", num))
}

// StylePath formats file paths.
func StylePath(path string) string { return blueBold(path) }

// StyleName formats node names and config keys.
func StyleName(name string) string { return yellow(name) }

// PrintMessage prints an untagged progress line.
func PrintMessage(format string, a ...interface{}) {
	if QuietMode {
		return
	}
	msg := fmt.Sprintf(format, a...)
	fmt.Fprintf(Stdout, "%s %s\n", projectPrefix, msg)
}

// PrintSuccess prints a [PASS] line.
func PrintSuccess(format string, a ...interface{}) {
	if QuietMode {
		return
	}
	msg := fmt.Sprintf(format, a...)
	tag := StyleSuccess("[PASS]")
	fmt.Fprintf(Stdout, "%s%s %s\n", projectPrefix, tag, msg)
}

// PrintError prints an [ERR] line to Stderr. It ignores QuietMode.
func PrintError(format string, a ...interface{}) {
	msg := fmt.Sprintf(format, a...)
	tag := StyleError("[ERR] ")
	fmt.Fprintf(Stderr, "%s%s %s\n", projectPrefix, tag, msg)
}

// PrintWarning prints a [WARN] line to Stderr. It ignores QuietMode.
func PrintWarning(format string, a ...interface{}) {
	msg := fmt.Sprintf(format, a...)
	tag := StyleWarning("[WARN]")
	fmt.Fprintf(Stderr, "%s%s %s\n", projectPrefix, tag, msg)
}

// PrintHint suggests a next step, usually a command to run.
func PrintHint(format string, a ...interface{}) {
	if QuietMode {
		return
	}
	msg := fmt.Sprintf(format, a...)
	tag := StyleHint("[HINT]")
	fmt.Fprintf(Stdout, "%s%s %s\n", projectPrefix, tag, msg)
}

func PrintNote(format string, a ...interface{}) {
	if QuietMode {
		return
	}
	msg := fmt.Sprintf(format, a...)
	tag := StyleNote("[NOTE]")
	fmt.Fprintf(Stdout, "%s%s %s\n", projectPrefix, tag, msg)
}

// PrintDebug writes to Stderr when DebugMode is set.
func PrintDebug(format string, a ...interface{}) {
	if DebugMode {
		msg := fmt.Sprintf(format, a...)
		tag := StyleDebug("[DBG] ")
		fmt.Fprintf(Stderr, "%s%s %s\n", projectPrefix, tag, msg)
	}
}
