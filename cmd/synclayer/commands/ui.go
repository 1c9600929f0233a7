package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

var (
	successMark = color.New(color.FgGreen).Sprint("✓")
	errorMark   = color.New(color.FgRed).Sprint("✗")
	warnMark    = color.New(color.FgYellow).Sprint("⚠")
	highlight   = color.New(color.FgCyan, color.Bold)
)

// startSpinner starts a spinner on stderr unless verbose output would
// interleave with it. The cleanup func stops it and prints FinalMSG.
func startSpinner(message string) (*spinner.Spinner, func()) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + message
	_ = s.Color("cyan")

	quiet := !verbose && !debug
	if quiet {
		s.Start()
	}
	return s, func() {
		if quiet {
			s.Stop()
			return
		}
		if s.FinalMSG != "" {
			fmt.Fprint(os.Stderr, s.FinalMSG)
		}
	}
}

func printError(err error) {
	fmt.Fprintln(os.Stderr, errorMark+" "+err.Error())
}
