// Command ant runs Langton's ant for a number of steps and prints the
// position and heading after every step.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"antflock/internal/app"
	"antflock/internal/core"
	"antflock/internal/sims/ant"

	log "github.com/sirupsen/logrus"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		log.Fatal(err)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("ant", flag.ContinueOnError)
	steps := fs.Int("steps", -1, "number of steps (prompted on stdin when omitted)")
	quiet := fs.Bool("quiet", false, "suppress the per-step trace")
	level := fs.String("log-level", "info", "log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := app.SetupLogging(*level); err != nil {
		return err
	}

	explicit := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "steps" {
			explicit = true
		}
	})
	n := *steps
	if !explicit {
		var err error
		if n, err = promptSteps(stdin, stdout); err != nil {
			return err
		}
	}

	out := bufio.NewWriter(stdout)
	defer out.Flush()

	var observe ant.TraceFunc
	if !*quiet {
		observe = func(tr ant.Trace) { fmt.Fprintln(out, tr) }
	}
	a := ant.New(ant.DefaultConfig().Width, ant.DefaultConfig().Height)
	a.Observe(observe)
	grid, err := a.Run(n)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"steps":    n,
		"black":    grid.BlackCount(),
		"visited":  len(grid),
		"position": fmt.Sprintf("(%d,%d)", a.Position().X, a.Position().Y),
		"heading":  a.Heading(),
	}).Info("ant finished")
	return nil
}

func promptSteps(stdin io.Reader, stdout io.Writer) (int, error) {
	fmt.Fprint(stdout, "Enter number of steps: ")
	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("read steps: %w", err)
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, fmt.Errorf("steps %q is not an integer: %w", strings.TrimSpace(line), core.ErrInvalidArgument)
	}
	return n, nil
}
