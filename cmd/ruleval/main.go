// Command ruleval validates documents against rule set files.
//
// Usage:
//
//	ruleval check -rules signup.yaml -input payload.json
//	ruleval lint -rules signup.yaml
//	ruleval serve -rules ./rules -addr :8080
//
// Defaults come from RULEVAL_* environment variables (see pkg/config).
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// Version is set at build time.
var Version = "dev"

const (
	exitOK = iota
	exitInvalid
	exitUsage
	exitRuntime
)

const usage = `Usage: ruleval <command> [flags]

Commands:
  check    validate a JSON document against a rule set
  lint     report unknown rule names in a rule set
  serve    serve validation over HTTP
  version  print the version

Run "ruleval <command> -h" for command flags.
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return exitUsage
	}

	env, err := loadEnv(stderr)
	if err != nil {
		fmt.Fprintf(stderr, "configuration error: %v\n", err)
		return exitUsage
	}

	switch args[0] {
	case "check":
		return runCheck(ctx, env, args[1:], stdin, stdout)
	case "lint":
		return runLint(ctx, env, args[1:], stdout)
	case "serve":
		return runServe(ctx, env, args[1:])
	case "version":
		fmt.Fprintf(stdout, "ruleval %s\n", Version)
		return exitOK
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return exitOK
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return exitUsage
	}
}
