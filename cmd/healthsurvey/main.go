package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

// version is set at build time via -ldflags
var version = "dev"

func main() {
	args := os.Args[1:]
	command := "wizard"
	if len(args) > 0 && len(args[0]) > 0 && args[0][0] != '-' {
		command, args = args[0], args[1:]
	}

	var err error
	switch command {
	case "wizard":
		err = runWizard(args)
	case "submit":
		err = runSubmit(args, os.Stdout)
	case "plan":
		err = runPlan(args, os.Stdout)
	case "reset":
		err = runReset(args, os.Stdout)
	case "stub":
		err = runStub(args)
	case "version":
		fmt.Printf("healthsurvey %s\n", version)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", command)
		printUsage()
		os.Exit(2)
	}

	if errors.Is(err, pflag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`healthsurvey - health questionnaire with obesity and diabetes risk assessment

Usage:
  healthsurvey [wizard] [flags]      Run the interactive questionnaire
  healthsurvey submit --answers FILE Submit answers from a YAML file and print the report
  healthsurvey plan --session-id ID  Generate a health plan for the report of a resumed session
  healthsurvey reset --session-id ID Empty the report slot of a resumed session
  healthsurvey stub [--addr :8080]   Serve canned responses on both endpoints
  healthsurvey version               Show version

Common flags:
  --config FILE           Load configuration from YAML file
  --env-file FILE         Load HEALTHSURVEY_* variables from a .env file (default .env)
  --api-url URL           Base URL of the prediction service
  --session-engine NAME   Session store engine: memory or sqlite
  --session-path FILE     Session database path (sqlite engine)
  --session-id UUID       Resume a sqlite session; it is kept at exit
  --save-config FILE      Save the effective configuration to YAML file

Run 'healthsurvey <command> --help' for the flags of a command.`)
}
