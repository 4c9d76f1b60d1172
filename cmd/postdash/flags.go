// ABOUTME: CLI flag parsing using pflag; flags are bound over config file and env
// ABOUTME: Supports --config, --db, --base-url, --debug, --keys, --version

package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

type cliArgs struct {
	configFile string
	version    bool
	keys       bool
	flags      *pflag.FlagSet
}

func parseFlags(argv []string) (cliArgs, error) {
	var args cliArgs

	fs := pflag.NewFlagSet("postdash", pflag.ContinueOnError)
	fs.StringVar(&args.configFile, "config", "", "Config file (default ~/.postdash/config.yaml)")
	fs.String("db", "", "SQLite database holding followed accounts")
	fs.String("base-url", "", "Base URL of the status server")
	fs.Bool("debug", false, "Log at debug level")
	fs.BoolVar(&args.keys, "keys", false, "Print key bindings and exit")
	fs.BoolVar(&args.version, "version", false, "Show version and exit")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: postdash [flags]\n\n%s", fs.FlagUsages())
	}

	if err := fs.Parse(argv); err != nil {
		return cliArgs{}, err
	}
	if fs.NArg() > 0 {
		return cliArgs{}, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}
	args.flags = fs
	return args, nil
}
