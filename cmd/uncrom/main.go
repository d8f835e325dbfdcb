// uncrom extracts the segments of CROM files.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"
)

var (
	configFileFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
	outDirFlag = &cli.StringFlag{
		Name:    "outdir",
		Aliases: []string{"o"},
		Usage:   "Directory for extracted segments (default: next to each input file)",
	}
	suffixFlag = &cli.StringFlag{
		Name:  "suffix",
		Usage: "File name suffix of extracted segments",
		Value: defaultConfig.Suffix,
	}
	jobsFlag = &cli.IntFlag{
		Name:    "jobs",
		Aliases: []string{"j"},
		Usage:   "Number of input files processed concurrently (0 = number of CPUs)",
		Value:   defaultConfig.Jobs,
	}
	keepGoingFlag = &cli.BoolFlag{
		Name:    "keep-going",
		Aliases: []string{"k"},
		Usage:   "Skip segments that fail to decode instead of stopping",
	}
	lenientFlag = &cli.BoolFlag{
		Name:  "lenient",
		Usage: "Accept Huffman tables that oversubscribe the code space",
	}
	verbosityFlag = &cli.StringFlag{
		Name:  "verbosity",
		Usage: "Log level: debug, info, warn, error",
		Value: defaultConfig.Verbosity,
	}
	logFileFlag = &cli.StringFlag{
		Name:  "log.file",
		Usage: "Write logs to a rotated file instead of stderr",
	}
)

// uncrom holds the state shared by all commands of one run.
type uncrom struct {
	cfg      *Config
	log      *slog.Logger
	closeLog func() error
}

func newApp() *cli.App {
	u := new(uncrom)

	app := cli.NewApp()
	app.Name = "uncrom"
	app.Usage = "extract the segments of CROM files"
	app.ArgsUsage = "FILE..."
	app.Flags = []cli.Flag{
		configFileFlag,
		outDirFlag,
		suffixFlag,
		jobsFlag,
		keepGoingFlag,
		lenientFlag,
		verbosityFlag,
		logFileFlag,
	}
	app.Before = u.setup
	app.After = u.teardown
	app.Action = u.extract
	app.Commands = []*cli.Command{
		{
			Name:      "info",
			Usage:     "Decode files and print a table of their segments",
			ArgsUsage: "FILE...",
			Action:    u.info,
		},
		{
			Name:   "dumpconfig",
			Usage:  "Print the effective configuration as TOML",
			Action: u.dumpConfig,
		},
	}

	return app
}

func (u *uncrom) setup(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	u.cfg = cfg

	u.log, u.closeLog, err = newLogger(cfg)

	return err
}

func (u *uncrom) teardown(*cli.Context) error {
	if u.closeLog == nil {
		return nil
	}

	return u.closeLog()
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
