package main

import (
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/bmtobmp"
	"github.com/urfave/cli/v2"
)

const defaultDB = "bmtobmp.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:  "version, V",
		Usage: "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func main() {
	app := cli.NewApp()

	app.Name = "bmtobmp"
	app.Usage = "BM image to BMP conversion utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"BMTOBMP_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to conversion catalog",
		},
		&cli.BoolFlag{
			Name:  "verbose, v",
			Usage: "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "convert",
			Usage:       "Convert a BM and PAL pair to a BMP file",
			Description: "",
			ArgsUsage:   "FILE.BM FILE.PAL [OUTPUT]",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				bmPath := c.Args().Get(0)
				palPath := c.Args().Get(1)

				base := strings.TrimSuffix(bmPath, filepath.Ext(bmPath))
				if c.NArg() > 2 {
					base = c.Args().Get(2)
				}

				m := bmtobmp.New(nil, newLogger(c))

				if err := m.ConvertFile(bmPath, palPath, base); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "scan",
			Usage:       "Convert every BM file under a directory",
			Description: "",
			ArgsUsage:   "DIRECTORY",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				db, err := bmtobmp.NewConvertDB(c.String("db"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer db.Close()

				m := bmtobmp.New(db, newLogger(c))

				if err := m.Scan(c.Args().First()); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
