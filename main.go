package main

import (
	"errors"
	"os"

	"github.com/carlmjohnson/versioninfo"

	"github.com/pdok/geojson2csv/logging"
	"github.com/pdok/geojson2csv/processing"

	"github.com/iancoleman/strcase"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

const OVERWRITE string = `overwrite`
const LOGLEVEL string = `logLevel`
const LOGFORMAT string = `logFormat`

const (
	exitFailure = 1
	exitUsage   = 2
)

const usageMessage = "Please specify the filename or filepath of the GeoJSON file to be converted to a CSV file."

func main() {
	app := newApp()
	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Msg("Conversion failed")
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "geojson2csv"
	app.Usage = "Convert a (huge) GeoJSON FeatureCollection to CSV"
	app.ArgsUsage = "<file.geojson>"
	app.Version = versioninfo.Short()

	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:     OVERWRITE,
			Aliases:  []string{"o"},
			Usage:    "Overwrite the target CSV if it exists",
			Required: false,
			EnvVars:  []string{strcase.ToScreamingSnake(OVERWRITE)},
		},
		&cli.StringFlag{
			Name:     LOGLEVEL,
			Aliases:  []string{"l"},
			Usage:    "Log level: debug, info, warn or error",
			Value:    "info",
			Required: false,
			EnvVars:  []string{strcase.ToScreamingSnake(LOGLEVEL)},
		},
		&cli.StringFlag{
			Name:     LOGFORMAT,
			Usage:    "Log format: console or json",
			Value:    logging.FormatConsole,
			Required: false,
			EnvVars:  []string{strcase.ToScreamingSnake(LOGFORMAT)},
		},
	}

	app.Action = func(c *cli.Context) error {
		if err := logging.Setup(c.String(LOGLEVEL), c.String(LOGFORMAT)); err != nil {
			return cli.Exit(err.Error(), exitUsage)
		}
		if c.NArg() == 0 {
			return cli.Exit(usageMessage, exitUsage)
		}
		if c.NArg() > 1 {
			log.Warn().Strs("ignored", c.Args().Tail()).Msg("Only the first filename/path is going to be converted to CSV")
		}

		opts, err := processing.NewOptions()
		if err != nil {
			return err
		}
		opts.Overwrite = c.Bool(OVERWRITE)

		_, err = processing.Convert(c.Args().First(), opts)
		if errors.Is(err, processing.ErrUsage) {
			return cli.Exit(usageMessage, exitUsage)
		}
		if err != nil {
			log.Error().Err(err).Msg("Conversion failed")
			return cli.Exit("", exitFailure)
		}
		return nil
	}

	return app
}
