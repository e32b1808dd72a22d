package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	cli "github.com/urfave/cli/v2"

	"github.com/yeqown/flightdb"
	"github.com/yeqown/flightdb/console"
)

// flightctl manages the flight records kept in a flight data file.
// Usage:
// $ flightctl [global flags]                      interactive menu
// $ flightctl [global flags] sub-command [args...]
// It has sub-commands:
// - list:   flightctl list [--markdown]
// - book:   flightctl book number count
// - status: flightctl status number
// - update: flightctl update number destination seats
// - delete: flightctl delete number
//
// Global flags:
// - data: path to the flight data file, default is ./flight_data.txt
// - skip-malformed: keep loading after a malformed line
// - verbose: print debug logs to stderr

func main() {
	// .env is optional, it only provides defaults for the flags' env vars.
	_ = godotenv.Load()

	app := newCliApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "flightctl failed: %v\n", err)
		os.Exit(1)
	}
}

func newCliApp() *cli.App {
	app := cli.NewApp()
	app.Name = "flightctl"
	app.Usage = "flight inventory record manager"
	app.Version = "0.0.1"
	app.Commands = []*cli.Command{
		newListCommand(),
		newBookCommand(),
		newStatusCommand(),
		newUpdateCommand(),
		newDeleteCommand(),
	}
	app.Before = func(c *cli.Context) error {
		logger, err := flightdb.NewLogger(c.Bool("verbose"))
		if err != nil {
			return errors.Wrap(err, "build logger")
		}

		policy := flightdb.StopAtMalformed
		if c.Bool("skip-malformed") {
			policy = flightdb.SkipMalformed
		}

		m := flightdb.Open(c.String("data"),
			flightdb.WithLogger(logger),
			flightdb.WithMalformedPolicy(policy),
		)
		c.Context = contextWithLogger(contextWithManager(c.Context, m), logger)
		return nil
	}
	app.After = func(c *cli.Context) error {
		if logger := loggerFromContext(c.Context); logger != nil {
			_ = logger.Sync()
		}
		return nil
	}
	app.Action = func(c *cli.Context) error {
		m := managerFromContext(c.Context)
		return console.NewSession(m, os.Stdin, os.Stdout).Run()
	}
	// global flags
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "data",
			Aliases: []string{"d"},
			Usage:   "path to the flight data file",
			Value:   "flight_data.txt",
			EnvVars: []string{"FLIGHTCTL_DATA"},
		},
		&cli.BoolFlag{
			Name:    "skip-malformed",
			Usage:   "skip malformed lines of the data file instead of stopping at the first one",
			EnvVars: []string{"FLIGHTCTL_SKIP_MALFORMED"},
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "print debug logs",
		},
	}

	return app
}

func newListCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "list all flights",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "markdown",
				Usage: "render the table as markdown",
			},
		},
		Action: func(c *cli.Context) error {
			m, err := loadedManager(c)
			if err != nil {
				return err
			}

			format := console.ASCII
			if c.Bool("markdown") {
				format = console.Markdown
			}
			console.RenderFlights(c.App.Writer, m.Flights(), format)
			return nil
		},
	}
}

func newBookCommand() *cli.Command {
	return &cli.Command{
		Name:      "book",
		Usage:     "book tickets on a flight",
		ArgsUsage: "number count",
		Action: func(c *cli.Context) error {
			args, err := intArgs(c, "number", "count")
			if err != nil {
				return err
			}
			m, err := loadedManager(c)
			if err != nil {
				return err
			}

			if err = m.Book(args[0], args[1]); err != nil {
				return err
			}
			if err = m.Save(); err != nil {
				return err
			}

			fmt.Fprintln(c.App.Writer, "Ticket(s) booked successfully.")
			return nil
		},
	}
}

func newStatusCommand() *cli.Command {
	return &cli.Command{
		Name:      "status",
		Usage:     "show the available seats of a flight",
		ArgsUsage: "number",
		Action: func(c *cli.Context) error {
			args, err := intArgs(c, "number")
			if err != nil {
				return err
			}
			m, err := loadedManager(c)
			if err != nil {
				return err
			}

			seats, err := m.Status(args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(c.App.Writer, "Flight %d - Available Seats: %d\n", args[0], seats)
			return nil
		},
	}
}

func newUpdateCommand() *cli.Command {
	return &cli.Command{
		Name:      "update",
		Usage:     "set the destination and seats of a flight, deleted flights become available again",
		ArgsUsage: "number destination seats",
		Action: func(c *cli.Context) error {
			if c.NArg() != 3 {
				return errors.Errorf("want 3 arguments, got %d", c.NArg())
			}
			number, err := parseIntArg(c.Args().Get(0), "number")
			if err != nil {
				return err
			}
			seats, err := parseIntArg(c.Args().Get(2), "seats")
			if err != nil {
				return err
			}
			if seats < 0 {
				return errors.Errorf("seats must not be negative, got %d", seats)
			}
			m, err := loadedManager(c)
			if err != nil {
				return err
			}

			if err = m.Update(number, c.Args().Get(1), seats); err != nil {
				return err
			}

			fmt.Fprintln(c.App.Writer, "Flight updated.")
			return nil
		},
	}
}

func newDeleteCommand() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "mark a flight as deleted",
		ArgsUsage: "number",
		Action: func(c *cli.Context) error {
			args, err := intArgs(c, "number")
			if err != nil {
				return err
			}
			m, err := loadedManager(c)
			if err != nil {
				return err
			}

			found, err := m.Delete(args[0])
			if err != nil {
				return err
			}
			if !found {
				return errors.Wrapf(flightdb.ErrFlightNotFound, "flight %d", args[0])
			}

			fmt.Fprintln(c.App.Writer, "Flight data removed.")
			return nil
		},
	}
}

// loadedManager returns the manager of the context after loading the data
// file, one-shot commands need existing data.
func loadedManager(c *cli.Context) (*flightdb.Manager, error) {
	m := managerFromContext(c.Context)
	if err := m.Load(); err != nil {
		return nil, err
	}

	return m, nil
}

func intArgs(c *cli.Context, names ...string) ([]int, error) {
	if c.NArg() != len(names) {
		return nil, errors.Errorf("want %d arguments, got %d", len(names), c.NArg())
	}

	values := make([]int, 0, len(names))
	for i, name := range names {
		v, err := parseIntArg(c.Args().Get(i), name)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}

	return values, nil
}

func parseIntArg(arg, name string) (int, error) {
	v, err := strconv.Atoi(arg)
	if err != nil {
		return 0, errors.Errorf("%s must be an integer, got %q", name, arg)
	}

	return v, nil
}
