package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"hourcal/internal/config"
	"hourcal/internal/ics"
	appLog "hourcal/internal/log"
	"hourcal/internal/model"
	"hourcal/internal/render"
	"hourcal/internal/report"
)

// reportFlags holds the report command's CLI flag values.
type reportFlags struct {
	icsPath    string
	calendar   string
	month      int
	year       int
	pdf        bool
	name       string
	configPath string
	verbose    bool
}

func main() {
	args := os.Args[1:]

	// Bare flags default to the report command.
	cmd := "report"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cmd = args[0]
		args = args[1:]
	}

	var err error
	switch cmd {
	case "report":
		err = runReport(args)
	case "cal":
		err = runCal(args)
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmd)
		usage()
		os.Exit(2)
	}

	if err != nil {
		appLog.Error("command failed", err, "command", cmd)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `Usage:
  hourcal report (-ics FILE | -cal NAME_OR_INDEX) [-month 1..12] [-year Y] [-pdf] [-name COMPANY]
  hourcal cal add -name NAME -url URL
  hourcal cal remove -name NAME
  hourcal cal list
`)
}

func runReport(args []string) error {
	var flags reportFlags

	fs := flag.NewFlagSet("report", flag.ExitOnError)
	fs.StringVar(&flags.icsPath, "ics", "", "Path to a local .ics file")
	fs.StringVar(&flags.calendar, "cal", "", "Configured calendar name or 1-based index")
	fs.IntVar(&flags.month, "month", 0, "Month to filter on (1-12, 0 = no filter)")
	fs.IntVar(&flags.year, "year", 0, "Year to filter on (0 = no filter)")
	fs.BoolVar(&flags.pdf, "pdf", false, "Write a PDF document instead of printing a table")
	fs.StringVar(&flags.name, "name", "", "Company label and PDF file stem (defaults to the calendar name)")
	fs.StringVar(&flags.configPath, "config", "", "Path to config file")
	fs.BoolVar(&flags.verbose, "v", false, "Enable debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if flags.verbose {
		appLog.SetLevel(appLog.LevelDebug)
	}
	if flags.month < 0 || flags.month > 12 {
		return fmt.Errorf("month %d out of range (1-12)", flags.month)
	}

	cals, name, err := loadCalendars(flags)
	if err != nil {
		return err
	}
	if flags.name != "" {
		name = flags.name
	}

	rep, err := report.Build(cals, flags.month, flags.year)
	if err != nil {
		return err
	}
	appLog.Debug("report built",
		"events", len(rep.Events),
		"skipped", len(rep.Skipped),
		"total_sec", rep.TotalSec,
	)

	if flags.pdf {
		out := name + ".pdf"
		if err := render.PDF(out, name, rep); err != nil {
			return err
		}
		appLog.Info("pdf written", "path", out)
		return nil
	}

	render.Table(os.Stdout, rep)
	return nil
}

// loadCalendars resolves the report's input bytes from either a local file
// or a configured remote source, and parses them. The second return value
// is a human label for the source, used as the default report name.
func loadCalendars(flags reportFlags) ([]model.Calendar, string, error) {
	switch {
	case flags.icsPath != "" && flags.calendar != "":
		return nil, "", errors.New("-ics and -cal are mutually exclusive")

	case flags.icsPath != "":
		body, err := os.ReadFile(flags.icsPath)
		if err != nil {
			return nil, "", err
		}
		name := strings.TrimSuffix(filepath.Base(flags.icsPath), filepath.Ext(flags.icsPath))
		cals, err := ics.Parse(flags.icsPath, body)
		return cals, name, err

	case flags.calendar != "":
		cfg, path, err := loadConfig(flags.configPath)
		if err != nil {
			return nil, "", err
		}
		src, err := cfg.Find(flags.calendar)
		if err != nil {
			return nil, "", fmt.Errorf("%w (config: %s)", err, path)
		}

		cacheDir, err := os.UserCacheDir()
		if err != nil {
			return nil, "", err
		}
		fetcher := ics.NewFetcher(filepath.Join(cacheDir, "hourcal", "ics"))

		res, err := fetcher.Fetch(context.Background(), ics.Source{Name: src.Name, URL: src.URL})
		if err != nil {
			return nil, "", err
		}
		cals, err := ics.Parse(src.Name, res.Body)
		return cals, src.Name, err

	default:
		return nil, "", errors.New("either -ics or -cal is required")
	}
}

func runCal(args []string) error {
	if len(args) == 0 {
		usage()
		return errors.New("cal requires a subcommand: add, remove or list")
	}
	sub, args := args[0], args[1:]

	var name, url, configPath string
	fs := flag.NewFlagSet("cal "+sub, flag.ExitOnError)
	fs.StringVar(&name, "name", "", "Calendar name")
	fs.StringVar(&url, "url", "", "Calendar ICS URL")
	fs.StringVar(&configPath, "config", "", "Path to config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, path, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	switch sub {
	case "add":
		if err := cfg.Add(name, url); err != nil {
			return err
		}
		if err := cfg.Save(path); err != nil {
			return err
		}
		appLog.Info("calendar added", "name", name)

	case "remove":
		if err := cfg.Remove(name); err != nil {
			return err
		}
		if err := cfg.Save(path); err != nil {
			return err
		}
		appLog.Info("calendar removed", "name", name)

	case "list":
		if len(cfg.Calendars) == 0 {
			fmt.Println("no calendars configured")
			return nil
		}
		for i, cal := range cfg.Calendars {
			fmt.Printf("%d. %s\t%s\n", i+1, cal.Name, cal.URL)
		}

	default:
		return fmt.Errorf("unknown cal subcommand %q", sub)
	}

	return nil
}

// loadConfig loads the config from an explicit path or the per-user
// default, returning the effective path alongside.
func loadConfig(path string) (*config.Config, string, error) {
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, "", err
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}
