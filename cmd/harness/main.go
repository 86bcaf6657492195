// cmd/harness/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/Krisha-cmd/RC-RL/internal/analysis"
	"github.com/Krisha-cmd/RC-RL/internal/config"
	"github.com/Krisha-cmd/RC-RL/internal/imaging"
	"github.com/Krisha-cmd/RC-RL/internal/report"
	"github.com/Krisha-cmd/RC-RL/internal/session"
	"github.com/Krisha-cmd/RC-RL/internal/telemetry"
	"github.com/Krisha-cmd/RC-RL/internal/transport"
)

func main() {
	app := &cli.App{
		Name:  "harness",
		Usage: "UART diagnostic harness for the FPGA image pipeline",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "enable debug logging",
			},
			&cli.StringFlag{
				Name:  "layout",
				Usage: "telemetry bit layout override (fifo1-first, fifo3-first)",
			},
		},
		Commands: []*cli.Command{
			runCommand(),
			decodeCommand(),
			analyzeCommand(),
			captureCommand(),
			genimageCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "harness:", err)
		os.Exit(1)
	}
}

func logger(c *cli.Context) zerolog.Logger {
	level := zerolog.InfoLevel
	if c.Bool("verbose") {
		level = zerolog.DebugLevel
	}
	w := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// loadConfig resolves the config file argument plus the global layout
// override into a ready-to-use config and layout pair.
func loadConfig(c *cli.Context) (*config.Config, telemetry.Layout, error) {
	if c.NArg() < 1 {
		return nil, telemetry.Layout{}, fmt.Errorf("usage: harness %s <config.yaml>", c.Command.Name)
	}

	cfg, err := config.Load(c.Args().First())
	if err != nil {
		return nil, telemetry.Layout{}, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, telemetry.Layout{}, fmt.Errorf("config validation failed: %w", err)
	}
	config.Normalize(cfg)

	name := cfg.Harness.Protocol.Layout
	if override := c.String("layout"); override != "" {
		name = override
	}
	layout, err := telemetry.LayoutByName(name)
	if err != nil {
		return nil, telemetry.Layout{}, err
	}
	return cfg, layout, nil
}

func portConfig(h config.HarnessConfig) transport.Config {
	return transport.Config{
		Address:     h.Port.Address,
		BaudRate:    h.Port.Baud,
		ReadTimeout: time.Duration(h.Port.ReadTimeoutMs) * time.Millisecond,
		IdleTimeout: time.Duration(h.Port.IdleTimeoutMs) * time.Millisecond,
		MaxWait:     time.Duration(h.Port.MaxWaitMs) * time.Millisecond,
		ChunkSize:   h.Send.ChunkSize,
		ChunkDelay:  time.Duration(h.Send.ChunkDelayUs) * time.Microsecond,
	}
}

func runCommand() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "send the input image, receive the processed image and telemetry",
		ArgsUsage: "<config.yaml>",
		Action: func(c *cli.Context) error {
			cfg, layout, err := loadConfig(c)
			if err != nil {
				return err
			}
			log := logger(c)

			port, err := transport.Open(portConfig(cfg.Harness))
			if err != nil {
				return err
			}
			defer port.Close()

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			art, err := session.New(cfg.Harness, port, layout, log).Run(ctx)
			if err != nil {
				return err
			}

			fmt.Print(report.Summary(art.Frame))
			fmt.Println("raw dump:      ", art.RawPath)
			fmt.Println("image:         ", art.ImagePath)
			fmt.Println("receive log:   ", art.ProgressPath)
			if art.TelemetryPath != "" {
				fmt.Println("telemetry csv: ", art.TelemetryPath)
			}
			return nil
		},
	}
}

func decodeCommand() *cli.Command {
	return &cli.Command{
		Name:      "decode",
		Usage:     "re-parse a captured byte dump for log frames",
		ArgsUsage: "<capture.bin>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "csv",
				Usage: "also write decoded entries to this CSV file",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return fmt.Errorf("usage: harness decode <capture.bin>")
			}
			layout, err := telemetry.LayoutByName(c.String("layout"))
			if err != nil {
				return err
			}

			results, err := session.DecodeCapture(c.Args().First(), layout)
			if err != nil {
				return err
			}

			var all []telemetry.Entry
			for i, res := range results {
				fmt.Printf("--- frame %d ---\n%s", i, report.Summary(res))
				all = append(all, res.Entries...)
			}

			if path := c.String("csv"); path != "" && len(all) > 0 {
				f, err := os.Create(path)
				if err != nil {
					return err
				}
				defer f.Close()
				if err := report.WriteTelemetryCSV(f, all); err != nil {
					return err
				}
				fmt.Println("telemetry csv:", path)
			}
			return nil
		},
	}
}

func analyzeCommand() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "summarize telemetry CSVs and compare RL-on vs RL-off runs",
		ArgsUsage: "<perflog.csv [perflog.csv]> | <directory>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "plot",
				Usage: "write a fifo-load chart of the first input to this file",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return fmt.Errorf("usage: harness analyze <csv...|directory>")
			}

			paths := c.Args().Slice()
			if len(paths) == 1 {
				if info, err := os.Stat(paths[0]); err == nil && info.IsDir() {
					paths, err = filepath.Glob(filepath.Join(paths[0], "*_perflog_*.csv"))
					if err != nil {
						return err
					}
					sort.Strings(paths)
					if len(paths) == 0 {
						return fmt.Errorf("no *_perflog_*.csv files in %s", c.Args().First())
					}
				}
			}

			var stats []analysis.Stats
			for i, path := range paths {
				entries, err := analysis.Load(path)
				if err != nil {
					return err
				}
				s := analysis.Analyze(filepath.Base(path), entries)
				stats = append(stats, s)

				fmt.Printf("--- %s ---\n%s\n", s.Label, s)

				if i == 0 && c.String("plot") != "" {
					if err := analysis.PlotLoads(entries, c.String("plot")); err != nil {
						return err
					}
					fmt.Println("plot:", c.String("plot"))
				}
			}

			// Two explicit files: the first is the RL-on run, like the old
			// comparison tool. A directory: group by observed RL share.
			switch {
			case len(stats) == 2:
				fmt.Print(analysis.Compare(stats[0], stats[1]))
			case len(stats) > 2:
				var on, off []analysis.Stats
				for _, s := range stats {
					if s.RLActivePct > 50 {
						on = append(on, s)
					} else {
						off = append(off, s)
					}
				}
				if len(on) == 0 || len(off) == 0 {
					fmt.Println("cannot compare: need both rl-on and rl-off runs")
					return nil
				}
				fmt.Print(analysis.Compare(analysis.Average(on), analysis.Average(off)))
			}
			return nil
		},
	}
}

func captureCommand() *cli.Command {
	return &cli.Command{
		Name:      "capture",
		Usage:     "listen on the port and dump whatever arrives",
		ArgsUsage: "<config.yaml> <dump.bin>",
		Action: func(c *cli.Context) error {
			cfg, _, err := loadConfig(c)
			if err != nil {
				return err
			}
			if c.NArg() < 2 {
				return fmt.Errorf("usage: harness capture <config.yaml> <dump.bin>")
			}
			log := logger(c)

			port, err := transport.Open(portConfig(cfg.Harness))
			if err != nil {
				return err
			}
			defer port.Close()

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			log.Info().Str("port", cfg.Harness.Port.Address).Msg("listening")
			data, err := port.Collect(ctx, 0, func(total int) {
				log.Debug().Int("total", total).Msg("receiving")
			})
			if len(data) > 0 {
				if werr := os.WriteFile(c.Args().Get(1), data, 0o644); werr != nil {
					return werr
				}
				log.Info().Int("bytes", len(data)).Str("file", c.Args().Get(1)).Msg("dumped")
			}
			// Ctrl-C is the normal way to end a capture.
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}

func genimageCommand() *cli.Command {
	return &cli.Command{
		Name:      "genimage",
		Usage:     "write the cyan/yellow test pattern",
		ArgsUsage: "<out.png>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "width", Value: 128},
			&cli.IntFlag{Name: "height", Value: 128},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return fmt.Errorf("usage: harness genimage <out.png>")
			}
			return imaging.SavePattern(c.Int("width"), c.Int("height"), c.Args().First())
		},
	}
}
