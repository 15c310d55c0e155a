package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/urfave/cli"

	"github.com/imasker/warden"
	"github.com/imasker/warden/codes"
	"github.com/imasker/warden/config"
	"github.com/imasker/warden/locks"
	"github.com/imasker/warden/log"
)

func main() {
	err := newApp(os.Stdout).Run(os.Args)

	// exec exits with the status of the command it ran
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		os.Exit(exitErr.ExitCode())
	}
	if err != nil {
		log.Logger.Fatal("%s", err)
	}
}

func newApp(out io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "warden"
	app.Usage = "generate confirmation codes and run commands under a named lock"
	app.Version = "0.1.0"
	app.Writer = out
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Usage: "path to a YAML config file; the environment is used when empty",
		},
		cli.BoolFlag{
			Name:  "verbose",
			Usage: "enable debug logging",
		},
	}
	app.Before = func(c *cli.Context) error {
		if c.GlobalBool("verbose") {
			log.SetUserLogger(&log.WLogger{Verbose: true})
		}
		return nil
	}
	app.Commands = []cli.Command{
		{
			Name:  "code",
			Usage: "print confirmation codes",
			Flags: []cli.Flag{
				cli.IntFlag{Name: "count, n", Value: 1, Usage: "how many codes to print"},
				cli.Int64Flag{Name: "seed", Usage: "seed for reproducible output"},
				cli.IntFlag{Name: "length", Usage: "symbols per code, overrides config"},
				cli.StringFlag{Name: "alphabet", Usage: "symbols to draw from, overrides config"},
				cli.BoolFlag{Name: "secure", Usage: "draw from crypto/rand instead of the seeded generator"},
			},
			Action: codeAction,
		},
		{
			Name:      "exec",
			Usage:     "run a command while holding a lock",
			ArgsUsage: "-- command [args...]",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "key, k", Usage: "name of the lock"},
				cli.StringFlag{Name: "lock", Usage: "lock backend URL, overrides config"},
			},
			Action: execAction,
		},
	}
	return app
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	if path := c.GlobalString("config"); path != "" {
		return config.NewFromYaml(path)
	}
	return config.NewFromEnvironment()
}

func codeAction(c *cli.Context) error {
	cnf, err := loadConfig(c)
	if err != nil {
		return err
	}
	if c.IsSet("seed") {
		cnf.Code.Seed = c.Int64("seed")
	}
	if c.IsSet("length") {
		cnf.Code.Length = c.Int("length")
	}
	if c.IsSet("alphabet") {
		cnf.Code.Alphabet = c.String("alphabet")
	}

	next, err := codeSource(cnf.Code, c.Bool("secure"))
	if err != nil {
		return err
	}
	for i := 0; i < c.Int("count"); i++ {
		code, err := next()
		if err != nil {
			return err
		}
		fmt.Fprintln(c.App.Writer, code)
	}
	return nil
}

func codeSource(cnf *config.CodeConfig, secure bool) (func() (string, error), error) {
	opts := []codes.Option{codes.WithLength(cnf.Length), codes.WithAlphabet(cnf.Alphabet)}
	if secure {
		g, err := codes.Secure(opts...)
		if err != nil {
			return nil, err
		}
		return g.Generate, nil
	}

	g, err := warden.CodeGeneratorFactory(&config.Config{Code: cnf})
	if err != nil {
		return nil, err
	}
	return func() (string, error) {
		return g.Generate(), nil
	}, nil
}

func execAction(c *cli.Context) error {
	key := c.String("key")
	if key == "" {
		return errors.New("exec: --key is required")
	}
	args := c.Args()
	if len(args) == 0 {
		return errors.New("exec: missing command")
	}

	cnf, err := loadConfig(c)
	if err != nil {
		return err
	}
	if c.IsSet("lock") {
		cnf.Lock = c.String("lock")
	}
	lock, err := warden.LockFactory(cnf)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, err = locks.DoContext(ctx, lock, key, func(ctx context.Context) (struct{}, error) {
		cmd := exec.CommandContext(ctx, args[0], args[1:]...)
		cmd.Stdin = os.Stdin
		cmd.Stdout = c.App.Writer
		cmd.Stderr = os.Stderr
		return struct{}{}, cmd.Run()
	})
	if err != nil {
		// wrapped so cli does not treat *exec.ExitError as its own ExitCoder and exit early
		return fmt.Errorf("exec %s: %w", args[0], err)
	}
	return nil
}
