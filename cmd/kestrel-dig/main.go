// Command kestrel-dig is a small dig-style lookup tool demonstrating the
// library. Defaults come from the environment (KDNS_ prefix); flags override.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/kestrelns/kestrel/internal/dns/common/log"
	"github.com/kestrelns/kestrel/internal/dns/common/rrdata"
	"github.com/kestrelns/kestrel/internal/dns/domain"
	"github.com/kestrelns/kestrel/internal/dns/infra/config"
	"github.com/kestrelns/kestrel/internal/dns/services/client"
)

const (
	version = "0.1.0-dev"
	appName = "kestrel-dig"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	app := &cli.App{
		Name:    appName,
		Version: version,
		Usage:   "look up DNS records",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "mode",
				Usage: "resolver implementation: udp, doh, or system",
				Value: cfg.Mode,
			},
			&cli.StringFlag{
				Name:    "server",
				Aliases: []string{"s"},
				Usage:   "upstream DNS server for udp mode (host:port)",
				Value:   cfg.Server,
			},
			&cli.StringFlag{
				Name:  "doh-url",
				Usage: "JSON DNS-over-HTTPS endpoint for doh mode",
				Value: cfg.DoHURL,
			},
			&cli.StringFlag{
				Name:    "type",
				Aliases: []string{"t"},
				Usage:   "record type (A, AAAA, TXT, ...)",
				Value:   "A",
			},
			&cli.BoolFlag{
				Name:  "6",
				Usage: "prefer IPv6 (AAAA) when no type is given",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "per-query timeout",
				Value: time.Duration(cfg.TimeoutMS) * time.Millisecond,
			},
			&cli.BoolFlag{
				Name:  "full",
				Usage: "print the full response instead of answer data only",
			},
		},
		Before: func(c *cli.Context) error {
			return log.Configure(cfg.Env, cfg.LogLevel)
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("usage: kestrel-dig [options] NAME [NAME...]", 2)
	}

	rrtype := domain.RRTypeFromString(c.String("type"))
	if rrtype == 0 {
		return cli.Exit(fmt.Sprintf("unknown record type %q", c.String("type")), 2)
	}
	family := client.FamilyIPv4
	if c.Bool("6") {
		family = client.FamilyIPv6
	}

	cl, err := client.New(client.Options{
		Kind:    client.Kind(c.String("mode")),
		Server:  c.String("server"),
		DoHURL:  c.String("doh-url"),
		Timeout: c.Duration("timeout"),
		Logger:  log.GetLogger(),
	})
	if err != nil {
		return err
	}
	defer cl.Close()

	for _, name := range c.Args().Slice() {
		ctx, cancel := context.WithTimeout(c.Context, c.Duration("timeout"))
		err := lookupOne(ctx, cl, name, family, rrtype, c.Bool("full"))
		cancel()
		if err != nil {
			return err
		}
	}
	return nil
}

func lookupOne(ctx context.Context, cl *client.Client, name, family string, rrtype domain.RRType, full bool) error {
	if full {
		m, err := cl.LookupFull(ctx, name, family, rrtype)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		printFull(name, m)
		return nil
	}
	answers, err := cl.Lookup(ctx, name, family, rrtype)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	for _, a := range answers {
		fmt.Printf("%s\t%s\t%s\n", name, rrtype, a)
	}
	return nil
}

func printFull(name string, m domain.Message) {
	fmt.Printf(";; %s: rcode=%s answers=%d truncated=%v\n",
		name, m.Flags.RCode(), len(m.Answers), m.Flags.Truncated())
	for _, q := range m.Questions {
		fmt.Printf(";%s\n", q)
	}
	for _, rr := range m.Answers {
		fmt.Printf("%s\t%d\t%s\t%s\n",
			rr.Name, rr.TTL, domain.RRType(rr.Type), rrdata.Render(rr.Type, rr.Data))
	}
}
