package client

import (
	"fmt"
	"io"
	"time"

	"github.com/kestrelns/kestrel/internal/dns/common/log"
	"github.com/kestrelns/kestrel/internal/dns/gateways/transport"
)

// Kind selects which resolver implementation backs a Client.
type Kind string

const (
	KindUDP    Kind = "udp"
	KindDoH    Kind = "doh"
	KindSystem Kind = "system"
)

// Options configures a Client.
type Options struct {
	Kind        Kind
	Server      string // UDP resolver address, "host:port"
	DoHURL      string // JSON DoH endpoint
	Timeout     time.Duration
	PayloadSize uint16
	LocalPort   int
	Logger      log.Logger
}

// Client is the concrete handle applications hold. It embeds the selected
// Resolver, so lookups go straight through; Close and QueryTimeout add the
// lifecycle pieces the interface leaves out.
type Client struct {
	Resolver
	kind    Kind
	timeout time.Duration
	logger  log.Logger
}

// New constructs a Client for the requested kind.
func New(opts Options) (*Client, error) {
	if opts.Logger == nil {
		opts.Logger = log.NewNoopLogger()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = transport.DefaultTimeout
	}

	var (
		res Resolver
		err error
	)
	switch opts.Kind {
	case KindUDP, "":
		var tc *transport.UDPClient
		tc, err = transport.NewUDPClient(transport.Options{
			Server:      opts.Server,
			Logger:      opts.Logger,
			Timeout:     opts.Timeout,
			PayloadSize: opts.PayloadSize,
			LocalPort:   opts.LocalPort,
		})
		if err == nil {
			res = NewUDPResolver(tc, opts.Logger)
		}
	case KindDoH:
		res, err = NewDoHResolver(opts.DoHURL, nil, opts.Logger)
	case KindSystem:
		res = NewSystemResolver(opts.Logger)
	default:
		err = fmt.Errorf("unknown client kind %q", opts.Kind)
	}
	if err != nil {
		return nil, err
	}

	return &Client{
		Resolver: res,
		kind:     opts.Kind,
		timeout:  opts.Timeout,
		logger:   opts.Logger,
	}, nil
}

// QueryTimeout returns the per-query timeout the client was built with.
func (c *Client) QueryTimeout() time.Duration {
	return c.timeout
}

// Close releases transport resources for implementations that hold any.
func (c *Client) Close() error {
	if closer, ok := c.Resolver.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
