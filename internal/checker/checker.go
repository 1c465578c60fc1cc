package checker

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/nao1215/nymix/internal/config"
	"github.com/nao1215/nymix/internal/model"
)

// ProgressFunc is called after each finished lookup with the number of
// finished lookups and the total. It may be called from several goroutines.
type ProgressFunc func(done, total int, record model.Record)

// Checker runs availability lookups for every (name, target) pair.
type Checker struct {
	domains *DomainChecker
	handles *HandleChecker

	concurrency int
	params      model.Params
	logger      *slog.Logger
	progress    ProgressFunc
}

// Option configures a Checker.
type Option func(*options)

// options holds the overrides collected from Option values.
type options struct {
	logger     *slog.Logger
	resolver   Resolver
	whois      WhoisClient
	noWhois    bool
	httpClient *http.Client
	progress   ProgressFunc
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithResolver replaces the DNS resolver.
func WithResolver(r Resolver) Option {
	return func(o *options) {
		o.resolver = r
	}
}

// WithWhois replaces the WHOIS client. A nil client disables WHOIS
// confirmation even when the configuration enables it.
func WithWhois(w WhoisClient) Option {
	return func(o *options) {
		o.whois = w
		o.noWhois = w == nil
	}
}

// WithHTTPClient replaces the HTTP client used for profile requests.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

// WithProgress registers a progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(o *options) {
		o.progress = fn
	}
}

// New creates a Checker from the configuration and platform registry.
func New(cfg *config.Config, platforms *Platforms, opts ...Option) (*Checker, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	dialer, err := newProxyDialer(cfg.Proxy, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	if o.resolver == nil {
		o.resolver = newResolver(cfg.Resolver, cfg.Timeout)
	}
	if o.whois == nil && !o.noWhois && cfg.WhoisConfirm {
		o.whois = newWhoisClient(cfg.Timeout, dialer)
	}
	if o.httpClient == nil {
		o.httpClient = newHTTPClient(dialer, cfg.Timeout)
	}

	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = config.DefaultConcurrency
	}

	o.logger.Debug("checker configured",
		"proxy", cfg.Proxy,
		"resolver", cfg.Resolver,
		"whois", o.whois != nil,
		"timeout", cfg.Timeout,
		"concurrency", concurrency,
		"platforms", platforms.Names(),
	)

	return &Checker{
		domains: &DomainChecker{
			resolver: o.resolver,
			whois:    o.whois,
			timeout:  cfg.Timeout,
			logger:   o.logger,
		},
		handles: &HandleChecker{
			platforms:     platforms,
			client:        o.httpClient,
			userAgent:     cfg.UserAgent,
			timeout:       cfg.Timeout,
			available:     cfg.AvailableStatus,
			taken:         cfg.TakenStatus,
			logger:        o.logger,
			ratePerSecond: cfg.RatePerSecond,
			rateBurst:     cfg.RateBurst,
			limiters:      make(map[string]*rate.Limiter),
		},
		concurrency: concurrency,
		params: model.Params{
			Timeout:      cfg.Timeout.String(),
			Concurrency:  concurrency,
			WhoisConfirm: o.whois != nil,
		},
		logger:   o.logger,
		progress: o.progress,
	}, nil
}

// Check looks up every name against every target and returns the records
// name-major in input order. Lookup failures become unknown records; a
// cancelled context turns the remaining lookups into unknown records too.
func (c *Checker) Check(ctx context.Context, names []string, targets []model.Target) *model.ResultSet {
	params := c.params
	params.Names = append([]string(nil), names...)
	for _, t := range targets {
		if t.Kind == model.KindDomain {
			params.TLDs = append(params.TLDs, t.Name)
		} else {
			params.Handles = append(params.Handles, t.Name)
		}
	}

	rs := model.NewResultSet(params)
	total := len(names) * len(targets)
	records := make([]model.Record, total)

	c.logger.Info("starting availability check",
		"names", len(names),
		"targets", len(targets),
		"lookups", total,
		"concurrency", c.concurrency,
	)
	startTime := time.Now()

	var g errgroup.Group
	g.SetLimit(c.concurrency)

	var done counter
	for i, name := range names {
		for j, target := range targets {
			slot := i*len(targets) + j
			g.Go(func() error {
				records[slot] = c.lookup(ctx, name, target)
				if c.progress != nil {
					c.progress(done.inc(), total, records[slot])
				}
				return nil
			})
		}
	}
	_ = g.Wait() //nolint:errcheck // Jobs never return errors

	rs.Records = records
	c.logger.Info("availability check completed",
		"lookups", total,
		"duration", time.Since(startTime),
	)
	return rs
}

// lookup dispatches one (name, target) pair to the matching checker.
func (c *Checker) lookup(ctx context.Context, name string, target model.Target) model.Record {
	if err := ctx.Err(); err != nil {
		return model.NewUnknownRecord(name, target, fmt.Sprintf("lookup cancelled: %v", err))
	}
	switch target.Kind {
	case model.KindDomain:
		return c.domains.Check(ctx, name, target.Name)
	case model.KindHandle:
		return c.handles.Check(ctx, name, target.Name)
	default:
		return model.NewUnknownRecord(name, target, fmt.Sprintf("unsupported target kind %q", target.Kind))
	}
}
