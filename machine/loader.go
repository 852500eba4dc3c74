package machine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/grindlemire/go-interactor"
)

// maxDefinitionSize bounds how much of a remote definition is read.
const maxDefinitionSize = 4 << 20

// defaultFetchTimeout bounds a shared fetch once it no longer follows any
// single caller's context.
const defaultFetchTimeout = 30 * time.Second

// Loader fetches definitions from files or HTTP(S) URLs and builds machines.
// It implements interactor.Loader. Concurrent loads of the same location
// share one fetch and decode, but every caller gets its own machine.
type Loader struct {
	client       *http.Client
	logger       *slog.Logger
	options      []Option
	fetchTimeout time.Duration
	group        singleflight.Group
}

var _ interactor.Loader = (*Loader)(nil)

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithHTTPClient sets the client used for http and https locations.
func WithHTTPClient(c *http.Client) LoaderOption {
	return func(l *Loader) {
		if c != nil {
			l.client = c
		}
	}
}

// WithFetchTimeout bounds each shared fetch. Zero or negative keeps the
// default.
func WithFetchTimeout(d time.Duration) LoaderOption {
	return func(l *Loader) {
		if d > 0 {
			l.fetchTimeout = d
		}
	}
}

// WithLoaderLogger overrides the module logger.
func WithLoaderLogger(lg *slog.Logger) LoaderOption {
	return func(l *Loader) {
		if lg != nil {
			l.logger = lg
		}
	}
}

// WithMachineOptions passes opts to every machine the loader builds.
func WithMachineOptions(opts ...Option) LoaderOption {
	return func(l *Loader) {
		l.options = append(l.options, opts...)
	}
}

// NewLoader creates a loader.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		client:       http.DefaultClient,
		logger:       interactor.Logger(),
		fetchTimeout: defaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load fetches, decodes, validates and builds the machine at location.
func (l *Loader) Load(ctx context.Context, location string) (interactor.Machine, error) {
	def, err := l.LoadDefinition(ctx, location)
	if err != nil {
		return nil, err
	}
	return New(def, l.options...)
}

// LoadDefinition fetches and decodes the definition at location.
//
// Callers asking for the same location while a fetch is in flight share it.
// The shared fetch keeps the values of the first caller's context but not
// its cancellation, so one caller giving up does not fail the others; each
// caller still returns as soon as its own ctx is done.
func (l *Loader) LoadDefinition(ctx context.Context, location string) (*Definition, error) {
	detached := context.WithoutCancel(ctx)
	ch := l.group.DoChan(location, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(detached, l.fetchTimeout)
		defer cancel()

		data, contentType, err := l.fetch(fetchCtx, location)
		if err != nil {
			return nil, err
		}
		format := FormatFor(location, contentType)
		def, err := Decode(data, format)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", location, err)
		}
		return def, nil
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("load %s: %w", location, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		l.logger.Debug("definition loaded", "location", location, "shared", res.Shared)
		return res.Val.(*Definition), nil
	}
}

func (l *Loader) fetch(ctx context.Context, location string) ([]byte, string, error) {
	u, err := url.Parse(location)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		// Plain paths, including Windows drive letters.
		return l.readFile(location)
	}

	switch strings.ToLower(u.Scheme) {
	case "file":
		return l.readFile(u.Path)
	case "http", "https":
		return l.get(ctx, location)
	default:
		return nil, "", fmt.Errorf("unsupported location scheme %q", u.Scheme)
	}
}

func (l *Loader) readFile(p string) ([]byte, string, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, "", fmt.Errorf("read definition: %w", err)
	}
	return data, "", nil
}

func (l *Loader) get(ctx context.Context, location string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build request: %w", err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetch definition: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("fetch definition: %s", resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDefinitionSize+1))
	if err != nil {
		return nil, "", fmt.Errorf("read definition body: %w", err)
	}
	if len(data) > maxDefinitionSize {
		return nil, "", fmt.Errorf("definition exceeds %d bytes", maxDefinitionSize)
	}
	return data, resp.Header.Get("Content-Type"), nil
}
