package app

import (
	"context"
	"io"
	"time"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"

	"github.com/deploymenttheory/go-dmcrypt/pkg/services"
)

// Context holds application-wide configuration and state
type Context struct {
	context.Context

	// Output preferences
	OutputFormat string
	Verbose      bool
	Quiet        bool

	// Logger receives structured progress and per-file events
	Logger log.Interface

	// Common timeouts
	DefaultTimeout time.Duration

	// Progress reporting
	ProgressCallback func(update ProgressUpdate)

	// Shared container services
	Services *services.ServiceFactory
}

// NewContext creates a new application context logging to w
func NewContext(w io.Writer) *Context {
	return &Context{
		Context:        context.Background(),
		Logger:         &log.Logger{Handler: cli.New(w), Level: log.InfoLevel},
		DefaultTimeout: 30 * time.Second,
		Services:       services.NewServiceFactory(),
	}
}

// SetVerbosity adjusts the log level from the verbose and quiet flags
func (c *Context) SetVerbosity(verbose, quiet bool) {
	c.Verbose = verbose
	c.Quiet = quiet

	logger, ok := c.Logger.(*log.Logger)
	if !ok {
		return
	}
	switch {
	case quiet:
		logger.Level = log.ErrorLevel
	case verbose:
		logger.Level = log.DebugLevel
	default:
		logger.Level = log.InfoLevel
	}
}

// WithTimeout creates a context with timeout
func (c *Context) WithTimeout(timeout time.Duration) (*Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(c.Context, timeout)
	newCtx := *c
	newCtx.Context = ctx
	return &newCtx, cancel
}

// WithCancel creates a cancellable context
func (c *Context) WithCancel() (*Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(c.Context)
	newCtx := *c
	newCtx.Context = ctx
	return &newCtx, cancel
}

// SetProgress sets the progress callback function
func (c *Context) SetProgress(callback func(ProgressUpdate)) {
	c.ProgressCallback = callback
}

// Progress reports progress if callback is set
func (c *Context) Progress(update ProgressUpdate) {
	if c.ProgressCallback != nil {
		c.ProgressCallback(update)
	}
}

// Log returns the context logger, falling back to the package default
func (c *Context) Log() log.Interface {
	if c.Logger == nil {
		return log.Log
	}
	return c.Logger
}

// ContainerService returns the shared container service for opts
func (c *Context) ContainerService(opts services.Options) (services.ContainerService, error) {
	if c.Services == nil {
		c.Services = services.NewServiceFactory()
	}
	return c.Services.ContainerService(opts)
}
