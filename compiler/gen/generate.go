package gen

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

type (
	// The Generator interface is implemented by code generators of units.
	Generator interface {
		// Generate generates the Go file of the given unit.
		Generate(*Unit) error
	}

	// The GenerateFunc type is an adapter to allow the use of ordinary
	// function as Generator. If f is a function with the appropriate signature,
	// GenerateFunc(f) is a Generator that calls f.
	GenerateFunc func(*Unit) error

	// Hook defines the "generate middleware". A function that gets a Generator
	// and returns a Generator. For example:
	//
	//	hook := func(next gen.Generator) gen.Generator {
	//		return gen.GenerateFunc(func(u *gen.Unit) error {
	//			fmt.Println("Unit:", u.Source)
	//			return next.Generate(u)
	//		})
	//	}
	//
	Hook func(Generator) Generator
)

// Generate calls f(u).
func (f GenerateFunc) Generate(u *Unit) error {
	return f(u)
}

// JenniferGenerator emits units with jennifer and writes one formatted Go
// file per unit. Units share no state, so GenerateAll runs them in parallel.
type JenniferGenerator struct {
	config  *Config
	workers int

	// Metrics for performance monitoring
	mu      sync.Mutex
	metrics WriterMetrics
}

// WriterMetrics tracks generation performance
type WriterMetrics struct {
	FilesGenerated int
	TotalBytes     int64
	RenderTime     int64 // nanoseconds
	FormatTime     int64 // nanoseconds
	WriteTime      int64 // nanoseconds
}

// NewJenniferGenerator creates a new Jennifer-based generator.
func NewJenniferGenerator(c *Config) *JenniferGenerator {
	if c == nil {
		c = DefaultConfig()
	}
	return &JenniferGenerator{
		config:  c,
		workers: c.workers(),
	}
}

// WithWorkers sets the number of parallel workers.
func (g *JenniferGenerator) WithWorkers(n int) *JenniferGenerator {
	if n > 0 {
		g.workers = n
	}
	return g
}

// Metrics returns a snapshot of the generation metrics.
func (g *JenniferGenerator) Metrics() WriterMetrics {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.metrics
}

// Generate emits the unit and writes it to disk. It implements Generator
// without applying hooks.
func (g *JenniferGenerator) Generate(u *Unit) error {
	if u.Package == "" {
		return NewConfigError("Package", nil, "missing package name in config")
	}
	log := g.config.logger().With("source", u.Source)
	start := time.Now()
	f := Emit(u)
	g.observe(func(m *WriterMetrics) { m.RenderTime += int64(time.Since(start)) })
	log.Debug("emitted unit", "tables", len(u.Tables), "package", u.Package)
	if err := g.writeFile(f, u.Path()); err != nil {
		return err
	}
	log.Info("generated file", "path", u.Path())
	return nil
}

// GenerateAll generates every unit, running the configured hooks around
// each one. Units are generated in parallel, bounded by the worker count.
// The first error cancels the units that have not started yet.
func (g *JenniferGenerator) GenerateAll(ctx context.Context, units ...*Unit) error {
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)
	for _, u := range units {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return g.hooked(u.Hooks).Generate(u)
			}
		})
	}
	return eg.Wait()
}

// hooked wraps the generator with the hooks. The first hook is the
// outermost one.
func (g *JenniferGenerator) hooked(hooks []Hook) Generator {
	var gen Generator = g
	for i := len(hooks) - 1; i >= 0; i-- {
		gen = hooks[i](gen)
	}
	return gen
}

func (g *JenniferGenerator) observe(fn func(*WriterMetrics)) {
	g.mu.Lock()
	fn(&g.metrics)
	g.mu.Unlock()
}

// Gen generates the Go file of the unit, running its hooks.
func (u *Unit) Gen() error {
	return NewJenniferGenerator(u.Config).hooked(u.Hooks).Generate(u)
}
