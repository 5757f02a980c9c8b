package smt

import (
	"github.com/crillab/gophersmt/theory"
	"github.com/sirupsen/logrus"
)

// Config collects every construction-time option. Zero value means "use
// the sat package's own defaults", except logger, which always falls
// back to the standard logrus logger.
type Config struct {
	seed    int64
	hasSeed bool

	restartAggressiveness   float64
	reductionAggressiveness int
	nbVarsHint              int

	theories []theory.Plugin
	tracer   theory.ProofTracer
	logger   *logrus.Logger
}

func defaultConfig() *Config {
	return &Config{logger: logrus.StandardLogger()}
}

// Option configures a Solver at construction time.
type Option func(*Config)

// WithSeed fixes the decision heuristic's random phase choices, making
// search reproducible. Without it, phase guesses are deterministic
// (always false), not random.
func WithSeed(seed int64) Option {
	return func(c *Config) {
		c.seed = seed
		c.hasSeed = true
	}
}

// WithRestartPolicy rescales how eagerly the Glucose restart heuristic
// fires: higher is more eager. The core's own default is 0.8.
func WithRestartPolicy(aggressiveness float64) Option {
	return func(c *Config) { c.restartAggressiveness = aggressiveness }
}

// WithReductionAggressiveness rescales how fast the learned-clause
// budget grows between database reductions: a smaller value reduces
// more often. The core's own default is 300.
func WithReductionAggressiveness(growth int) Option {
	return func(c *Config) { c.reductionAggressiveness = growth }
}

// WithSizeHint preallocates nbVars boolean variables up front, avoiding
// repeated growth when the atom count is known ahead of time.
func WithSizeHint(nbVars int) Option {
	return func(c *Config) { c.nbVarsHint = nbVars }
}

// WithTheories attaches theory plugins (e.g. a datatype.Plugin) in the
// order given; a Solver built without this option is purely boolean,
// with congruence closure over uninterpreted function symbols still
// available through the Framework itself.
func WithTheories(plugins ...theory.Plugin) Option {
	return func(c *Config) { c.theories = append(c.theories, plugins...) }
}

// WithTracer attaches a proof tracer every plugin and the framework
// record inferences to. Without it, proof emission is a no-op.
func WithTracer(tracer theory.ProofTracer) Option {
	return func(c *Config) { c.tracer = tracer }
}

// WithLogger overrides the default standard logrus logger.
func WithLogger(logger *logrus.Logger) Option {
	return func(c *Config) {
		if logger != nil {
			c.logger = logger
		}
	}
}
