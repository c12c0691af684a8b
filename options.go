package lingmatch

import (
	"log/slog"

	"github.com/hupe1980/lingmatch/metric"
	"github.com/hupe1980/lingmatch/profile"
)

type options struct {
	profiles         *profile.Table
	aliases          profile.AliasMap
	logger           *Logger
	metricsCollector MetricsCollector
}

// Option configures Engine construction.
type Option func(*options)

// WithProfiles sets the baseline-profile table comparisons may reference by
// name. If nil is passed, profile.Defaults() is used.
func WithProfiles(t *profile.Table) Option {
	return func(o *options) {
		if t == nil {
			t = profile.Defaults()
		}
		o.profiles = t
	}
}

// WithAliases sets the column alias map used to reconcile variant feature
// names with canonical profile columns.
func WithAliases(a profile.AliasMap) Option {
	return func(o *options) {
		if a == nil {
			a = profile.DefaultAliases()
		}
		o.aliases = a
	}
}

// WithLogger configures structured logging. Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		profiles:         profile.Defaults(),
		aliases:          profile.DefaultAliases(),
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

// Dataset is a named-column reference table. Grouping, ordering, and
// comparison arguments given as bare strings resolve against its columns.
// Column values may be []string, []float64, []int, []bool, or []any.
type Dataset map[string]any

type matchOptions struct {
	comp      any
	compSet   bool
	data      Dataset
	compData  Dataset
	groups    []any
	compGroup any
	order     any
	drop      bool
	allLevels bool
	preset    string
	metrics   []metric.Metric
}

// MatchOption configures a single Match call.
type MatchOption func(*matchOptions)

// Comparison sets the comparison specification: a keyword ("pairwise",
// "sequential", "auto", or a profile name), a reducer, a row selection
// vector, raw comparison texts, a named vector, an external matrix, or a
// column reference into CompData/Data.
func Comparison(v any) MatchOption {
	return func(o *matchOptions) {
		o.comp = v
		o.compSet = true
	}
}

// Data supplies the reference table for resolving column-name arguments.
func Data(d Dataset) MatchOption {
	return func(o *matchOptions) { o.data = d }
}

// CompData supplies the reference table for comparison-side resolution.
func CompData(d Dataset) MatchOption {
	return func(o *matchOptions) { o.compData = d }
}

// Group supplies zero or more grouping vectors or column references, outer
// to inner. In sequential mode the last one is the speaker identity.
func Group(vs ...any) MatchOption {
	return func(o *matchOptions) { o.groups = append(o.groups, vs...) }
}

// CompGroup supplies the grouping reference for the comparison side,
// aligning baseline rows with main-data group levels by label.
func CompGroup(v any) MatchOption {
	return func(o *matchOptions) { o.compGroup = v }
}

// Order supplies a row reordering: a permutation of row indices or a column
// reference. Rows and all grouping vectors reorder together. An invalid
// ordering is skipped with a warning.
func Order(v any) MatchOption {
	return func(o *matchOptions) { o.order = v }
}

// Drop removes all-zero columns after processing.
func Drop(drop bool) MatchOption {
	return func(o *matchOptions) { o.drop = drop }
}

// AllLevels keeps multiple grouping vectors as a nested hierarchy instead of
// collapsing them into one composite label.
func AllLevels(on bool) MatchOption {
	return func(o *matchOptions) { o.allLevels = on }
}

// Type selects a shorthand preset of default metrics: "lsm" (canberra),
// "lsa" (cosine), or "default" (all metrics). An explicit Metrics option
// always wins.
func Type(preset string) MatchOption {
	return func(o *matchOptions) { o.preset = preset }
}

// Metrics selects the similarity metrics to compute.
func Metrics(ms ...metric.Metric) MatchOption {
	return func(o *matchOptions) { o.metrics = append(o.metrics, ms...) }
}

func applyMatchOptions(optFns []MatchOption) matchOptions {
	var o matchOptions
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
