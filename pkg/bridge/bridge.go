// Package bridge is the front door: it parses SQL into interchange
// values and restores SQL text from possibly-mutated values. Importing
// it registers the built-in dialects.
package bridge

import (
	"log/slog"

	"github.com/leapstack-labs/sqlbridge/pkg/dialect"
	"github.com/leapstack-labs/sqlbridge/pkg/interchange"
	"github.com/leapstack-labs/sqlbridge/pkg/parser"
	"github.com/leapstack-labs/sqlbridge/pkg/render"
	"github.com/leapstack-labs/sqlbridge/pkg/rewrite"

	_ "github.com/leapstack-labs/sqlbridge/pkg/dialects/ansi"
	_ "github.com/leapstack-labs/sqlbridge/pkg/dialects/mysql"
	"github.com/leapstack-labs/sqlbridge/pkg/dialects/omni"
	_ "github.com/leapstack-labs/sqlbridge/pkg/dialects/postgres"
)

// Bridge exposes the parse and restore pipeline. The zero value is
// usable; New adds options.
type Bridge struct {
	logger *slog.Logger
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithLogger attaches a structured logger. Without one the bridge is
// silent.
func WithLogger(l *slog.Logger) Option {
	return func(b *Bridge) { b.logger = l }
}

// New returns a configured Bridge.
func New(opts ...Option) *Bridge {
	b := &Bridge{}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Result carries the parsed statements and the dialect resolution
// outcome. FellBack is set instead of any console notice when the
// requested dialect name was unknown; callers decide whether to
// surface it.
type Result struct {
	Statements []interchange.Value
	Dialect    string
	FellBack   bool
}

// Parse tokenizes and parses sql under the named dialect and returns
// one interchange value per statement. Unknown dialect names fall back
// to the default dialect, reported through Result.FellBack.
func (b *Bridge) Parse(sql, dialectName string) (*Result, error) {
	d, fellBack := dialect.Resolve(dialectName)
	if fellBack && b.logger != nil {
		b.logger.Warn("unknown dialect, using default",
			"requested", dialectName, "using", d.Name)
	}
	result, err := b.parse(sql, d)
	if err != nil {
		return nil, err
	}
	result.FellBack = fellBack
	return result, nil
}

// ParseFixed parses with the permissive omni dialect. The dialect
// argument of Parse has no counterpart here; callers that need every
// extension enabled use this path.
func (b *Bridge) ParseFixed(sql string) (*Result, error) {
	d, _ := dialect.Get(omni.Name)
	return b.parse(sql, d)
}

func (b *Bridge) parse(sql string, d *dialect.Dialect) (*Result, error) {
	stmts, err := parser.Parse(sql, d)
	if err != nil {
		return nil, err
	}
	values := make([]interchange.Value, len(stmts))
	for i, stmt := range stmts {
		values[i] = interchange.EncodeStatement(stmt)
	}
	return &Result{Statements: values, Dialect: d.Name}, nil
}

// Restore decodes interchange values back to ASTs and renders one SQL
// string per statement. The named dialect controls quoting in the
// rendered text, with the same fallback rule as Parse.
func (b *Bridge) Restore(trees []interchange.Value, dialectName string) ([]string, error) {
	d, fellBack := dialect.Resolve(dialectName)
	if fellBack && b.logger != nil {
		b.logger.Warn("unknown dialect, using default",
			"requested", dialectName, "using", d.Name)
	}
	r := render.NewRenderer(d)
	out := make([]string, len(trees))
	for i, tree := range trees {
		stmt, err := interchange.DecodeStatement(tree)
		if err != nil {
			return nil, err
		}
		out[i] = r.Statement(stmt)
	}
	return out, nil
}

// ExtractTemporal scans sql for temporal clauses ahead of parsing. See
// rewrite.ExtractTemporal for the current identity contract.
func (b *Bridge) ExtractTemporal(sql string) (string, []rewrite.TemporalFilter) {
	return rewrite.ExtractTemporal(sql)
}

// defaultBridge backs the package-level convenience functions. It has no
// logger, so dialect fallback is reported only through Result.FellBack.
var defaultBridge = &Bridge{}

// Parse parses sql with the default Bridge.
func Parse(sql, dialectName string) (*Result, error) {
	return defaultBridge.Parse(sql, dialectName)
}

// ParseFixed parses sql with the default Bridge under the omni dialect.
func ParseFixed(sql string) (*Result, error) {
	return defaultBridge.ParseFixed(sql)
}

// Restore renders interchange values with the default Bridge.
func Restore(trees []interchange.Value, dialectName string) ([]string, error) {
	return defaultBridge.Restore(trees, dialectName)
}
