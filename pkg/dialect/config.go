package dialect

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// Config is the pure-data capability flag set of a dialect. Hosts that
// keep dialect definitions in configuration can decode a flag map into a
// Config and build a dialect from it.
type Config struct {
	BackslashEscapes     bool `mapstructure:"backslash_escapes"`
	NumericUnderscores   bool `mapstructure:"numeric_underscores"`
	SignedNumbers        bool `mapstructure:"signed_numbers"`
	WildcardExcept       bool `mapstructure:"wildcard_except"`
	SubscriptIndexing    bool `mapstructure:"subscript_indexing"`
	AggregateFilter      bool `mapstructure:"aggregate_filter"`
	MatchAgainst         bool `mapstructure:"match_against"`
	IntervalUnitRequired bool `mapstructure:"interval_unit_required"`
	TimeTravel           bool `mapstructure:"time_travel"`
}

// ConfigFromMap decodes a capability flag map into a Config. Unknown
// keys are rejected so a typo in host configuration fails loudly.
func ConfigFromMap(m map[string]any) (Config, error) {
	var cfg Config
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &cfg,
		ErrorUnused: true,
	})
	if err != nil {
		return Config{}, fmt.Errorf("dialect config decoder: %w", err)
	}
	if err := dec.Decode(m); err != nil {
		return Config{}, fmt.Errorf("dialect config: %w", err)
	}
	return cfg, nil
}
