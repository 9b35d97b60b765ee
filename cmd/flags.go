package cmd

import (
	"strconv"

	"github.com/rnwolfe/lorefind/internal/config"
	"github.com/spf13/pflag"
)

// thresholdValue is a pflag.Value that only accepts scores in [0, 1].
type thresholdValue float64

var _ pflag.Value = (*thresholdValue)(nil)

func (v *thresholdValue) String() string {
	return strconv.FormatFloat(float64(*v), 'g', -1, 64)
}

func (v *thresholdValue) Set(s string) error {
	t, err := config.ParseThreshold(s)
	if err != nil {
		return err
	}
	*v = thresholdValue(t)
	return nil
}

func (v *thresholdValue) Type() string { return "score" }

// matchSettings picks flag values over config values when the flag was set.
func matchSettings(flags *pflag.FlagSet, cfg *config.Config, keys []string, threshold thresholdValue) ([]string, float64) {
	k := cfg.Search.Keys
	if flags.Changed("key") {
		k = keys
	}
	t := cfg.Search.Threshold
	if flags.Changed("threshold") {
		t = float64(threshold)
	}
	return k, t
}
