package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"billgenerator/billing"
	"billgenerator/templates"
)

// EnvPrefix prefixes environment overrides, e.g. BILL_PREMIUM_PERCENT.
const EnvPrefix = "BILL"

// configKeys are the flat keys billing.ParseConfig reads. They match the web
// form so one bill file serves both front ends.
func configKeys() []string {
	keys := make([]string, 0, len(templates.BillFormFields))
	for _, f := range templates.BillFormFields {
		keys = append(keys, f.Name)
	}
	return keys
}

// flagName is the command-line spelling of a config key.
func flagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}

// addConfigFlags registers one string flag per config key.
func addConfigFlags(flags *pflag.FlagSet) {
	for _, f := range templates.BillFormFields {
		flags.String(flagName(f.Name), "", f.Label)
	}
}

// LoadBillConfig reads a bill configuration from an optional YAML, JSON or
// TOML file, BILL_* environment variables and changed flags, later sources
// winning. Officers are only read from the file's "officers" table.
func LoadBillConfig(path string, flags *pflag.FlagSet) (billing.Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return billing.Config{}, fmt.Errorf("read bill file %s: %w", path, err)
		}
	}

	keys := configKeys()
	if flags != nil {
		for _, k := range keys {
			if f := flags.Lookup(flagName(k)); f != nil {
				if err := v.BindPFlag(k, f); err != nil {
					return billing.Config{}, fmt.Errorf("bind flag %s: %w", f.Name, err)
				}
			}
		}
	}

	values := make(map[string]string, len(keys))
	for _, k := range keys {
		if v.IsSet(k) {
			values[k] = stringValue(v.Get(k))
		}
	}

	cfg, err := billing.ParseConfig(values)
	if err != nil {
		return billing.Config{}, err
	}
	if err := v.UnmarshalKey("officers", &cfg.Officers); err != nil {
		return billing.Config{}, fmt.Errorf("read officers: %w", err)
	}
	return cfg, nil
}

// stringValue renders a decoded file value the way a form would send it.
func stringValue(raw any) string {
	if t, ok := raw.(time.Time); ok {
		return t.Format("2006-01-02")
	}
	return cast.ToString(raw)
}
