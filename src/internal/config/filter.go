// FILE: src/internal/config/filter.go
package config

import "fmt"

const (
	FilterTypeInclude = "include"
	FilterTypeExclude = "exclude"

	FilterLogicOr  = "or"
	FilterLogicAnd = "and"
)

// FilterConfig describes one regex filter applied to records before
// forwarding
type FilterConfig struct {
	// "include" passes matching records, "exclude" drops them
	Type string `toml:"type"`

	// "or" matches any pattern, "and" requires all
	Logic string `toml:"logic"`

	Patterns []string `toml:"patterns"`
}

func validateFilterConfig(index int, cfg *FilterConfig) error {
	validTypes := map[string]bool{
		"": true, FilterTypeInclude: true, FilterTypeExclude: true,
	}
	if !validTypes[cfg.Type] {
		return fmt.Errorf("filter[%d]: invalid type: %s", index, cfg.Type)
	}

	validLogic := map[string]bool{
		"": true, FilterLogicOr: true, FilterLogicAnd: true,
	}
	if !validLogic[cfg.Logic] {
		return fmt.Errorf("filter[%d]: invalid logic: %s", index, cfg.Logic)
	}

	if len(cfg.Patterns) == 0 {
		return fmt.Errorf("filter[%d]: no patterns configured", index)
	}

	return nil
}
