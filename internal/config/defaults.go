package config

// Default heading phrase sets per section kind. Overridable via
// SectionsConfig.Patterns for testing and localization.
var defaultPatterns = map[string][]string{
	"Abstract":    {"abstract"},
	"Methodology": {"methodology", "methods", "materials and methods", "experimental setup", "approach"},
	"Conclusions": {"conclusion", "conclusions", "summary", "discussion"},
}

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RequestTimeoutSeconds == 0 {
		cfg.Server.RequestTimeoutSeconds = 120
	}
	if cfg.Extract.MinTextLength == 0 {
		cfg.Extract.MinTextLength = 500
	}
	if cfg.Sections.MaxSectionChars == 0 {
		cfg.Sections.MaxSectionChars = 4000
	}
	if cfg.Sections.Patterns == nil {
		cfg.Sections.Patterns = make(map[string][]string)
	}
	for kind, phrases := range defaultPatterns {
		if len(cfg.Sections.Patterns[kind]) == 0 {
			cfg.Sections.Patterns[kind] = append([]string(nil), phrases...)
		}
	}
	if cfg.Query.MaxKeywords == 0 {
		cfg.Query.MaxKeywords = 10
	}
	if cfg.Query.MinSectionChars == 0 {
		cfg.Query.MinSectionChars = 30
	}
	if cfg.Retrieval.MaxResults == 0 {
		cfg.Retrieval.MaxResults = 10
	}
	if cfg.Retrieval.TopMatches == 0 {
		cfg.Retrieval.TopMatches = 5
	}
	if cfg.Retrieval.TimeoutSeconds == 0 {
		cfg.Retrieval.TimeoutSeconds = 15
	}
	if cfg.Cache.Path != "" && cfg.Cache.TTLHours == 0 {
		cfg.Cache.TTLHours = 24
	}
}
