package meta

// Validate checks if the configuration is valid.
// Returns an error if any parameter is out of range.
//
// Valid ranges:
//   - MaxDFAStates: 1 to 1,000,000
//   - DeterminizationLimit: 10 to 100,000
//   - MinLiteralLen: 1 to 64
//   - MaxLiterals: 1 to 1,000
//   - MaxRecursionDepth: 10 to 1,000
//
// Example:
//
//	config := meta.Config{MaxDFAStates: 0} // Invalid!
//	if err := config.Validate(); err != nil {
//	    log.Fatal(err)
//	}
func (c Config) Validate() error {
	if c.EnableDFA {
		if c.MaxDFAStates < 1 || c.MaxDFAStates > 1_000_000 {
			return &ConfigError{
				Field:   "MaxDFAStates",
				Message: "must be between 1 and 1,000,000",
			}
		}
		if c.DeterminizationLimit < 10 || c.DeterminizationLimit > 100_000 {
			return &ConfigError{
				Field:   "DeterminizationLimit",
				Message: "must be between 10 and 100,000",
			}
		}
	}

	if c.EnablePrefilter {
		if c.MinLiteralLen < 1 || c.MinLiteralLen > 64 {
			return &ConfigError{
				Field:   "MinLiteralLen",
				Message: "must be between 1 and 64",
			}
		}
		if c.MaxLiterals < 1 || c.MaxLiterals > 1_000 {
			return &ConfigError{
				Field:   "MaxLiterals",
				Message: "must be between 1 and 1,000",
			}
		}
	}

	if c.MaxRecursionDepth < 10 || c.MaxRecursionDepth > 1_000 {
		return &ConfigError{
			Field:   "MaxRecursionDepth",
			Message: "must be between 10 and 1,000",
		}
	}

	return nil
}
