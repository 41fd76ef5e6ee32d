package config

import (
	"errors"
	"fmt"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ConfigRequirements defines which settings must be present for each environment
type ConfigRequirements struct {
	RequireJWTSecret bool
	RequirePostgres  bool
}

var requirements = map[Environment]ConfigRequirements{
	Development: {},
	Test:        {},
	CI:          {RequireJWTSecret: true},
	Production:  {RequireJWTSecret: true, RequirePostgres: true},
}

// ValidateConfig checks if the configuration meets the requirements for the current environment
func ValidateConfig(cfg *Config) error {
	reqs := requirements[GetEnvironment()]

	var errs []error

	switch cfg.DBDriver {
	case "postgres":
		if cfg.DBHost == "" {
			errs = append(errs, ValidationError{Field: "DB_HOST", Message: "required for postgres"})
		}
		if cfg.DBName == "" {
			errs = append(errs, ValidationError{Field: "DB_NAME", Message: "required for postgres"})
		}
	case "sqlite":
		if reqs.RequirePostgres {
			errs = append(errs, ValidationError{Field: "DB_DRIVER", Message: "sqlite is not allowed in this environment"})
		}
		if cfg.SQLitePath == "" {
			errs = append(errs, ValidationError{Field: "SQLITE_PATH", Message: "required for sqlite"})
		}
	default:
		errs = append(errs, ValidationError{Field: "DB_DRIVER", Message: fmt.Sprintf("unsupported driver %q", cfg.DBDriver)})
	}

	if reqs.RequireJWTSecret && cfg.JWTSecret == "" {
		errs = append(errs, ValidationError{Field: "JWT_SECRET", Message: "required"})
	}

	if cfg.ReferenceDir == "" && cfg.ReferenceBucket == "" {
		errs = append(errs, ValidationError{Field: "REFERENCE_DIR", Message: "either REFERENCE_DIR or REFERENCE_S3_BUCKET must be set"})
	}

	if cfg.CollectorWorkers < 1 {
		errs = append(errs, ValidationError{Field: "COLLECTOR_WORKERS", Message: "must be at least 1"})
	}

	return errors.Join(errs...)
}
