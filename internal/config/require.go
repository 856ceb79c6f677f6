package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
)

// Validate reports every required setting that is missing or malformed.
func (c Config) Validate() error {
	var errs []error
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("missing required env DATABASE_URL"))
	}
	if len(c.SecretKey) == 0 {
		errs = append(errs, errors.New("missing required env SECRET_KEY"))
	}
	if len(c.KafkaBrokers) == 0 {
		errs = append(errs, errors.New("missing required env KAFKA_BROKERS"))
	}
	if !strings.HasPrefix(strings.ToUpper(c.JWTAlgorithm), "HS") {
		errs = append(errs, fmt.Errorf("unsupported JWT_ALGORITHM %q", c.JWTAlgorithm))
	}
	if c.AccessTTL <= 0 {
		errs = append(errs, errors.New("ACCESS_TOKEN_EXPIRE_MINUTES must be positive"))
	}
	if c.RefreshTTL <= 0 {
		errs = append(errs, errors.New("REFRESH_TOKEN_EXPIRE_DAYS must be positive"))
	}
	return errors.Join(errs...)
}

func MustValid(c Config) Config {
	if err := c.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}
	return c
}
