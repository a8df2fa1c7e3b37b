package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	OrderSourceCode     string
	DebugMode           bool
	FulfillmentURL      string
	FulfillmentUser     string
	FulfillmentPassword string
	HTTPTimeout         time.Duration
	DeliveryCodes       []string
	OrderFile           string
	RunAddress          string
}

const (
	defaultFulfillmentURL = "http://fulfillment.elmsservice.cz/orders/import"
	defaultHTTPTimeout    = 10 * time.Second
	defaultRunAddress     = ":8080"
)

// Load parses configuration from an optional .env file, environment
// variables, and flags, in increasing order of precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		OrderSourceCode:     getString(lookup, "ELMS_SOURCE", ""),
		DebugMode:           getBool(lookup, "ELMS_DEBUG", false),
		FulfillmentURL:      getString(lookup, "ELMS_ENDPOINT", defaultFulfillmentURL),
		FulfillmentUser:     getString(lookup, "ELMS_USER", ""),
		FulfillmentPassword: getString(lookup, "ELMS_PASSWORD", ""),
		HTTPTimeout:         getDuration(lookup, "ELMS_HTTP_TIMEOUT", defaultHTTPTimeout),
		DeliveryCodes:       getStrings(lookup, "ELMS_DELIVERY_CODES"),
		RunAddress:          getString(lookup, "RUN_ADDRESS", defaultRunAddress),
	}

	fs := flag.NewFlagSet("elms", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	timeoutStr := cfg.HTTPTimeout.String()

	fs.StringVar(&cfg.OrderSourceCode, "source", cfg.OrderSourceCode, "Order source code assigned by ELMS")
	fs.BoolVar(&cfg.DebugMode, "debug", cfg.DebugMode, "Validate and encode orders without sending them")
	fs.StringVar(&cfg.FulfillmentURL, "endpoint", cfg.FulfillmentURL, "Fulfillment import endpoint URL")
	fs.StringVar(&cfg.FulfillmentUser, "user", cfg.FulfillmentUser, "Basic auth user for the fulfillment endpoint")
	fs.StringVar(&cfg.FulfillmentPassword, "password", cfg.FulfillmentPassword, "Basic auth password for the fulfillment endpoint")
	fs.StringVar(&timeoutStr, "timeout", timeoutStr, "Fulfillment request timeout")
	fs.StringVar(&cfg.OrderFile, "f", cfg.OrderFile, "Order description file to submit")
	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "Mock server listen address")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error
	if cfg.HTTPTimeout, err = time.ParseDuration(timeoutStr); err != nil {
		return nil, fmt.Errorf("invalid timeout: %w", err)
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = defaultHTTPTimeout
	}

	if cfg.FulfillmentURL == "" {
		return nil, fmt.Errorf("fulfillment endpoint must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getBool(lookup envLookup, key string, def bool) bool {
	if v, ok := lookup(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

// getStrings reads a comma-separated list; an absent variable yields nil
// so the consumer can fall back to its own default set.
func getStrings(lookup envLookup, key string) []string {
	v, ok := lookup(key)
	if !ok || v == "" {
		return nil
	}
	var values []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			values = append(values, item)
		}
	}
	return values
}
