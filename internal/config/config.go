package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const defaultLaunchAPIURL = "https://api.spacexdata.com/v3/launches"

type Config struct {
	Port           string
	AllowedOrigins []string
	LaunchAPIURL   string
	FetchDelay     time.Duration
	HTTPTimeout    time.Duration
	LogLevel       string
	MaxScreens     int
	ScreenIdleTTL  time.Duration
	AllowLocalhost bool
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("port", "8080")
	v.SetDefault("allowed_origins", "http://localhost:3000")
	v.SetDefault("launch_api_url", defaultLaunchAPIURL)
	v.SetDefault("fetch_delay", time.Second)
	v.SetDefault("http_timeout", 30*time.Second)
	v.SetDefault("log_level", "info")
	v.SetDefault("max_screens", 1000)
	v.SetDefault("screen_idle_ttl", 10*time.Minute)
	v.SetDefault("allow_localhost_origins", false)
	v.AutomaticEnv()

	apiURL := strings.TrimSpace(v.GetString("launch_api_url"))
	if apiURL == "" {
		return nil, fmt.Errorf("LAUNCH_API_URL must not be empty")
	}

	delay := v.GetDuration("fetch_delay")
	if delay < 0 {
		return nil, fmt.Errorf("FETCH_DELAY must not be negative, got %s", delay)
	}

	timeout := v.GetDuration("http_timeout")
	if timeout <= 0 {
		return nil, fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", timeout)
	}

	maxScreens := v.GetInt("max_screens")
	if maxScreens <= 0 {
		return nil, fmt.Errorf("MAX_SCREENS must be positive, got %d", maxScreens)
	}

	idleTTL := v.GetDuration("screen_idle_ttl")
	if idleTTL <= 0 {
		return nil, fmt.Errorf("SCREEN_IDLE_TTL must be positive, got %s", idleTTL)
	}

	var allowedOrigins []string
	for _, origin := range strings.Split(v.GetString("allowed_origins"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			allowedOrigins = append(allowedOrigins, origin)
		}
	}
	if len(allowedOrigins) == 0 {
		return nil, fmt.Errorf("ALLOWED_ORIGINS must list at least one origin")
	}

	return &Config{
		Port:           v.GetString("port"),
		AllowedOrigins: allowedOrigins,
		LaunchAPIURL:   apiURL,
		FetchDelay:     delay,
		HTTPTimeout:    timeout,
		LogLevel:       strings.ToLower(v.GetString("log_level")),
		MaxScreens:     maxScreens,
		ScreenIdleTTL:  idleTTL,
		AllowLocalhost: v.GetBool("allow_localhost_origins"),
	}, nil
}
