package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	type want struct {
		apiBaseURL     string
		requestTimeout time.Duration
		authToken      string
		logLevel       string
		runAddress     string
		authSecret     string
	}

	tests := []struct {
		name  string
		env   map[string]string
		flags []string
		args  []string
		want  want
	}{
		{
			name:  "defaults",
			env:   map[string]string{},
			flags: []string{},
			want: want{
				apiBaseURL:     "http://localhost:8080/api",
				requestTimeout: 10 * time.Second,
				logLevel:       "info",
				runAddress:     "localhost:8080",
			},
		},
		{
			name: "env only",
			env: map[string]string{
				"API_BASE_URL":    "https://shop.example.com/api",
				"REQUEST_TIMEOUT": "3s",
				"AUTH_TOKEN":      "env-token",
				"LOG_LEVEL":       "debug",
				"RUN_ADDRESS":     "localhost:9999",
				"AUTH_SECRET":     "env-secret",
			},
			flags: []string{},
			want: want{
				apiBaseURL:     "https://shop.example.com/api",
				requestTimeout: 3 * time.Second,
				authToken:      "env-token",
				logLevel:       "debug",
				runAddress:     "localhost:9999",
				authSecret:     "env-secret",
			},
		},
		{
			name: "flags only",
			env:  map[string]string{},
			flags: []string{
				"-u", "localhost:7000/api",
				"-t", "250ms",
				"-k", "flag-token",
				"-l", "warn",
				"-a", "localhost:7777",
				"-s", "flag-secret",
			},
			want: want{
				apiBaseURL:     "localhost:7000/api",
				requestTimeout: 250 * time.Millisecond,
				authToken:      "flag-token",
				logLevel:       "warn",
				runAddress:     "localhost:7777",
				authSecret:     "flag-secret",
			},
		},
		{
			name: "env overrides flags",
			env: map[string]string{
				"API_BASE_URL":    "http://env/api",
				"REQUEST_TIMEOUT": "5s",
				"RUN_ADDRESS":     "env:9000",
			},
			flags: []string{
				"-u", "http://flag/api",
				"-t", "1s",
				"-a", "flag:8000",
				"-l", "error",
			},
			want: want{
				apiBaseURL:     "http://env/api",
				requestTimeout: 5 * time.Second,
				logLevel:       "error",
				runAddress:     "env:9000",
			},
		},
		{
			name:  "non-positive timeout falls back to default",
			env:   map[string]string{},
			flags: []string{"-t", "0s"},
			want: want{
				apiBaseURL:     "http://localhost:8080/api",
				requestTimeout: 10 * time.Second,
				logLevel:       "info",
				runAddress:     "localhost:8080",
			},
		},
		{
			name:  "positional arguments are left for subcommands",
			env:   map[string]string{},
			flags: []string{"-k", "tok"},
			args:  []string{"products", "shirt"},
			want: want{
				apiBaseURL:     "http://localhost:8080/api",
				requestTimeout: 10 * time.Second,
				authToken:      "tok",
				logLevel:       "info",
				runAddress:     "localhost:8080",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)

			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			os.Args = append(append([]string{"test"}, tt.flags...), tt.args...)

			cfg, err := Parse()
			require.NoError(t, err)

			assert.Equal(t, tt.want.apiBaseURL, cfg.APIBaseURL)
			assert.Equal(t, tt.want.requestTimeout, cfg.RequestTimeout)
			assert.Equal(t, tt.want.authToken, cfg.AuthToken)
			assert.Equal(t, tt.want.logLevel, cfg.LogLevel)
			assert.Equal(t, tt.want.runAddress, cfg.RunAddress)
			assert.Equal(t, tt.want.authSecret, cfg.AuthSecret)
			if len(tt.args) > 0 {
				assert.Equal(t, tt.args, flag.Args())
			} else {
				assert.Empty(t, flag.Args())
			}
		})
	}
}

func TestParseConfig_InvalidEnvTimeout(t *testing.T) {
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	os.Args = []string{"test"}
	t.Setenv("REQUEST_TIMEOUT", "soon")

	_, err := Parse()
	require.Error(t, err)
}
