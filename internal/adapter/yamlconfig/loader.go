package yamlconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// envPrefix namespaces every override variable; section and key are
// joined with a double underscore, e.g. BARRACUDA_SCANNER__USER_AGENT.
const envPrefix = "BARRACUDA_"

// Load reads the configuration file at path, applies environment
// overrides and validates the result. An empty path yields the
// defaults with overrides applied.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v, ok := lookup("DEBUG"); ok {
		cfg.Debug = strings.EqualFold(v, "true")
	}
	if v, ok := lookupInt("SCANNER__MAX_CONCURRENT_REQUESTS"); ok {
		cfg.Scanner.MaxConcurrentRequests = v
	}
	if v, ok := lookupInt("SCANNER__REQUEST_TIMEOUT"); ok {
		cfg.Scanner.RequestTimeout = v
	}
	if v, ok := lookupInt("SCANNER__RETRY_ATTEMPTS"); ok {
		cfg.Scanner.RetryAttempts = v
	}
	if v, ok := lookup("SCANNER__USER_AGENT"); ok {
		cfg.Scanner.UserAgent = v
	}
	if v, ok := lookup("SCANNER__PROXY"); ok {
		cfg.Scanner.Proxy = v
	}
	if v, ok := lookup("REPORTS__OUTPUT_DIRECTORY"); ok {
		cfg.Reports.OutputDirectory = v
	}
	if v, ok := lookup("LOGGING__LEVEL"); ok {
		cfg.Logging.Level = strings.ToLower(v)
	}
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(envPrefix + key)
	return v, ok && v != ""
}

func lookupInt(key string) (int, bool) {
	v, ok := lookup(key)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

const sampleConfig = `# barracuda scanner configuration
scanner:
  max_concurrent_requests: 10
  request_timeout: 30
  retry_attempts: 3
  delay_between_requests: 0.1
  user_agent: "barracuda/0.1.0 security scanner"
  follow_redirects: true
  verify_ssl: true

plugins:
  enabled_plugins: []
  disabled_plugins: []
  plugin_directories:
    - ./plugins

reports:
  default_format: json
  include_request_response: false
  include_payloads: true
  max_response_size: 1048576
  output_directory: ./reports

logging:
  level: info
  file_path: ""

debug: false
`

// WriteSample writes an annotated starter configuration to path,
// creating parent directories as needed.
func WriteSample(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config %s: %w", path, err)
	}
	return nil
}
