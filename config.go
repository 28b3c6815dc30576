package nls

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

const DefaultConfigPath = "./nls.yaml"
const ConfigPathEnvName = "NLS_CONFIG"
const OutputBucketEnvName = "NLS_OUTPUT_BUCKET"

const DefaultErrorWarningThreshold = 3
const DefaultRetries = 2

type Config struct {
	Debug                 bool                  `yaml:"debug"`
	TestMode              bool                  `yaml:"test_mode"`
	DumpDir               string                `yaml:"dump_dir"`
	DumpOutput            bool                  `yaml:"dump_output"`
	DumpOutputS3          bool                  `yaml:"dump_output_s3"`
	OutputBucket          string                `yaml:"output_bucket"`
	OutputBucketParameter string                `yaml:"output_bucket_parameter"`
	ErrorWarningThreshold int                   `yaml:"error_warning_threshold"`
	Retries               int                   `yaml:"retries"`
	NotifyOnError         bool                  `yaml:"notify_on_error"`
	FromEmailAddress      string                `yaml:"from_email_address"`
	SmtpUsername          string                `yaml:"smtp_user"`
	SmtpPassword          string                `yaml:"smtp_pass"`
	SmtpHost              string                `yaml:"smtp_host"`
	SmtpPort              int                   `yaml:"smtp_port"`
	NotifyEmailAddrs      []string              `yaml:"notify_email_addrs"`
	Feeds                 map[string]FeedConfig `yaml:"feeds"`
}

// FeedConfig points at one feed of raw location records.
type FeedConfig struct {
	Uri                string            `yaml:"uri"`
	Format             string            `yaml:"format"`
	Headers            map[string]string `yaml:"headers"`
	Timeout            int               `yaml:"timeout"`
	AllowedStatusCodes []int             `yaml:"allowed_status_codes"`
}

// NewDefaultConfig is the configuration used when no config file exists:
// validate only, write nothing.
func NewDefaultConfig() *Config {
	return &Config{
		ErrorWarningThreshold: DefaultErrorWarningThreshold,
		Retries:               DefaultRetries,
		Feeds:                 make(map[string]FeedConfig),
	}
}

func NewConfigDefaultPath() (*Config, error) {
	configPath := os.Getenv(ConfigPathEnvName)
	if len(configPath) == 0 {
		configPath = DefaultConfigPath
	}
	return NewConfig(configPath)
}

func NewConfig(configPath string) (*Config, error) {
	file, err := os.Open(configPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	config := NewDefaultConfig()
	if err := yaml.NewDecoder(file).Decode(config); err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}

	if err := config.finish(); err != nil {
		return nil, err
	}

	Log.Debugf("Loaded %d feed(s) from %s", len(config.Feeds), configPath)
	return config, nil
}

// ParseConfig reads configuration from YAML bytes.
func ParseConfig(data []byte) (*Config, error) {
	config := NewDefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, err
	}
	if err := config.finish(); err != nil {
		return nil, err
	}
	return config, nil
}

func (config *Config) finish() error {
	if config.Debug {
		Log.SetLevel("debug")
	}

	if config.ErrorWarningThreshold < 1 {
		config.ErrorWarningThreshold = DefaultErrorWarningThreshold
	}

	if config.Retries < 0 {
		config.Retries = 0
	}

	if config.Feeds == nil {
		config.Feeds = make(map[string]FeedConfig)
	}

	for name, feed := range config.Feeds {
		if len(feed.Uri) == 0 {
			return fmt.Errorf("Feed %s has no uri configured", name)
		}
		if len(feed.Format) > 0 {
			if _, err := ParseFeedFormat(feed.Format); err != nil {
				return fmt.Errorf("Feed %s: %v", name, err)
			}
		}
	}

	if config.DumpOutput && len(config.DumpDir) == 0 {
		return fmt.Errorf("dump_output is set but no dump_dir configured")
	}

	return nil
}

// ResolveOutputBucket finds the S3 bucket validated records go to: the
// configured name, then the environment, then the SSM parameter.
func (config *Config) ResolveOutputBucket() (string, error) {
	if len(config.OutputBucket) > 0 {
		return config.OutputBucket, nil
	}

	if bucket := os.Getenv(OutputBucketEnvName); len(bucket) > 0 {
		Log.Debugf("Output bucket found in environment variable %s", OutputBucketEnvName)
		config.OutputBucket = bucket
		return bucket, nil
	}

	if len(config.OutputBucketParameter) > 0 {
		bucket, err := GetAWSParameter(config.OutputBucketParameter, false)
		if err != nil {
			return "", fmt.Errorf("Could not get output bucket from AWS parameter '%s': %w", config.OutputBucketParameter, err)
		}
		Log.Debugf("Output bucket found in AWS parameter '%s'", config.OutputBucketParameter)
		config.OutputBucket = bucket
		return bucket, nil
	}

	return "", fmt.Errorf("Could not find output bucket in any of these places: output_bucket, $%s, or output_bucket_parameter", OutputBucketEnvName)
}
