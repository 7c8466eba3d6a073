package config

import (
	"reflect"
	"strings"

	"sync-documenter/core/history"
	"sync-documenter/core/logger"
	"sync-documenter/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ReportConfig holds settings for report generation and assembly.
type ReportConfig struct {
	// OutputDir is the directory the assembled report is written to.
	OutputDir string `mapstructure:"output_dir" default:"./report"`
	// Title is the document title of the assembled report.
	Title string `mapstructure:"title" default:"Synchronization Configuration Comparison"`
	// ChangesOnly suppresses unchanged rows in the rendered tables.
	ChangesOnly bool `mapstructure:"changes_only" default:"false"`
}

// ViewerConfig holds settings for the report viewer.
type ViewerConfig struct {
	// Port is the port the viewer listens on.
	Port string `mapstructure:"port" default:"8080"`
}

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Report holds configuration for report generation.
	Report ReportConfig `mapstructure:"report"`
	// Viewer holds configuration for the report viewer.
	Viewer ViewerConfig `mapstructure:"viewer"`
	// Storage holds configuration for the object storage (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the run-history database.
	Database history.Config `mapstructure:"database"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env file if it exists
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. REPORT_OUTPUT_DIR -> report.output_dir)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
