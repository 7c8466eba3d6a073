// Package config provides configuration management for the documenter.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Report: output directory, document title, changes-only rendering
//   - Viewer: report viewer port
//   - Storage: S3/MinIO credentials and bucket settings
//   - Log: Logging level and format
//   - Database: run-history connection details (optional)
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Report.OutputDir)
package config
