package main

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all environment variables for the bulk edit service.
type Config struct {
	Port            string // Service port (default: 8083)
	CatalogAPIURL   string // Base URL of the remote catalog API
	CatalogAPIToken string // Access token for the remote catalog API
	RedisURL        string // Redis connection URL
	JobsTable       string // DynamoDB table holding the job history
	ReportBucket    string // S3 bucket for archived reports
	ReportPrefix    string // Key prefix for archived reports
	Concurrency     int    // Parallel item updates per batch
}

// LoadConfig loads environment variables into a Config struct and
// validates them.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:            os.Getenv("PORT"),
		CatalogAPIURL:   os.Getenv("CATALOG_API_URL"),
		CatalogAPIToken: os.Getenv("CATALOG_API_TOKEN"),
		RedisURL:        os.Getenv("REDIS_URL"),
		JobsTable:       os.Getenv("DDB_TABLE_BULK_EDIT_JOBS"),
		ReportBucket:    os.Getenv("AWS_S3_BUCKET"),
		ReportPrefix:    os.Getenv("AWS_S3_PREFIX"),
	}

	if cfg.Port == "" {
		cfg.Port = "8083"
	}
	if cfg.RedisURL == "" {
		cfg.RedisURL = "redis://redis:6379"
	}
	if cfg.JobsTable == "" {
		cfg.JobsTable = "BulkEditJobs"
	}
	if cfg.ReportBucket == "" {
		cfg.ReportBucket = "shopswift"
	}
	if cfg.ReportPrefix == "" {
		cfg.ReportPrefix = "bulk-edit-reports/"
	}

	cfg.Concurrency = 4
	if raw := os.Getenv("BULK_EDIT_CONCURRENCY"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid BULK_EDIT_CONCURRENCY: %q", raw)
		}
		cfg.Concurrency = n
	}

	// Validate required fields
	if cfg.CatalogAPIURL == "" {
		return nil, fmt.Errorf("CATALOG_API_URL is required")
	}
	if cfg.CatalogAPIToken == "" {
		return nil, fmt.Errorf("CATALOG_API_TOKEN is required")
	}

	return cfg, nil
}
