package ciutil

import "log/slog"

// GetTestDatabaseURL returns the database URL for integration tests from
// DATABASE_URL, falling back to MEDIAHUB_TEST_DB_URL. It returns "" when
// neither is set.
func GetTestDatabaseURL(logger *slog.Logger) string {
	dbURL := GetEnvWithFallbacks([]string{EnvDatabaseURL, EnvMediahubTestDBURL}, "", logger)
	if dbURL != "" && logger != nil {
		logger.Debug("Using test database", "url", MaskSensitiveValue(dbURL))
	}
	return dbURL
}
