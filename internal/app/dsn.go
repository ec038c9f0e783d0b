package app

import (
	"net/url"
	"strings"

	"github.com/riskibarqy/survivor-league/internal/config"
)

// buildDSN prepares the connection string for the pq driver. Crunchy
// Bridge and some pgbouncer setups need prepared binary results turned
// off, which pq exposes as a query parameter.
func buildDSN(cfg config.Config) string {
	dsn := strings.TrimSpace(cfg.DBURL)
	if !cfg.DBDisablePreparedBinary {
		return dsn
	}

	parsed, err := url.Parse(dsn)
	if err != nil || parsed == nil {
		return dsn
	}

	query := parsed.Query()
	if query.Get("disable_prepared_binary_result") == "" {
		query.Set("disable_prepared_binary_result", "yes")
		parsed.RawQuery = query.Encode()
	}

	return parsed.String()
}

// databaseName extracts the database name for span attributes. It
// accepts both URL-style and key/value-style connection strings.
func databaseName(dsn string) string {
	dsn = strings.TrimSpace(dsn)

	if parsed, err := url.Parse(dsn); err == nil && parsed != nil && parsed.Scheme != "" {
		if name := strings.TrimPrefix(parsed.Path, "/"); strings.TrimSpace(name) != "" {
			return strings.TrimSpace(name)
		}
	}

	for _, field := range strings.Fields(dsn) {
		name, ok := strings.CutPrefix(field, "dbname=")
		if !ok {
			continue
		}
		if name = strings.Trim(strings.TrimSpace(name), `"'`); name != "" {
			return name
		}
	}

	return ""
}
