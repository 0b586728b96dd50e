package sqlite

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

const memoryPath = ":memory:"

// connPragmas are applied by the driver to every pooled connection.
var connPragmas = []string{
	"foreign_keys(1)",
	"busy_timeout(30000)",
	"journal_mode(WAL)",
}

// parseDSN turns a sqlite:// DSN into a driver DSN carrying the connection
// pragmas. It reports whether the database lives in memory.
func parseDSN(dsn string) (string, bool, error) {
	if !strings.HasPrefix(dsn, "sqlite://") {
		return "", false, fmt.Errorf("invalid sqlite DSN scheme, expected sqlite://")
	}
	rest := strings.TrimPrefix(dsn, "sqlite://")

	path, rawQuery, _ := strings.Cut(rest, "?")
	if path == "" {
		return "", false, fmt.Errorf("sqlite DSN has no database path")
	}
	memory := path == memoryPath
	if !memory {
		unescaped, err := url.PathUnescape(path)
		if err != nil {
			return "", false, fmt.Errorf("unescaping path: %w", err)
		}
		path = unescaped
		if !filepath.IsAbs(path) && !strings.HasPrefix(path, "./") {
			path = "./" + path
		}
	}

	params, err := url.ParseQuery(rawQuery)
	if err != nil {
		return "", false, fmt.Errorf("parsing DSN parameters: %w", err)
	}
	for _, pragma := range connPragmas {
		if memory && strings.HasPrefix(pragma, "journal_mode") {
			continue
		}
		params.Add("_pragma", pragma)
	}
	if !memory && params.Get("_txlock") == "" {
		params.Set("_txlock", "immediate")
	}
	return path + "?" + params.Encode(), memory, nil
}
