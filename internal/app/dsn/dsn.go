package dsn

import (
	"net"
	"net/url"
	"os"
)

// FromEnv builds a postgres connection URL from DB_* variables. Values are
// URL-escaped, so blanks and quotes in a password survive.
func FromEnv() string {
	host := getenv("DB_HOST", "localhost")
	port := getenv("DB_PORT", "5432")
	user := getenv("DB_USER", "postgres")
	pass := os.Getenv("DB_PASS")
	dbname := getenv("DB_NAME", "port_registry")

	u := &url.URL{
		Scheme: "postgres",
		User:   url.User(user),
		Host:   net.JoinHostPort(host, port),
		Path:   "/" + dbname,
	}
	if pass != "" {
		u.User = url.UserPassword(user, pass)
	}
	q := url.Values{}
	q.Set("sslmode", "disable")
	u.RawQuery = q.Encode()
	return u.String()
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
