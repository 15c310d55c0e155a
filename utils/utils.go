package utils

import (
	"fmt"
	"net/url"
)

const LockKeyPrefix = "warden_lock_"

// GetLockName namespaces a caller's key; an empty prefix falls back to LockKeyPrefix
func GetLockName(prefix, key string) string {
	if prefix == "" {
		prefix = LockKeyPrefix
	}
	return prefix + key
}

// RedactURL strips credentials, query and database from a backend URL so it can be logged
func RedactURL(urlString string) string {
	u, err := url.Parse(urlString)
	if err != nil {
		return urlString
	}
	if u.Scheme == "file" {
		return fmt.Sprintf("%s://%s", u.Scheme, u.Path)
	}
	return fmt.Sprintf("%s://%s", u.Scheme, u.Host)
}
