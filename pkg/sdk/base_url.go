package sdk

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingAPIHost is returned by ResolveBaseURL when host or port is empty.
var ErrMissingAPIHost = errors.New("API host and port must be configured")

// ResolveBaseURL builds the API root from its parts. Without an explicit scheme,
// port 443 selects https and drops the port (tunnels such as ngrok); any other
// port selects plain http.
func ResolveBaseURL(host, port, scheme string) (string, error) {
	host = strings.TrimSpace(host)
	port = strings.TrimSpace(port)
	scheme = strings.ToLower(strings.TrimSpace(scheme))
	if host == "" || port == "" {
		return "", ErrMissingAPIHost
	}

	if scheme == "" {
		scheme = "http"
		if port == "443" {
			scheme = "https"
		}
	}
	if scheme != "http" && scheme != "https" {
		return "", fmt.Errorf("unsupported API scheme %q", scheme)
	}

	if (scheme == "https" && port == "443") || (scheme == "http" && port == "80") {
		return fmt.Sprintf("%s://%s/api", scheme, host), nil
	}
	return fmt.Sprintf("%s://%s:%s/api", scheme, host, port), nil
}
