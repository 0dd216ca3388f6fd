package crawler

import (
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/net/proxy"
)

// NewHTTPClient builds the client used for every request.
// ProxyURL may be an http(s) or socks5 URL.
func NewHTTPClient(cfg Config) (*http.Client, error) {
	client := &http.Client{
		Timeout: cfg.Timeout,
	}
	if cfg.ProxyURL == "" {
		return client, nil
	}

	proxyURLParsed, err := url.Parse(cfg.ProxyURL)
	if err != nil {
		return nil, fmt.Errorf("parse proxy URL: %w", err)
	}

	if proxyURLParsed.Scheme == "socks5" || proxyURLParsed.Scheme == "socks5h" {
		dialer, err := proxy.FromURL(proxyURLParsed, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("create SOCKS5 dialer: %w", err)
		}
		transport := &http.Transport{}
		if cd, ok := dialer.(proxy.ContextDialer); ok {
			transport.DialContext = cd.DialContext
		} else {
			transport.Dial = dialer.Dial
		}
		client.Transport = transport
		return client, nil
	}

	client.Transport = &http.Transport{
		Proxy: http.ProxyURL(proxyURLParsed),
	}
	return client, nil
}
