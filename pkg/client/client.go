package client

import (
	"net/http"
	"net/url"
)

// Client is a Go client for the garden HTTP API.
type Client struct {
	baseURL    *url.URL
	token      string
	httpClient *http.Client
}

func New(funcs ...OptionFunc) *Client {
	opts := NewOptions(funcs...)
	return &Client{
		baseURL:    opts.BaseURL,
		token:      opts.Token,
		httpClient: opts.HTTPClient,
	}
}
