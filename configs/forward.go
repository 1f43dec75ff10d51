package configs

import (
	"fmt"
	"net/url"
	"time"
)

type Forward struct {
	host       *url.URL
	timeout    time.Duration
	token      string
	retryCount int
	retryDelay time.Duration
}

// NewForward creates a new Forward config for a crash-report collector.
func NewForward(host, token string) (*Forward, error) {
	u, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid collector host: %s", host)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid collector host: %s", host)
	}

	return &Forward{
		host:       u,
		timeout:    time.Second * 3,
		token:      token,
		retryCount: 0,
		retryDelay: time.Millisecond * 300,
	}, nil
}

// SetTimeout sets timeout for the delivery requests
func (f *Forward) SetTimeout(timeout time.Duration) {
	f.timeout = timeout
}

// SetRetryCount sets how many times a failed delivery is retried
func (f *Forward) SetRetryCount(count int) {
	f.retryCount = count
}

// SetRetryDelay sets the pause between delivery retries
func (f *Forward) SetRetryDelay(delay time.Duration) {
	f.retryDelay = delay
}

// Host returns the collector endpoint
func (f *Forward) Host() string {
	return f.host.String()
}

// Token returns the collector auth token
func (f *Forward) Token() string {
	return f.token
}

// Timeout returns the delivery request timeout
func (f *Forward) Timeout() time.Duration {
	return f.timeout
}

// RetryCount returns how many times a failed delivery is retried
func (f *Forward) RetryCount() int {
	return f.retryCount
}

// RetryDelay returns the pause between delivery retries
func (f *Forward) RetryDelay() time.Duration {
	return f.retryDelay
}
