package writers

import "time"

type ConfigForwardInterface interface {
	Host() string
	Token() string
	Timeout() time.Duration
	RetryCount() int
	RetryDelay() time.Duration
}
