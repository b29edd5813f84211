package telemetry

import (
	"time"

	"github.com/DataDog/datadog-go/v5/statsd"
)

var (
	_defaultBufferLen = 500
	_defaultTimeout   = 200 * time.Millisecond
	_defaultRate      = 1.0
)

// DefaultTracer is the default client and is used when calling a function on
// the telemetry package with a context with no associated telemetry.Client
// instance.
//
// DefaultTracer by default discards all metrics. You can change its
// implementation by setting this variable to an instantiated client.
var DefaultTracer = NewNoOpClient()

// Client is a handle for recording metrics. Implementations must be safe for
// concurrent use by multiple goroutines.
type Client interface {
	Close() error
	Gauge(name string, value float64, tags []string)
	Count(name string, value int64, tags []string)
	Incr(name string, tags []string)
	Decr(name string, tags []string)
	Histogram(name string, value float64, tags []string)
	Distribution(name string, value float64, tags []string)
	Set(name string, value string, tags []string)
	Timing(name string, value time.Duration, tags []string)
	TimeInMilliseconds(name string, value float64, tags []string)
}

type client struct {
	statsd statsd.ClientInterface
}

var _ Client = (*client)(nil)

// Config contains the attributes required by NewClient to bootstrap itself.
type Config struct {
	// StatsdAddress is the address of the datadog agent to which statsd must
	// connect to.
	StatsdAddress string
}

// NewClient returns a new Client connected to the configured statsd agent.
func NewClient(cfg Config) (Client, error) {
	opts := []statsd.Option{
		statsd.WithMaxMessagesPerPayload(_defaultBufferLen),
		statsd.WithWriteTimeout(_defaultTimeout),
	}

	s, err := statsd.New(cfg.StatsdAddress, opts...)
	if err != nil {
		return nil, err
	}

	return &client{
		statsd: s,
	}, nil
}

// NewNoOpClient is a telemetry client that does nothing. Can be useful in
// testing situations for library users.
func NewNoOpClient() Client {
	return &client{
		statsd: &statsd.NoOpClient{},
	}
}

// Close closes the telemetry client, flushing all metrics contained in
// buffers.
func (c *client) Close() error {
	return c.statsd.Close()
}

// Gauge measures the value of a metric at a particular time.
func (c *client) Gauge(name string, value float64, tags []string) {
	_ = c.statsd.Gauge(name, value, tags, _defaultRate)
}

// Count tracks how many times something happened per second.
func (c *client) Count(name string, value int64, tags []string) {
	_ = c.statsd.Count(name, value, tags, _defaultRate)
}

// Incr is just Count of 1.
func (c *client) Incr(name string, tags []string) {
	_ = c.statsd.Incr(name, tags, _defaultRate)
}

// Decr is just Count of -1.
func (c *client) Decr(name string, tags []string) {
	_ = c.statsd.Decr(name, tags, _defaultRate)
}

// Histogram tracks the statistical distribution of a set of values on each
// host.
func (c *client) Histogram(name string, value float64, tags []string) {
	_ = c.statsd.Histogram(name, value, tags, _defaultRate)
}

// Distribution tracks the statistical distribution of a set of values across
// your infrastructure.
func (c *client) Distribution(name string, value float64, tags []string) {
	_ = c.statsd.Distribution(name, value, tags, _defaultRate)
}

// Set counts the number of unique elements in a group.
func (c *client) Set(name string, value string, tags []string) {
	_ = c.statsd.Set(name, value, tags, _defaultRate)
}

// Timing sends timing information, it is an alias for TimeInMilliseconds.
func (c *client) Timing(name string, value time.Duration, tags []string) {
	_ = c.statsd.Timing(name, value, tags, _defaultRate)
}

// TimeInMilliseconds sends timing information in milliseconds.
// It is flushed by statsd with percentiles, mean and other info.
func (c *client) TimeInMilliseconds(name string, value float64, tags []string) {
	_ = c.statsd.TimeInMilliseconds(name, value, tags, _defaultRate)
}
