package rest

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/luizaranda/go-restclient/pkg/transport/httpclient"
)

var _validate = validator.New()

// Config is a declarative alternative to New for applications that build
// their clients from configuration files.
type Config struct {
	// BaseURL is prefixed to every route. Required, must be a valid URL.
	BaseURL string `validate:"required,url"`

	// Headers are installed as default headers on the client.
	Headers map[string]string

	// Timeout applies to each request made by the underlying httpclient.
	// Zero keeps the httpclient default.
	Timeout time.Duration `validate:"gte=0"`
}

// NewFromConfig validates cfg and builds a Client backed by an httpclient
// Requester. Options behave exactly as with New.
func NewFromConfig(cfg Config, opts ...ClientOption) (*Client, error) {
	if err := _validate.Struct(cfg); err != nil {
		return nil, err
	}

	var hopts []httpclient.Option
	if cfg.Timeout > 0 {
		hopts = append(hopts, httpclient.WithTimeout(cfg.Timeout))
	}

	c, err := New(httpclient.New(hopts...), cfg.BaseURL, opts...)
	if err != nil {
		return nil, err
	}

	c.AddDefaultHeaders(cfg.Headers)

	return c, nil
}
