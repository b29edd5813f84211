package rest

type authOptions struct {
	refreshToken string
	rawScheme    bool
}

// AuthOption configures a SetAuthorization call.
type AuthOption func(*authOptions)

// WithRefreshToken stores the given refresh token alongside the access token.
// It is handed back to the RefreshFunc when a refresh cycle fires.
func WithRefreshToken(token string) AuthOption {
	return func(options *authOptions) {
		options.refreshToken = token
	}
}

// WithoutBearerScheme sets the Authorization header to the bare access token
// instead of prefixing it with "Bearer ".
func WithoutBearerScheme() AuthOption {
	return func(options *authOptions) {
		options.rawScheme = true
	}
}

// SetAuthorization replaces the Authorization default header with
// "Bearer "+accessToken (or the bare token with WithoutBearerScheme) and
// replaces the stored refresh token with the one given via WithRefreshToken,
// clearing it when absent.
//
// This is the only sanctioned way for a RefreshFunc to install new
// credentials on the client.
func (c *Client) SetAuthorization(accessToken string, opts ...AuthOption) {
	var options authOptions
	for _, opt := range opts {
		opt(&options)
	}

	value := "Bearer " + accessToken
	if options.rawScheme {
		value = accessToken
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.defaultHeaders.Set("Authorization", value)
	c.refreshToken = options.refreshToken
}

// RefreshToken returns the refresh token currently stored on the client, or
// the empty string when none was set.
func (c *Client) RefreshToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.refreshToken
}
