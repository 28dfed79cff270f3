package whatsapp

// Config represents the configuration for the WhatsApp Cloud API client
type Config struct {
	// AccessToken is the Meta Graph API bearer token
	AccessToken string

	// PhoneNumberID is the sending business phone number identifier
	PhoneNumberID string

	// BaseURL is the Graph API base URL
	BaseURL string
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.AccessToken == "" {
		return ErrInvalidRequest
	}
	if c.PhoneNumberID == "" {
		return ErrInvalidRequest
	}
	if c.BaseURL == "" {
		return ErrInvalidRequest
	}
	return nil
}
