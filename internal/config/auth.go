package config

import "github.com/casdoor/casdoor-go-sdk/casdoorsdk"

// AuthConfig holds the Casdoor application used to verify counselor tokens.
type AuthConfig struct {
	Enabled          bool
	Endpoint         string
	ClientID         string
	ClientSecret     string
	Certificate      string
	OrganizationName string
	ApplicationName  string
}

// InitCasdoor registers the application with the Casdoor SDK's global client.
func (c *AuthConfig) InitCasdoor() {
	casdoorsdk.InitConfig(c.Endpoint, c.ClientID, c.ClientSecret, c.Certificate, c.OrganizationName, c.ApplicationName)
}
