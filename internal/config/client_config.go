package config

import "strings"

const apiBaseURLVar = "PORTAL_API_BASE_URL"

// ClientConfig is read by portal API consumers such as the CLI
type ClientConfig interface {
	GetAPIBaseURL() string
}

type Client struct{}

var _ ClientConfig = Client{}

func (Client) GetAPIBaseURL() string {
	return strings.TrimRight(GetEnv(apiBaseURLVar, "http://localhost:8080"), "/")
}
