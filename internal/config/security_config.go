package config

import "time"

type SecurityConfig interface {
	GetOTPExpiry() time.Duration
	GetMaxUploadSize() int64
	GetSecureCookies() bool
}

type Security struct{}

var _ SecurityConfig = Security{}

func (Security) GetOTPExpiry() time.Duration {
	return 10 * time.Minute
}

func (Security) GetMaxUploadSize() int64 {
	return 10 << 20 // 10 MiB per file
}

// GetSecureCookies forces Secure/SameSite=None cookies regardless of request scheme
func (Security) GetSecureCookies() bool {
	return GetEnv("SECURE_COOKIES", "") == "true"
}
