package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const profileFileName = ".portalctl.yaml"

// Profile is the state kept between invocations
type Profile struct {
	BaseURL  string         `yaml:"base_url"`
	Username string         `yaml:"username,omitempty"`
	Cookies  []StoredCookie `yaml:"cookies,omitempty"`
}

type StoredCookie struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// DefaultProfilePath is ~/.portalctl.yaml
func DefaultProfilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return profileFileName
	}
	return filepath.Join(home, profileFileName)
}

// LoadProfile reads path; a missing file yields an empty profile
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Profile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse profile %s: %w", path, err)
	}
	return &p, nil
}

// Save writes the profile with owner-only permissions
func (p *Profile) Save(path string) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create profile dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}
	return nil
}

// Restore loads the stored cookies into jar
func (p *Profile) Restore(jar http.CookieJar, u *url.URL) {
	cookies := make([]*http.Cookie, 0, len(p.Cookies))
	for _, c := range p.Cookies {
		cookies = append(cookies, &http.Cookie{Name: c.Name, Value: c.Value, Path: "/"})
	}
	jar.SetCookies(u, cookies)
}

// Capture replaces the stored cookies with the jar's current ones
func (p *Profile) Capture(jar http.CookieJar, u *url.URL) {
	p.Cookies = nil
	for _, c := range jar.Cookies(u) {
		p.Cookies = append(p.Cookies, StoredCookie{Name: c.Name, Value: c.Value})
	}
}

// Clear forgets the signed-in user
func (p *Profile) Clear() {
	p.Username = ""
	p.Cookies = nil
}
