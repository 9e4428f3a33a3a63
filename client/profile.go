package client

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// maxProfileVersion is the newest share-credentials format this client
// understands.
const maxProfileVersion = 1

// Profile holds the credentials needed to reach a sharing server. It is the
// JSON file a data provider hands to a recipient.
type Profile struct {
	ShareCredentialsVersion int    `mapstructure:"shareCredentialsVersion"`
	Endpoint                string `mapstructure:"endpoint"`
	BearerToken             string `mapstructure:"bearerToken"`
	ExpirationTime          string `mapstructure:"expirationTime"`
}

// LoadProfile reads a share profile from a JSON file.
func LoadProfile(path string) (*Profile, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}

	var profile Profile
	if err := v.Unmarshal(&profile); err != nil {
		return nil, fmt.Errorf("unmarshal profile: %w", err)
	}

	if profile.Endpoint == "" {
		return nil, fmt.Errorf("profile %s: missing endpoint", path)
	}
	if profile.ShareCredentialsVersion > maxProfileVersion {
		return nil, fmt.Errorf("profile %s: share credentials version %d not supported (max %d)",
			path, profile.ShareCredentialsVersion, maxProfileVersion)
	}

	return &profile, nil
}

// Expired reports whether the profile's bearer token has expired. Profiles
// without an expiration time never expire. An unparseable expiration time
// is treated as expired.
func (p *Profile) Expired(now time.Time) bool {
	if p.ExpirationTime == "" {
		return false
	}
	expiry, err := time.Parse(time.RFC3339, p.ExpirationTime)
	if err != nil {
		return true
	}
	return now.After(expiry)
}
