package sahha

import (
	"time"

	"golang.org/x/oauth2"
)

// TokenTypeProfile is sent as the Authorization scheme on profile calls.
const TokenTypeProfile = "Profile"

type RegisterRequest struct {
	ExternalID string `json:"externalId"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type TokenResponse struct {
	ProfileToken string `json:"profileToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
	TokenType    string `json:"tokenType"`
}

func (r TokenResponse) Token(now time.Time) *oauth2.Token {
	tokenType := r.TokenType
	if tokenType == "" {
		tokenType = TokenTypeProfile
	}

	token := &oauth2.Token{
		AccessToken:  r.ProfileToken,
		RefreshToken: r.RefreshToken,
		TokenType:    tokenType,
	}
	if r.ExpiresIn > 0 {
		token.Expiry = now.Add(time.Duration(r.ExpiresIn) * time.Second)
	}
	return token
}

type DeviceInformation struct {
	SDKID         string `json:"sdkId"`
	SDKVersion    string `json:"sdkVersion"`
	AppID         string `json:"appId"`
	AppVersion    string `json:"appVersion"`
	DeviceType    string `json:"deviceType"`
	DeviceModel   string `json:"deviceModel"`
	System        string `json:"system"`
	SystemVersion string `json:"systemVersion"`
	TimeZone      string `json:"timeZone"`
}
