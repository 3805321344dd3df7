package credential

import (
	"strings"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
)

// authorizedUserType marks the persisted file as a Google "authorized user"
// credential, the layout Google's OAuth client libraries read back.
const authorizedUserType = "authorized_user"

// expirySkew treats tokens about to expire as already expired, so a send
// never starts with a token that dies mid-request.
const expirySkew = time.Minute

// RequiredScopes returns the Gmail scopes every stored credential must carry.
func RequiredScopes() []string {
	return []string{
		gmail.GmailSendScope,
		gmail.GmailComposeScope,
		gmail.GmailModifyScope,
	}
}

// Credential is an OAuth access/refresh token pair plus the client identity
// needed to refresh it without the client configuration file.
type Credential struct {
	Type         string    `json:"type,omitempty"`
	AccessToken  string    `json:"token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	TokenType    string    `json:"token_type,omitempty"`
	TokenURI     string    `json:"token_uri,omitempty"`
	ClientID     string    `json:"client_id,omitempty"`
	ClientSecret string    `json:"client_secret,omitempty"`
	Scopes       []string  `json:"scopes"`
	Expiry       time.Time `json:"expiry,omitzero"`
}

// FromToken builds a Credential from a token issued for cfg.
// The granted scopes come from the token response; cfg.Scopes is the fallback.
func FromToken(tok *oauth2.Token, cfg *oauth2.Config) *Credential {
	c := &Credential{
		Type:         authorizedUserType,
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
		Expiry:       tok.Expiry.UTC(),
		Scopes:       scopesFromToken(tok),
	}
	if cfg != nil {
		c.ClientID = cfg.ClientID
		c.ClientSecret = cfg.ClientSecret
		c.TokenURI = cfg.Endpoint.TokenURL
		if len(c.Scopes) == 0 {
			c.Scopes = append([]string(nil), cfg.Scopes...)
		}
	}
	return c
}

// Token converts the credential into an oauth2 token for API clients.
func (c *Credential) Token() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  c.AccessToken,
		RefreshToken: c.RefreshToken,
		TokenType:    c.TokenType,
		Expiry:       c.Expiry,
	}
}

// HasScopes reports whether every scope in required was granted.
func (c *Credential) HasScopes(required []string) bool {
	granted := make(map[string]struct{}, len(c.Scopes))
	for _, s := range c.Scopes {
		granted[s] = struct{}{}
	}
	for _, s := range required {
		if _, ok := granted[s]; !ok {
			return false
		}
	}
	return true
}

// Expired reports whether the access token is expired at now.
// A zero expiry never expires.
func (c *Credential) Expired(now time.Time) bool {
	if c.Expiry.IsZero() {
		return false
	}
	return !now.Add(expirySkew).Before(c.Expiry)
}

// Valid reports whether the access token can be used at now.
func (c *Credential) Valid(now time.Time) bool {
	return c.AccessToken != "" && !c.Expired(now)
}

func scopesFromToken(tok *oauth2.Token) []string {
	raw, ok := tok.Extra("scope").(string)
	if !ok {
		return nil
	}
	return strings.Fields(raw)
}
