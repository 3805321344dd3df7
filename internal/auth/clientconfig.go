package auth

import (
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/hrmail/hrmail/internal/credential"
)

// LoadClientConfig reads the OAuth client JSON downloaded from the Google
// Cloud console ("installed" or "web" application).
func LoadClientConfig(path string, scopes []string) (*oauth2.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, credential.NewAuthError(
				credential.ReasonMissingClientConfig,
				fmt.Sprintf("client configuration file %q not found; download the OAuth client JSON from the Google Cloud console and save it there", path),
				nil,
			)
		}
		return nil, credential.NewAuthError(credential.ReasonMissingClientConfig,
			fmt.Sprintf("cannot read client configuration file %q", path), err)
	}

	cfg, err := google.ConfigFromJSON(data, scopes...)
	if err != nil {
		return nil, credential.NewAuthError(credential.ReasonMissingClientConfig,
			fmt.Sprintf("client configuration file %q is not a valid OAuth client JSON", path), err)
	}
	return cfg, nil
}
