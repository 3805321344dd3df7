package main

import (
	"errors"

	"github.com/hrmail/hrmail/internal/credential"
	"github.com/hrmail/hrmail/internal/email"
	"github.com/hrmail/hrmail/internal/service"
)

// describeError turns a command error into the message shown to the user.
func describeError(err error) string {
	switch service.KindOf(err) {
	case service.KindUnknownTemplate:
		return err.Error() + " (run `hrmail templates list` to see the available keys)"
	case service.KindCorruptTemplateStore:
		return err.Error() + " (fix the file or run `hrmail templates reset`)"
	case service.KindAuth:
		return describeAuthError(err)
	case service.KindTransport:
		tErr, _ := email.IsTransportError(err)
		return "Gmail did not accept the message: " + tErr.Message
	default:
		return err.Error()
	}
}

func describeAuthError(err error) string {
	switch {
	case errors.Is(err, credential.ErrMissingClientConfig):
		return err.Error() + " (download the OAuth client JSON from the Google Cloud console and set files.client_config)"
	case errors.Is(err, credential.ErrUserCancelled):
		return "authorization was not completed, nothing was sent"
	case errors.Is(err, credential.ErrNetworkFailure):
		return err.Error() + " (check the network connection and try again)"
	default:
		return err.Error()
	}
}
