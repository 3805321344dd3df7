package email

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/emersion/go-message"
	"github.com/emersion/go-message/mail"
)

// alternativeBoundary is fixed so identical messages serialize identically.
const alternativeBoundary = "hrmail_alternative_boundary"

// Serialize encodes msg the way the Gmail API expects it in Message.Raw: an
// RFC 5322 message with a multipart/alternative HTML body, base64url encoded
// without line breaks.
func Serialize(msg *OutgoingMessage) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteMIME(&buf, msg); err != nil {
		return nil, err
	}

	out := make([]byte, base64.URLEncoding.EncodedLen(buf.Len()))
	base64.URLEncoding.Encode(out, buf.Bytes())
	return out, nil
}

// WriteMIME writes msg as a MIME message to w.
func WriteMIME(w io.Writer, msg *OutgoingMessage) error {
	if msg.To == "" {
		return fmt.Errorf("email: %w", ErrNoRecipient)
	}

	var h mail.Header
	h.Set("MIME-Version", "1.0")

	if msg.From != "" {
		from, err := mail.ParseAddress(msg.From)
		if err != nil {
			return fmt.Errorf("email: invalid From address: %w", err)
		}
		h.SetAddressList("From", []*mail.Address{from})
	}

	for _, field := range []struct{ key, value string }{
		{"To", msg.To},
		{"Cc", msg.Cc},
		{"Bcc", msg.Bcc},
	} {
		addrs, err := ParseAddressList(field.value)
		if err != nil {
			return fmt.Errorf("email: invalid %s address: %w", field.key, err)
		}
		if len(addrs) > 0 {
			h.SetAddressList(field.key, addrs)
		}
	}

	h.SetSubject(msg.Subject)
	h.SetContentType("multipart/alternative", map[string]string{"boundary": alternativeBoundary})

	mw, err := message.CreateWriter(w, h.Header)
	if err != nil {
		return fmt.Errorf("email: failed to create message writer: %w", err)
	}

	var ph message.Header
	ph.SetContentType("text/html", map[string]string{"charset": "utf-8"})
	ph.Set("Content-Transfer-Encoding", "quoted-printable")

	pw, err := mw.CreatePart(ph)
	if err != nil {
		return fmt.Errorf("email: failed to create HTML part: %w", err)
	}
	if _, err := io.WriteString(pw, msg.HTMLBody); err != nil {
		return fmt.Errorf("email: failed to write HTML part: %w", err)
	}
	if err := pw.Close(); err != nil {
		return fmt.Errorf("email: failed to close HTML part: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("email: failed to close message: %w", err)
	}
	return nil
}
