package email

import (
	"strings"

	"github.com/emersion/go-message/mail"
)

// OutgoingMessage is a message ready to be serialized. Empty Cc and Bcc are
// omitted from the wire message.
type OutgoingMessage struct {
	From     string // optional sender, "Name <address>" or a bare address
	To       string // recipient address
	Cc       string // carbon copy recipients, comma separated
	Bcc      string // blind carbon copy recipients, comma separated
	Subject  string // email subject
	HTMLBody string // HTML email body
}

// Compose builds an OutgoingMessage with an HTML body. Address fields are trimmed.
func Compose(to, subject, htmlBody, cc, bcc string) *OutgoingMessage {
	return &OutgoingMessage{
		To:       strings.TrimSpace(to),
		Cc:       strings.TrimSpace(cc),
		Bcc:      strings.TrimSpace(bcc),
		Subject:  subject,
		HTMLBody: htmlBody,
	}
}

// FormatAddress renders a sender as "Name <address>", or just the address
// when name is empty. An empty address yields "".
func FormatAddress(name, address string) string {
	address = strings.TrimSpace(address)
	if address == "" {
		return ""
	}
	a := &mail.Address{Name: strings.TrimSpace(name), Address: address}
	if a.Name == "" {
		return address
	}
	return a.String()
}

// ParseAddressList parses a comma separated list of addresses.
// An empty (or blank) list yields no addresses and no error.
func ParseAddressList(list string) ([]*mail.Address, error) {
	if strings.TrimSpace(list) == "" {
		return nil, nil
	}
	return mail.ParseAddressList(list)
}
