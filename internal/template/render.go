package template

import "strings"

// NamePlaceholder is replaced with the recipient's name.
const NamePlaceholder = "[NOME_CANDIDATO]"

var lineBreaks = strings.NewReplacer("\r\n", "<br>", "\n", "<br>", "\r", "<br>")

// Render substitutes every name placeholder in body and converts line breaks
// to HTML, since the message body is sent as HTML. Other bracketed tokens are
// left untouched.
func Render(body, name string) string {
	return lineBreaks.Replace(strings.ReplaceAll(body, NamePlaceholder, name))
}

// HasNamePlaceholder reports whether body personalizes the greeting.
func HasNamePlaceholder(body string) bool {
	return strings.Contains(body, NamePlaceholder)
}
