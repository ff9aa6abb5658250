package mail

import (
	"net/url"
	"strings"
)

// MailtoURI builds the mail-composition URI handed to the customer's email
// client. Subject and body are percent-encoded; query escaping alone would
// encode spaces as '+', which mail clients render literally.
func MailtoURI(recipient string, m Message) string {
	var b strings.Builder
	b.WriteString("mailto:")
	b.WriteString(recipient)
	b.WriteString("?subject=")
	b.WriteString(encode(m.Subject))
	b.WriteString("&body=")
	b.WriteString(encode(m.Body))
	return b.String()
}

func encode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
