package mail

import (
	"fmt"
	"net/url"
)

// PasswordReset builds the reset email. The token travels in the URL
// fragment, not the query.
func PasswordReset(from, to, resetURL, token string) (Message, error) {
	u, err := url.Parse(resetURL)
	if err != nil {
		return Message{}, fmt.Errorf("parse reset url: %w", err)
	}

	u.Fragment = url.Values{
		"access_token": {token},
		"type":         {"recovery"},
	}.Encode()

	return Message{
		From:    from,
		To:      to,
		Subject: "Reset your password",
		Body:    fmt.Sprintf("Follow this link to choose a new password:\n\n%s\n", u.String()),
	}, nil
}
