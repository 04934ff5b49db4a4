// Package twiml renders the Twilio messaging response envelope returned
// by the inbound webhook.
package twiml

import (
	"encoding/xml"
	"fmt"
)

type response struct {
	XMLName xml.Name `xml:"Response"`
	Message string   `xml:"Message"`
}

// Reply wraps the given text in a <Response><Message> envelope. The text is
// XML-escaped by the encoder, so handler output can contain any characters.
func Reply(text string) (string, error) {
	payload, err := xml.Marshal(response{Message: text})
	if err != nil {
		return "", fmt.Errorf("marshal twiml response: %w", err)
	}
	return xml.Header + string(payload), nil
}
