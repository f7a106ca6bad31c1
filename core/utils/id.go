package utils

import (
	"crypto/rand"
	"encoding/base64"

	"github.com/gosimple/slug"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const idAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

func GenerateID() string {
	id, err := gonanoid.Generate(idAlphabet, 7)
	if err != nil {
		return ""
	}
	return id
}

// GenerateReference builds the public booking reference handed back to a
// requester on submission, e.g. "annual-gala-x3Fb9Qa".
func GenerateReference(name string) string {
	s := slug.Make(name)
	if len(s) > 40 {
		s = s[:40]
	}
	if s == "" {
		s = "event"
	}
	return s + "-" + GenerateID()
}

// GenerateRandomString generates a cryptographically secure random string
func GenerateRandomString(length int) string {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to nanoid if crypto/rand fails
		id, _ := gonanoid.Generate(idAlphabet, length)
		return id
	}
	return base64.URLEncoding.EncodeToString(bytes)[:length]
}
