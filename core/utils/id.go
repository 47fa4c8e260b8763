package utils

import (
	"fmt"
	"time"

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

// GenerateEventID builds a time-seeded id for locally created calendar
// events. Remote events keep the provider's id instead.
func GenerateEventID() string {
	return fmt.Sprintf("event_%d_%s", time.Now().UnixMilli(), GenerateID())
}
