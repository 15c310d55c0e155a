package utils

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// GenerateID returns prefix followed by a nanoid, 21 symbols unless l says otherwise
func GenerateID(prefix string, l ...int) (string, error) {
	id, err := gonanoid.New(l...)
	if err != nil {
		return "", err
	}
	return prefix + id, nil
}
