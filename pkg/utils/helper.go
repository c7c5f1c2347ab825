package utils

import (
	"strconv"

	"github.com/google/uuid"
)

// ParseID parses a positive integer path parameter.
func ParseID(value string) (int64, bool) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

func GenerateSessionToken() uuid.UUID {
	return uuid.New()
}
