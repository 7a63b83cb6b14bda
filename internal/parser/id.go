package parser

import (
	"strconv"
	"strings"
)

// ParseID parses a habit ID. A leading '#' is accepted.
func ParseID(input string) (int64, error) {
	s := strings.TrimPrefix(strings.TrimSpace(input), "#")
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, NewIDError(input)
	}
	return id, nil
}
