package cli

import (
	"errors"
	"strconv"
)

func parseID(value string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("must be a positive integer")
	}
	return id, nil
}

func parsePage(args []string, index, defaultValue int) int {
	if len(args) <= index {
		return defaultValue
	}
	value, err := strconv.Atoi(args[index])
	if err != nil || value < 1 {
		return defaultValue
	}
	return value
}
