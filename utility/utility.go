package utility

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ParsePort returns the TCP port held in s, rejecting anything outside 1..65535
func ParsePort(s string) (uint16, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.Wrapf(err, "invalid port %q", s)
	}
	if n < 1 || n > 65535 {
		return 0, errors.Errorf("port %d out of range 1-65535", n)
	}
	return uint16(n), nil
}
