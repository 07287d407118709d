//go:build !linux

package systemcontext

import "errors"

func systemUptime() (int64, error) {
	return -1, errors.New("system uptime not available on this platform")
}
