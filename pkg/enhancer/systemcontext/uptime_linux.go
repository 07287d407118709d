//go:build linux

package systemcontext

import "golang.org/x/sys/unix"

func systemUptime() (int64, error) {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return -1, err
	}
	return int64(info.Uptime), nil
}
