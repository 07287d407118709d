//go:build !unix

package systemcontext

import "errors"

func kernelRelease() (string, error) {
	return "", errors.New("kernel release not available on this platform")
}
