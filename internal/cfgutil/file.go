// Copyright (c) 2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cfgutil

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// FileExists reports whether the named file or directory exists.
func FileExists(filePath string) (bool, error) {
	_, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ReadArg returns the contents named by a flag value.  A value of "-" reads
// standard input, a value starting with '@' reads the named file, and any
// other value is returned as is.
func ReadArg(value string, stdin io.Reader) ([]byte, error) {
	switch {
	case value == "-":
		return io.ReadAll(stdin)

	case strings.HasPrefix(value, "@"):
		filePath := value[1:]
		exists, err := FileExists(filePath)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, fmt.Errorf("file `%s` not found", filePath)
		}
		return os.ReadFile(filePath)

	default:
		return []byte(value), nil
	}
}
