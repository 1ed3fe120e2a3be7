// Copyright (c) 2015-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package prompt reads secrets from the terminal without echoing them.
package prompt

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/bitlab/txengine/hexcodec"
	"github.com/bitlab/txengine/internal/zero"
	"golang.org/x/term"
)

// privKeyHexLen is the length of a hex encoded 32 byte private key.
const privKeyHexLen = 64

// ProvidePrivateKey prompts for a hex encoded private key.  When fd is a
// terminal the key is read without echo and the prompt is repeated until a
// well formed key is entered.  Otherwise a single line is read from reader
// and a malformed key is an error.
func ProvidePrivateKey(reader *bufio.Reader, fd int,
	out io.Writer) (string, error) {

	interactive := term.IsTerminal(fd)
	for {
		fmt.Fprint(out, "Enter private key (hex): ")

		line, err := readLine(reader, fd, interactive)
		if interactive {
			fmt.Fprint(out, "\n")
		}
		if err != nil {
			return "", err
		}

		privKeyHex, err := checkPrivateKeyHex(line)
		zero.Bytes(line)
		if err == nil {
			return privKeyHex, nil
		}
		if !interactive {
			return "", err
		}

		fmt.Fprintf(out, "Invalid private key.  Must be %d "+
			"hexadecimal characters\n", privKeyHexLen)
	}
}

func readLine(reader *bufio.Reader, fd int, interactive bool) ([]byte, error) {
	if interactive {
		return term.ReadPassword(fd)
	}

	line, err := reader.ReadBytes('\n')
	if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
		return nil, err
	}
	return line, nil
}

// checkPrivateKeyHex trims line and checks it encodes 32 bytes.
func checkPrivateKeyHex(line []byte) (string, error) {
	line = bytes.TrimSpace(line)
	if len(line) != privKeyHexLen {
		return "", fmt.Errorf("private key must be %d hexadecimal "+
			"characters, got %d", privKeyHexLen, len(line))
	}

	privKeyHex := string(line)
	privKey, err := hexcodec.Decode(privKeyHex)
	if err != nil {
		return "", err
	}
	zero.Bytes(privKey)

	return privKeyHex, nil
}
