package main

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

const (
	verboseKey    = "verbose"
	seedKey       = "seed"
	outKey        = "out"
	secretKeyKey  = "sk"
	ringKey       = "ring"
	indexKey      = "index"
	messageKey    = "msg"
	messageHexKey = "msg-hex"
	signatureKey  = "sig"
)

func newLogger(flags *pflag.FlagSet) (*zap.Logger, error) {
	verbose, err := flags.GetBool(verboseKey)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	return cfg.Build()
}

func addMessageFlags(flags *pflag.FlagSet) {
	flags.String(messageKey, "", "Message to sign or verify, as text")
	flags.String(messageHexKey, "", "Message to sign or verify, hex encoded (overrides --msg)")
}

func parseMessage(flags *pflag.FlagSet) ([]byte, error) {
	msgHex, err := flags.GetString(messageHexKey)
	if err != nil {
		return nil, err
	}
	if msgHex != "" {
		return hex.DecodeString(msgHex)
	}
	msg, err := flags.GetString(messageKey)
	if err != nil {
		return nil, err
	}
	return []byte(msg), nil
}

// readHexFile reads a file holding one hex encoded blob, ignoring surrounding whitespace.
func readHexFile(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	b, err := hex.DecodeString(strings.TrimSpace(string(raw)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

func writeHexFile(path string, b []byte, perm os.FileMode) error {
	return os.WriteFile(path, []byte(hex.EncodeToString(b)+"\n"), perm)
}

// parseRing reads one hex encoded lossless public key per line. Blank lines and lines
// starting with '#' are skipped.
func parseRing(data []byte) ([][]byte, error) {
	var ring [][]byte
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		pk, err := hex.DecodeString(text)
		if err != nil {
			return nil, fmt.Errorf("ring line %d: %w", line, err)
		}
		ring = append(ring, pk)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return ring, nil
}

func readRingFile(path string) ([][]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseRing(data)
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
