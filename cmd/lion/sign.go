package main

import (
	"time"

	"github.com/cryptosuite/lion"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func signCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "sign",
		Short: "Signs a message on behalf of a ring",
		RunE:  signFunc,
	}
	flags := c.Flags()
	flags.String(ringKey, "", "Ring file, one hex encoded public key per line (required)")
	flags.Int(indexKey, -1, "Position of the signer in the ring (required)")
	flags.String(secretKeyKey, "", "Secret key file (required)")
	flags.String(outKey, "lion.sig", "Output signature file")
	addMessageFlags(flags)
	for _, k := range []string{ringKey, indexKey, secretKeyKey} {
		_ = c.MarkFlagRequired(k)
	}
	return c
}

func signFunc(c *cobra.Command, _ []string) error {
	flags := c.Flags()
	log, err := newLogger(flags)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	ringPath, err := flags.GetString(ringKey)
	if err != nil {
		return err
	}
	index, err := flags.GetInt(indexKey)
	if err != nil {
		return err
	}
	skPath, err := flags.GetString(secretKeyKey)
	if err != nil {
		return err
	}
	out, err := flags.GetString(outKey)
	if err != nil {
		return err
	}
	msg, err := parseMessage(flags)
	if err != nil {
		return err
	}

	ring, err := readRingFile(ringPath)
	if err != nil {
		return err
	}
	sk, err := readHexFile(skPath)
	if err != nil {
		return err
	}
	defer wipe(sk)

	start := time.Now()
	sig, err := lion.Sign(msg, ring, index, sk)
	if err != nil {
		return err
	}
	log.Info("signed",
		zap.Int("ringSize", len(ring)),
		zap.Int("signatureBytes", len(sig)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return writeHexFile(out, sig, 0o644)
}
