package main

import (
	"fmt"

	"github.com/cryptosuite/lion"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func verifyCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "verify",
		Short: "Verifies a ring signature",
		RunE:  verifyFunc,
	}
	flags := c.Flags()
	flags.String(ringKey, "", "Ring file, one hex encoded public key per line (required)")
	flags.String(signatureKey, "", "Signature file (required)")
	addMessageFlags(flags)
	for _, k := range []string{ringKey, signatureKey} {
		_ = c.MarkFlagRequired(k)
	}
	return c
}

func verifyFunc(c *cobra.Command, _ []string) error {
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
	sigPath, err := flags.GetString(signatureKey)
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
	sig, err := readHexFile(sigPath)
	if err != nil {
		return err
	}

	if err := lion.Verify(msg, ring, sig); err != nil {
		log.Debug("verification failed", zap.Error(err))
		return err
	}
	fmt.Fprintln(c.OutOrStdout(), "OK")
	return nil
}
