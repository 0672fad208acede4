package main

import (
	"encoding/hex"
	"fmt"

	"github.com/cryptosuite/lion"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func keygenCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "keygen",
		Short: "Generates a key pair and writes <out>.pub and <out>.sk",
		RunE:  keygenFunc,
	}
	flags := c.Flags()
	flags.String(seedKey, "", "Hex encoded 32-byte seed for deterministic generation (random when empty)")
	flags.String(outKey, "lion", "Output file prefix")
	return c
}

func keygenFunc(c *cobra.Command, _ []string) error {
	flags := c.Flags()
	log, err := newLogger(flags)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	seedHex, err := flags.GetString(seedKey)
	if err != nil {
		return err
	}
	out, err := flags.GetString(outKey)
	if err != nil {
		return err
	}

	var seed []byte
	if seedHex != "" {
		seed, err = hex.DecodeString(seedHex)
		if err != nil {
			return fmt.Errorf("--%s: %w", seedKey, err)
		}
		defer wipe(seed)
	}

	pk, sk, err := lion.KeyGen(seed)
	if err != nil {
		return err
	}
	defer wipe(sk)

	if err := writeHexFile(out+".pub", pk, 0o644); err != nil {
		return err
	}
	if err := writeHexFile(out+".sk", sk, 0o600); err != nil {
		return err
	}

	compact, err := lion.CompactPublicKey(pk)
	if err != nil {
		return err
	}
	log.Info("generated key pair", zap.String("out", out), zap.Bool("deterministic", seed != nil))
	fmt.Fprintln(c.OutOrStdout(), hex.EncodeToString(compact[:16]))
	return nil
}
