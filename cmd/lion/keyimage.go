package main

import (
	"encoding/hex"
	"fmt"

	"github.com/cryptosuite/lion"
	"github.com/spf13/cobra"
)

func keyImageCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "keyimage",
		Short: "Prints the key image of a secret key or of a signature",
		RunE:  keyImageFunc,
	}
	flags := c.Flags()
	flags.String(secretKeyKey, "", "Secret key file")
	flags.String(signatureKey, "", "Signature file")
	return c
}

func keyImageFunc(c *cobra.Command, _ []string) error {
	flags := c.Flags()
	skPath, err := flags.GetString(secretKeyKey)
	if err != nil {
		return err
	}
	sigPath, err := flags.GetString(signatureKey)
	if err != nil {
		return err
	}

	var ki []byte
	switch {
	case skPath != "" && sigPath != "":
		return fmt.Errorf("--%s and --%s are mutually exclusive", secretKeyKey, signatureKey)
	case skPath != "":
		sk, err := readHexFile(skPath)
		if err != nil {
			return err
		}
		defer wipe(sk)
		ki, err = lion.SecretKeyImage(sk)
		if err != nil {
			return err
		}
	case sigPath != "":
		sig, err := readHexFile(sigPath)
		if err != nil {
			return err
		}
		ki, err = lion.KeyImageOf(sig)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("one of --%s or --%s is required", secretKeyKey, signatureKey)
	}

	fmt.Fprintln(c.OutOrStdout(), hex.EncodeToString(ki))
	return nil
}
