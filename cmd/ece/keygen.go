package main

import (
	"crypto/rand"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	ece "github.com/majacQ/encrypted-content-encoding"
	"github.com/majacQ/encrypted-content-encoding/internal/crypto"
)

type keyPairOutput struct {
	Curve      string `json:"curve"`
	PublicKey  string `json:"publicKey"`
	PrivateKey string `json:"privateKey"`
}

func newKeygenCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a Diffie-Hellman key pair",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.loadSettings(cmd)
			if err != nil {
				return err
			}
			curve, err := parseCurve(s.Curve)
			if err != nil {
				return err
			}

			kp, err := ece.GenerateKeyPair(curve)
			if err != nil {
				return err
			}
			a.log.Debug().Str("curve", string(curve)).Msg("generated key pair")

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(keyPairOutput{
				Curve:      string(kp.Curve()),
				PublicKey:  crypto.ToBase64URL(kp.PublicKey()),
				PrivateKey: crypto.ToBase64URL(kp.PrivateKey()),
			})
		},
	}
	cmd.Flags().String("curve", "p256", "curve (p256, x25519)")
	return cmd
}

func newSaltCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "salt",
		Short: "Generate a random salt",
		Long: `Generate a random 16 octet salt.

A salt must never be reused with the same key.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			salt := make([]byte, ece.SaltSize)
			if _, err := rand.Read(salt); err != nil {
				return fmt.Errorf("generate salt: %w", err)
			}
			return writeOutput(cmd.OutOrStdout(), salt, false)
		},
	}
}
