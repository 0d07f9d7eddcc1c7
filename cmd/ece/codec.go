package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	ece "github.com/majacQ/encrypted-content-encoding"
	"github.com/majacQ/encrypted-content-encoding/internal/crypto"
)

// localKeyID names the --private-key entry in the per-run registry.
const localKeyID = "local"

func newCodecCmd(a *app, mode ece.Mode) *cobra.Command {
	short := "Encrypt a message"
	if mode == ece.ModeDecrypt {
		short = "Decrypt a message"
	}

	cmd := &cobra.Command{
		Use:   mode.String() + " [message]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCodec(cmd, args, mode)
		},
	}
	addCodecFlags(cmd.Flags())
	return cmd
}

func addCodecFlags(fs *pflag.FlagSet) {
	fs.String("key", "", "raw secret key (base64url)")
	fs.String("salt", "", "16 octet salt (base64url, required)")
	fs.Int("rs", ece.DefaultRecordSize, "record size")
	fs.String("auth-secret", "", "authentication secret mixed into the key (base64url)")
	fs.Bool("no-auth-secret", false, "skip the authentication secret step entirely")
	fs.String("dh", "", "peer public key for Diffie-Hellman (base64url)")
	fs.String("private-key", "", "local private key for Diffie-Hellman (base64url)")
	fs.String("curve", "p256", "Diffie-Hellman curve (p256, x25519)")
	fs.String("label", "", "Diffie-Hellman context label, may be empty (default: the curve name)")
	fs.Int("parallel", 1, "records processed concurrently")
	fs.String("params", "", `JSON object of flag values, e.g. '{"rs": 3300}'`)
	fs.Bool("raw", false, "write raw output instead of base64url")
}

func (a *app) runCodec(cmd *cobra.Command, args []string, mode ece.Mode) error {
	s, err := a.loadSettings(cmd)
	if err != nil {
		return err
	}

	input, err := readMessage(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	if s.Salt == "" {
		return fmt.Errorf("--salt is required")
	}
	salt, err := crypto.DecodeBase64(s.Salt)
	if err != nil {
		return fmt.Errorf("decode --salt: %w", err)
	}

	source, opts, err := s.secretSource()
	if err != nil {
		return err
	}
	extra, err := s.options()
	if err != nil {
		return err
	}
	opts = append(opts, extra...)

	a.log.Debug().
		Str("mode", mode.String()).
		Str("salt", s.Salt).
		Int("rs", s.RecordSize).
		Bool("raw_key", s.Key != "").
		Str("dh", s.DH).
		Str("curve", s.Curve).
		Str("label", s.Label).
		Bool("auth_secret", s.AuthSecret != "" && !s.NoAuthSecret).
		Int("parallel", s.Parallel).
		Msg("params")

	var output []byte
	if mode == ece.ModeEncrypt {
		output, err = ece.Encrypt(input, salt, source, opts...)
	} else {
		output, err = ece.Decrypt(input, salt, source, opts...)
	}
	if err != nil {
		a.log.Error().Err(err).Str("kind", ece.KindOf(err).String()).Msg(mode.String() + " failed")
		return err
	}

	a.log.Info().
		Int("input_octets", len(input)).
		Int("output_octets", len(output)).
		Msg(mode.String() + "ed")

	return writeOutput(cmd.OutOrStdout(), output, s.Raw)
}

// secretSource builds the secret source and any registry it needs.
func (s *settings) secretSource() (ece.SecretSource, []ece.Option, error) {
	switch {
	case s.Key != "" && s.DH != "":
		return nil, nil, fmt.Errorf("--key and --dh are mutually exclusive")

	case s.Key != "":
		key, err := crypto.DecodeBase64(s.Key)
		if err != nil {
			return nil, nil, fmt.Errorf("decode --key: %w", err)
		}
		return ece.RawKey(key), nil, nil

	case s.DH != "":
		if s.PrivateKey == "" {
			return nil, nil, fmt.Errorf("--dh requires --private-key")
		}
		curve, err := parseCurve(s.Curve)
		if err != nil {
			return nil, nil, err
		}
		priv, err := crypto.DecodeBase64(s.PrivateKey)
		if err != nil {
			return nil, nil, fmt.Errorf("decode --private-key: %w", err)
		}
		peer, err := crypto.DecodeBase64(s.DH)
		if err != nil {
			return nil, nil, fmt.Errorf("decode --dh: %w", err)
		}
		kp, err := ece.KeyPairFromPrivateKey(curve, priv)
		if err != nil {
			return nil, nil, err
		}

		// An explicit empty label is kept as is.
		label := s.Label
		if !s.LabelSet {
			label = string(curve)
		}
		registry := ece.NewRegistry()
		if err := registry.AddLabeledKeyPair(localKeyID, kp, label); err != nil {
			return nil, nil, err
		}
		return ece.DiffieHellman{PeerPublicKey: peer, KeyID: localKeyID},
			[]ece.Option{ece.WithRegistry(registry)}, nil
	}
	return nil, nil, fmt.Errorf("%w: set --key or --dh", ece.ErrNoSecret)
}

func (s *settings) options() ([]ece.Option, error) {
	opts := []ece.Option{
		ece.WithRecordSize(s.RecordSize),
		ece.WithParallelism(s.Parallel),
	}
	switch {
	case s.NoAuthSecret:
		opts = append(opts, ece.WithoutAuthSecret())
	case s.AuthSecret != "":
		secret, err := crypto.DecodeBase64(s.AuthSecret)
		if err != nil {
			return nil, fmt.Errorf("decode --auth-secret: %w", err)
		}
		opts = append(opts, ece.WithAuthSecret(secret))
	}
	return opts, nil
}

func parseCurve(name string) (ece.Curve, error) {
	switch strings.ToLower(name) {
	case "p256", "p-256", "prime256v1", "":
		return ece.CurveP256, nil
	case "x25519":
		return ece.CurveX25519, nil
	}
	return "", fmt.Errorf("unsupported curve %q", name)
}

// readMessage decodes a base64url argument, or reads raw octets from stdin
// when no argument is given.
func readMessage(stdin io.Reader, args []string) ([]byte, error) {
	if len(args) == 1 {
		msg, err := crypto.DecodeBase64(args[0])
		if err != nil {
			return nil, fmt.Errorf("decode message: %w", err)
		}
		return msg, nil
	}
	msg, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return msg, nil
}

func writeOutput(w io.Writer, data []byte, raw bool) error {
	if raw {
		_, err := w.Write(data)
		return err
	}
	_, err := fmt.Fprintln(w, crypto.ToBase64URL(data))
	return err
}
