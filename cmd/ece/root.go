package main

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	ece "github.com/majacQ/encrypted-content-encoding"
)

type app struct {
	cfg Config
	log zerolog.Logger

	verbose    bool
	configFile string
	envFile    string
}

func run(args []string, cfg Config) error {
	root := newRootCmd(cfg)
	root.SetArgs(args)
	return root.Execute()
}

func newRootCmd(cfg Config) *cobra.Command {
	a := &app{cfg: cfg, log: zerolog.Nop()}

	root := &cobra.Command{
		Use:   "ece",
		Short: "Encrypted content-encoding for HTTP",
		Long: `ece encrypts and decrypts messages with the aesgcm128 encrypted
content-encoding.

Messages are given as a base64url argument or read raw from stdin. Keys,
salts and public keys are base64url. Every flag can also be set with an
ECE_* environment variable (ECE_KEY, ECE_AUTH_SECRET, ...), in an ece.yaml
config file, or in a .env file.

Examples:
  # Generate a salt and encrypt with a raw key
  ece encrypt --key F-hAEGCm7KIGUiSdS4GGtA --salt $(ece salt) aGVsbG8

  # Decrypt with Diffie-Hellman key agreement
  ece decrypt --dh <sender public key> --private-key <receiver private key> \
      --salt <salt> <ciphertext>`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.log = newLogger(cfg.Stderr, a.verbose)
			return a.loadEnvFile()
		},
	}

	root.SetIn(cfg.Stdin)
	root.SetOut(cfg.Stdout)
	root.SetErr(cfg.Stderr)

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (default ./ece.yaml)")
	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "dotenv file to load if present")

	root.AddCommand(
		newCodecCmd(a, ece.ModeEncrypt),
		newCodecCmd(a, ece.ModeDecrypt),
		newKeygenCmd(a),
		newSaltCmd(a),
	)
	return root
}

// loadEnvFile exports the dotenv file's variables. Variables already set in
// the environment win.
func (a *app) loadEnvFile() error {
	if a.envFile == "" {
		return nil
	}
	err := godotenv.Load(a.envFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	a.log.Debug().Str("file", a.envFile).Msg("loaded env file")
	return nil
}
