// Copyright 2025 BitSNARK
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/bitsnark/grail-pro-charms/charm"
	"github.com/spf13/cobra"
)

const envPrefix = "CHARMS_"

type globalFlags struct {
	Digest           string
	TokenMode        string
	AmountDecoding   string
	TransferLineage  bool
	MintLockEquality bool
	StrictCosigners  bool
	Network          string
	LogLevel         string
	Parallel         int

	envErrs []error
}

// addGlobalFlags registers the flags shared by all commands. Defaults come
// from CHARMS_* environment variables when set.
func addGlobalFlags(cmd *cobra.Command) *globalFlags {
	defaults := charm.DefaultParams()
	f := &globalFlags{}
	flags := cmd.PersistentFlags()
	flags.StringVar(
		&f.Digest,
		"digest",
		envString("DIGEST", defaults.Digest.String()),
		"digest binding NFT identities to their preimage (sha256, blake2b256)",
	)
	flags.StringVar(
		&f.TokenMode,
		"token-mode",
		envString("TOKEN_MODE", defaults.TokenMode.String()),
		"mint/burn rule set (lock-record, lineage-only)",
	)
	flags.StringVar(
		&f.AmountDecoding,
		"amount-decoding",
		envString("AMOUNT_DECODING", defaults.AmountDecoding.String()),
		"handling of undecodable transfer amounts (lenient, strict)",
	)
	flags.BoolVar(
		&f.TransferLineage,
		"transfer-lineage",
		f.envBool("TRANSFER_LINEAGE", defaults.RequireTransferLineage),
		"require transfers to consume a prior instance of the token",
	)
	flags.BoolVar(
		&f.MintLockEquality,
		"mint-lock-equality",
		f.envBool("MINT_LOCK_EQUALITY", defaults.StrictMintLockEquality),
		"require mints to keep the lock amount unchanged",
	)
	flags.BoolVar(
		&f.StrictCosigners,
		"strict-cosigners",
		f.envBool("STRICT_COSIGNERS", defaults.StrictCosignerKeys),
		"require cosigners to be unique BIP-340 public keys",
	)
	flags.StringVar(
		&f.Network,
		"network",
		envString("NETWORK", ""),
		"validate change addresses for this Bitcoin network (mainnet, testnet, signet, regtest)",
	)
	flags.StringVar(
		&f.LogLevel,
		"log-level",
		envString("LOG_LEVEL", "info"),
		"log level (debug, info, warn, error)",
	)
	flags.IntVar(
		&f.Parallel,
		"parallel",
		f.envInt("PARALLEL", 4),
		"maximum number of spells verified at once",
	)
	return f
}

// EnvError reports the CHARMS_* variables that could not be parsed
func (f *globalFlags) EnvError() error {
	return errors.Join(f.envErrs...)
}

func (f *globalFlags) Params() (charm.Params, error) {
	pp := charm.DefaultParams()
	if err := f.EnvError(); err != nil {
		return pp, err
	}
	var err error
	if pp.Digest, err = charm.ParseDigestAlgorithm(f.Digest); err != nil {
		return pp, err
	}
	if pp.TokenMode, err = charm.ParseTokenMode(f.TokenMode); err != nil {
		return pp, err
	}
	if pp.AmountDecoding, err = charm.ParseAmountDecoding(f.AmountDecoding); err != nil {
		return pp, err
	}
	pp.RequireTransferLineage = f.TransferLineage
	pp.StrictMintLockEquality = f.MintLockEquality
	pp.StrictCosignerKeys = f.StrictCosigners
	if f.Network != "" {
		if pp.ChangeAddressNet, err = charm.NetworkParams(f.Network); err != nil {
			return pp, err
		}
	}
	return pp, nil
}

func (f *globalFlags) Logger(w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(f.LogLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	return slog.New(
		slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}),
	), nil
}

func envString(name string, def string) string {
	if val, ok := os.LookupEnv(envPrefix + name); ok {
		return val
	}
	return def
}

func (f *globalFlags) envBool(name string, def bool) bool {
	val, ok := os.LookupEnv(envPrefix + name)
	if !ok {
		return def
	}
	ret, err := strconv.ParseBool(val)
	if err != nil {
		f.envErrs = append(
			f.envErrs,
			fmt.Errorf("invalid %s%s: %w", envPrefix, name, err),
		)
		return def
	}
	return ret
}

func (f *globalFlags) envInt(name string, def int) int {
	val, ok := os.LookupEnv(envPrefix + name)
	if !ok {
		return def
	}
	ret, err := strconv.Atoi(val)
	if err != nil {
		f.envErrs = append(
			f.envErrs,
			fmt.Errorf("invalid %s%s: %w", envPrefix, name, err),
		)
		return def
	}
	return ret
}

var errRejected = errors.New("one or more spells were rejected")
