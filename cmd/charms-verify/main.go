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
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// Environment loaded from .env provides the flag defaults
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env file", "error", err)
	}
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		if !errors.Is(err, errRejected) {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		}
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "charms-verify",
		Short:         "Check charms transactions against the token and NFT rules",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	f := addGlobalFlags(cmd)
	cmd.PersistentPreRunE = func(*cobra.Command, []string) error {
		return f.EnvError()
	}
	cmd.AddCommand(
		newVerifyCommand(f),
		newAppIdCommand(f),
		newWitnessCommand(),
	)
	return cmd
}
