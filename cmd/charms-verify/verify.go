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

	"github.com/bitsnark/grail-pro-charms/charm"
	"github.com/bitsnark/grail-pro-charms/contract"
	"github.com/bitsnark/grail-pro-charms/internal/spell"
	"github.com/spf13/cobra"
)

func newVerifyCommand(f *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "verify SPELL.yaml...",
		Short: "Verify every app of one or more spell files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pp, err := f.Params()
			if err != nil {
				return err
			}
			logger, err := f.Logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			var jobs []contract.Job
			for _, path := range args {
				s, err := spell.LoadFile(path)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				spellJobs, err := s.Jobs()
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				for _, job := range spellJobs {
					job.Name = path + " " + job.Name
					jobs = append(jobs, job)
				}
			}
			v := contract.NewVerifier(
				contract.WithLogger(logger),
				contract.WithParams(pp),
			)
			results, err := contract.VerifyBatch(cmd.Context(), v, jobs, f.Parallel)
			if err != nil {
				return err
			}
			rejected := false
			out := cmd.OutOrStdout()
			for _, result := range results {
				switch {
				case result.Satisfied():
					fmt.Fprintf(out, "%s: satisfied\n", result.Job.Name)
				case errors.Is(result.Err, charm.ErrStructural):
					rejected = true
					fmt.Fprintf(out, "%s: aborted: %s\n", result.Job.Name, result.Err)
				default:
					rejected = true
					fmt.Fprintf(out, "%s: rejected: %s\n", result.Job.Name, result.Err)
				}
			}
			if rejected {
				return errRejected
			}
			return nil
		},
	}
}

func newAppIdCommand(f *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "app-id PREIMAGE",
		Short: "Print the NFT identity derived from a deploy preimage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			digest, err := charm.ParseDigestAlgorithm(f.Digest)
			if err != nil {
				return err
			}
			id, err := digest.Sum([]byte(args[0]))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
}
