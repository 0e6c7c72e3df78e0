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
	"fmt"

	"github.com/bitsnark/grail-pro-charms/charm"
	"github.com/bitsnark/grail-pro-charms/token"
	"github.com/spf13/cobra"
)

func newWitnessCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "witness",
		Short: "Encode private witnesses as hex CBOR",
	}
	cmd.AddCommand(
		newTokenWitnessCommand(),
		&cobra.Command{
			Use:   "deploy PREIMAGE",
			Short: "Encode an NFT deploy preimage",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				fmt.Fprintln(
					cmd.OutOrStdout(),
					charm.Record(charm.NewTextWitness(args[0])),
				)
				return nil
			},
		},
	)
	return cmd
}

func newTokenWitnessCommand() *cobra.Command {
	var utxoId, fundingTx string
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Encode a token mint or burn witness",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			outpoint, err := charm.ParseOutpoint(utxoId)
			if err != nil {
				return err
			}
			w, err := token.NewWitness(outpoint, fundingTx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), charm.Record(w))
			return nil
		},
	}
	cmd.Flags().StringVar(&utxoId, "utxo", "", "spent outpoint holding the prior state (txid:vout)")
	cmd.Flags().StringVar(&fundingTx, "funding-tx", "", "funding transaction named by a mint")
	_ = cmd.MarkFlagRequired("utxo")
	return cmd
}
