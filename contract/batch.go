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

package contract

import (
	"context"
	"errors"

	"github.com/bitsnark/grail-pro-charms/charm"
	"golang.org/x/sync/errgroup"
)

// ErrNotVerified is the result error of jobs skipped after cancellation
var ErrNotVerified = errors.New("job not verified")

// Job is a single verification request
type Job struct {
	Name         string
	App          charm.App
	Tx           *charm.Transaction
	PublicInputs charm.PublicInputs
	Witness      charm.Witness
}

// Result holds the outcome of a Job. Err is nil when the transaction is satisfied
type Result struct {
	Job Job
	Err error
}

func (r Result) Satisfied() bool {
	return r.Err == nil
}

// VerifyBatch verifies independent jobs in parallel, running at most limit at
// once (no limit when limit <= 0). Results are returned in job order. Only
// cancellation of ctx stops the batch early, in which case the context error
// is returned and unverified jobs carry ErrNotVerified.
func VerifyBatch(
	ctx context.Context,
	v *Verifier,
	jobs []Job,
	limit int,
) ([]Result, error) {
	results := make([]Result, len(jobs))
	for idx, job := range jobs {
		results[idx] = Result{Job: job, Err: ErrNotVerified}
	}
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for idx, job := range jobs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[idx].Err = v.Verify(
				job.App,
				job.Tx,
				job.PublicInputs,
				job.Witness,
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}
