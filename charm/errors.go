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

package charm

import (
	"errors"
	"fmt"
)

// Sentinel errors for the two severities a rule can report, so callers can use errors.Is
var (
	// ErrStructural means the caller operated outside the protocol's defined
	// domain and the whole verification must be aborted
	ErrStructural = errors.New("structural violation")
	// ErrRuleFailed means a well-formed transaction failed an invariant
	ErrRuleFailed = errors.New("rule not satisfied")

	errInvalidKeyLength = fmt.Errorf(
		"expected %d hex characters",
		CosignerKeyHexLength,
	)
)

// StructuralViolation is embedded by error types that abort verification
type StructuralViolation struct{}

func (StructuralViolation) Is(target error) bool {
	return target == ErrStructural
}

// RuleFailure is embedded by error types reporting a failed invariant
type RuleFailure struct{}

func (RuleFailure) Is(target error) bool {
	return target == ErrRuleFailed
}

// IsStructural reports whether err aborts verification. Errors that carry
// neither severity are treated as structural.
func IsStructural(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrStructural) {
		return true
	}
	return !errors.Is(err, ErrRuleFailed)
}

// ValidationError represents a structured validation error with additional context
type ValidationError struct {
	Type    ValidationErrorType
	Message string
	Details map[string]any
	Cause   error
}

type ValidationErrorType string

const (
	ValidationErrorTypeStructural ValidationErrorType = "structural"
	ValidationErrorTypeRule       ValidationErrorType = "rule"
)

func (e ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e ValidationError) Unwrap() error {
	return e.Cause
}

func (e ValidationError) Is(target error) bool {
	switch target {
	case ErrStructural:
		return e.Type == ValidationErrorTypeStructural
	case ErrRuleFailed:
		return e.Type == ValidationErrorTypeRule
	default:
		return false
	}
}

// NewValidationError creates a new structured validation error
func NewValidationError(
	errType ValidationErrorType,
	message string,
	details map[string]any,
	cause error,
) *ValidationError {
	return &ValidationError{
		Type:    errType,
		Message: message,
		Details: details,
		Cause:   cause,
	}
}

// Structural violations

type UnknownAppKindError struct {
	StructuralViolation
	Kind AppKind
}

func (e UnknownAppKindError) Error() string {
	return fmt.Sprintf("unknown app kind: %q", rune(e.Kind))
}

type MissingActionError struct {
	StructuralViolation
}

func (MissingActionError) Error() string {
	return "public inputs have no " + PublicInputAction
}

type UnknownActionError struct {
	StructuralViolation
	Kind   AppKind
	Action string
}

func (e UnknownActionError) Error() string {
	return fmt.Sprintf(
		"unsupported action %q for %s app",
		e.Action,
		e.Kind.Name(),
	)
}

// MalformedWitnessError indicates a private witness that does not have the
// shape required by the action
type MalformedWitnessError struct {
	StructuralViolation
	Reason string
	Err    error
}

func (e MalformedWitnessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed witness: %s: %v", e.Reason, e.Err)
	}
	return "malformed witness: " + e.Reason
}

func (e MalformedWitnessError) Unwrap() error { return e.Err }

// MissingPriorStateError indicates the declared input carries no usable
// state for the app
type MissingPriorStateError struct {
	StructuralViolation
	Outpoint Outpoint
	App      App
	Reason   string
	Err      error
}

func (e MissingPriorStateError) Error() string {
	msg := fmt.Sprintf(
		"missing prior state for app %s at %s: %s",
		e.App,
		e.Outpoint,
		e.Reason,
	)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e MissingPriorStateError) Unwrap() error { return e.Err }

// MissingLineageError indicates that no input carries a previous instance of the app
type MissingLineageError struct {
	StructuralViolation
	App App
}

func (e MissingLineageError) Error() string {
	return fmt.Sprintf("no input carries prior state of app %s", e.App)
}

// UnsupportedDigestError indicates parameters naming a digest algorithm that
// cannot be computed
type UnsupportedDigestError struct {
	StructuralViolation
	Digest DigestAlgorithm
}

func (e UnsupportedDigestError) Error() string {
	return fmt.Sprintf("unsupported digest algorithm: %s", e.Digest)
}

// Rule failures

// RecordDecodeError indicates a record that could not be decoded into the
// expected type
type RecordDecodeError struct {
	Err error
}

func (e RecordDecodeError) Error() string {
	return fmt.Sprintf("failed to decode record: %v", e.Err)
}

func (e RecordDecodeError) Unwrap() error { return e.Err }

type MissingOutputStateError struct {
	RuleFailure
	App App
	Err error
}

func (e MissingOutputStateError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("no usable output state for app %s: %v", e.App, e.Err)
	}
	return fmt.Sprintf("no output carries state for app %s", e.App)
}

func (e MissingOutputStateError) Unwrap() error { return e.Err }

// TransactionShapeError indicates an input or output count not allowed by the action
type TransactionShapeError struct {
	RuleFailure
	Action  string
	Inputs  int
	Outputs int
	Want    string
}

func (e TransactionShapeError) Error() string {
	return fmt.Sprintf(
		"%s expects %s, got %d inputs and %d outputs",
		e.Action,
		e.Want,
		e.Inputs,
		e.Outputs,
	)
}

type ThresholdZeroError struct {
	RuleFailure
}

func (ThresholdZeroError) Error() string {
	return "roster threshold must be greater than zero"
}

type InsufficientCosignersError struct {
	RuleFailure
	Cosigners int
	Threshold uint32
}

func (e InsufficientCosignersError) Error() string {
	return fmt.Sprintf(
		"roster has %d cosigners, fewer than threshold %d",
		e.Cosigners,
		e.Threshold,
	)
}

type InvalidCosignerKeyError struct {
	RuleFailure
	Cosigner string
	Err      error
}

func (e InvalidCosignerKeyError) Error() string {
	return fmt.Sprintf("invalid cosigner key %q: %v", e.Cosigner, e.Err)
}

func (e InvalidCosignerKeyError) Unwrap() error { return e.Err }

type DuplicateCosignerError struct {
	RuleFailure
	Cosigner string
}

func (e DuplicateCosignerError) Error() string {
	return fmt.Sprintf("duplicate cosigner %q", e.Cosigner)
}
