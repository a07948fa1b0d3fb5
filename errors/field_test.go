package errors

import (
	"reflect"
	"testing"
)

func TestFieldErrors(t *testing.T) {
	// Declare errors upfront so that DeepEqual can be used for comparison.
	var (
		unauthorizedOwnersErr = Field("Owners", ErrUnauthorized, "not an owner")
		duplicateOwnersErr    = Field("Owners", ErrDuplicate, "owner listed twice")
		emptyThresholdErr     = Field("Threshold", ErrEmpty, "threshold is required")
		walletMultiErr        = Field("Wallet", Append(
			duplicateOwnersErr,
			Append(emptyThresholdErr, ErrState),
		), "invalid wallet")

		emptyThresholdWrapErr = Field("Threshold", emptyThresholdErr, "outer")
	)

	cases := map[string]struct {
		Err   error
		Field string
		Want  []error
	}{
		"a single error found by the name": {
			Err:   unauthorizedOwnersErr,
			Field: "Owners",
			Want:  []error{unauthorizedOwnersErr},
		},
		"two errors found by the name": {
			Err: Append(
				unauthorizedOwnersErr,
				duplicateOwnersErr,
			),
			Field: "Owners",
			Want: []error{
				unauthorizedOwnersErr,
				duplicateOwnersErr,
			},
		},
		"field can contain a multierror": {
			Err:   walletMultiErr,
			Field: "Wallet",
			Want:  []error{walletMultiErr},
		},
		"field can inspect errors tree to find match (Owners)": {
			Err:   walletMultiErr,
			Field: "Owners",
			Want:  []error{duplicateOwnersErr},
		},
		"field can inspect errors tree to find match (Threshold)": {
			Err:   walletMultiErr,
			Field: "Threshold",
			Want:  []error{emptyThresholdErr},
		},
		"nil error returns nothing": {
			Err:   nil,
			Field: "Tx",
			Want:  nil,
		},
		"error not found by the field name": {
			Err:   ErrUnauthorized,
			Field: "Tx",
			Want:  nil,
		},
		"error not found by the wrong field name": {
			Err:   Field("Tx.Address", ErrUnauthorized, "a description"),
			Field: "Tx",
			Want:  nil,
		},
		"field is wrapped": {
			Err:   Wrap(Wrap(duplicateOwnersErr, "inner"), "outer"),
			Field: "Owners",
			Want:  []error{duplicateOwnersErr},
		},
		"multi error field is wrapped (Threshold)": {
			Err:   Wrap(Wrap(walletMultiErr, "inner"), "outer"),
			Field: "Threshold",
			Want:  []error{emptyThresholdErr},
		},
		"multi error field is wrapped (Owners)": {
			Err:   Wrap(Wrap(walletMultiErr, "inner"), "outer"),
			Field: "Owners",
			Want:  []error{duplicateOwnersErr},
		},
		"multi error field is wrapped, no match": {
			Err:   Wrap(Wrap(walletMultiErr, "inner"), "outer"),
			Field: "Tx.Selector",
			Want:  nil,
		},
		"multiple field wrap with most inner as the result": {
			Err:   Field("Tx", Field("Wallet", duplicateOwnersErr, "wallet"), "tx"),
			Field: "Owners",
			Want:  []error{duplicateOwnersErr},
		},
		"multiple field wrap with the same field return the most outside only": {
			Err:   emptyThresholdWrapErr,
			Field: "Threshold",
			Want:  []error{emptyThresholdWrapErr},
		},
		"complex error with multiple results": {
			Err: Wrap(Append(
				Wrap(unauthorizedOwnersErr, "a"),
				Wrap(duplicateOwnersErr, "b"),
				Wrap(emptyThresholdErr, "c"),
			), "outer"),
			Field: "Owners",
			Want:  []error{unauthorizedOwnersErr, duplicateOwnersErr},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got := FieldErrors(tc.Err, tc.Field)
			if !reflect.DeepEqual(tc.Want, got) {
				t.Logf("want: %#v", tc.Want)
				t.Logf(" got: %#v", got)
				t.Fatal("unexpected result")
			}
		})
	}
}
