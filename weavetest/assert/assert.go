package assert

import (
	"reflect"
	"strings"
	"testing"

	"github.com/iov-one/xsigners/errors"
)

// Tester is the part of testing.TB the assertions need.
type Tester interface {
	Helper()
	Fatal(...interface{})
	Fatalf(string, ...interface{})
}

// Nil fails the test if value is not nil. Errors are printed with %+v so
// that their stack trace is visible.
func Nil(t Tester, value interface{}) {
	t.Helper()
	if !isNil(value) {
		t.Fatalf("want a nil value, got %+v", value)
	}
}

// isNil reports typed nil pointers, maps, slices and similar as nil.
func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return v.IsNil()
	}
	return false
}

// Equal fails the test if want and got are not deeply equal.
func Equal(t Tester, want, got interface{}) {
	t.Helper()
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("values not equal \nwant %T %v\n got %T %v", want, want, got, got)
	}
}

// Len fails the test unless collection holds exactly n elements.
func Len(t Tester, n int, collection interface{}) {
	t.Helper()
	v := reflect.ValueOf(collection)
	switch v.Kind() {
	case reflect.Array, reflect.Chan, reflect.Map, reflect.Slice, reflect.String:
		if got := v.Len(); got != n {
			t.Fatalf("want %d elements, got %d: %v", n, got, collection)
		}
	default:
		t.Fatalf("%T has no length", collection)
	}
}

// Panics fails the test unless fn panics.
func Panics(t Tester, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatal("panic expected")
		}
	}()
	fn()
}

// FieldError requires err to carry exactly one error for field, matching
// want. A nil want requires that no error was reported for field.
func FieldError(t testing.TB, err error, field string, want *errors.Error) {
	t.Helper()

	errs := errors.FieldErrors(err, field)
	switch {
	case want == nil && len(errs) == 0:
		return
	case want == nil:
		t.Fatalf("field %q: want no error, got %s", field, describe(errs))
	case len(errs) == 0:
		t.Fatalf("field %q: no error found", field)
	case len(errs) > 1:
		t.Fatalf("field %q: want one error, got %s", field, describe(errs))
	case !want.Is(errs[0]):
		t.Fatalf("field %q: want %q, got %q", field, want, errs[0])
	}
}

func describe(errs []error) string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return "[" + strings.Join(msgs, "; ") + "]"
}

// IsErr fails the test unless got is want, or want is a registered error
// that got wraps.
func IsErr(t testing.TB, want, got error) {
	t.Helper()
	if want == got {
		return
	}
	if cmp, ok := want.(interface{ Is(error) bool }); ok && cmp.Is(got) {
		return
	}
	t.Fatalf("want %q, got %+v", want, got)
}
