// # internal/usage/value_test.go
package usage

import (
	"reflect"
	"testing"
)

func TestValueUsage_Predicates(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		value   ValueUsage
		read    bool
		written bool
	}{
		{name: "None", value: ValueNone, read: false, written: false},
		{name: "Read", value: ValueRead, read: true, written: false},
		{name: "Write", value: ValueWrite, read: false, written: true},
		{name: "ReadWrite", value: ValueReadWrite, read: true, written: true},
		{name: "Reference", value: ValueReference, read: false, written: false},
		{name: "ReadableReference", value: ValueReadableReference, read: true, written: false},
		{name: "WritableReference", value: ValueWritableReference, read: false, written: true},
		{name: "ReadableWritableReference", value: ValueReadableWritableReference, read: true, written: true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.value.IsReadFrom(); got != tc.read {
				t.Errorf("IsReadFrom: expected %v, got %v", tc.read, got)
			}
			if got := tc.value.IsWrittenTo(); got != tc.written {
				t.Errorf("IsWrittenTo: expected %v, got %v", tc.written, got)
			}
		})
	}
}

func TestValueUsage_HasAnyBitOverlap(t *testing.T) {
	t.Parallel()

	if !ValueRead.Has(ValueReadWrite) {
		t.Error("expected Read to overlap ReadWrite")
	}
	if ValueRead.Has(ValueWrite | ValueReference) {
		t.Error("expected Read to miss Write|Reference")
	}
	if ValueReadWrite.Has(ValueNone) {
		t.Error("expected None to match nothing")
	}
}

func TestValueUsage_Labels(t *testing.T) {
	t.Parallel()

	if got := ValueNone.Labels(); len(got) != 0 {
		t.Fatalf("expected empty decomposition, got %v", got)
	}

	got := ValueReadableWritableReference.Labels()
	expected := []string{"Read", "Write", "Reference"}
	if !reflect.DeepEqual(got, expected) {
		t.Fatalf("expected %v, got %v", expected, got)
	}

	// Accumulation order must not affect output order.
	reordered := ValueReference | ValueWrite | ValueRead
	if got := reordered.Labels(); !reflect.DeepEqual(got, expected) {
		t.Fatalf("expected %v, got %v", expected, got)
	}
}

func TestSymbolUsage_Labels(t *testing.T) {
	t.Parallel()

	if !(SymbolUsage{}).IsEmpty() {
		t.Fatal("zero SymbolUsage should be empty")
	}

	s := SymbolUsage{
		Value:           ValueReadWrite,
		TypeOrNamespace: UsageNameQualifier,
	}
	expected := []string{"Read", "Write", "Name Qualifier"}
	if got := s.Labels(); !reflect.DeepEqual(got, expected) {
		t.Fatalf("expected %v, got %v", expected, got)
	}

	if got := ForValue(ValueWrite).Labels(); !reflect.DeepEqual(got, []string{"Write"}) {
		t.Fatalf("expected [Write], got %v", got)
	}
	if got := ForTypeOrNamespace(UsageBase).Labels(); !reflect.DeepEqual(got, []string{"Base Type"}) {
		t.Fatalf("expected [Base Type], got %v", got)
	}
	if ForValue(ValueRead).IsWrittenTo() {
		t.Fatal("read-only usage should not report a write")
	}
}
