package types

import "testing"

func TestInteger_String(t *testing.T) {
	tests := []struct {
		i    Integer
		want string
	}{
		{Byte, "byte"},
		{UShort, "ushort"},
		{Int, "int"},
		{ULong, "ulong"},
	}
	for _, tt := range tests {
		if got := tt.i.String(); got != tt.want {
			t.Errorf("Integer.String() = %q, want %q", got, tt.want)
		}
	}
}

func TestFloat_String(t *testing.T) {
	if Float32.String() != "float" {
		t.Errorf("Float32.String() = %q, want float", Float32.String())
	}
	if Float64.String() != "double" {
		t.Errorf("Float64.String() = %q, want double", Float64.String())
	}
}

func TestInteger_AssignableTo(t *testing.T) {
	if !Int.AssignableTo(Int) {
		t.Error("Int should be assignable to Int")
	}
	if !Int.AssignableTo(Long) {
		t.Error("Int should be assignable to Long (narrower-to-wider widening of the same signedness)")
	}
}

func TestArray_Equals(t *testing.T) {
	a := Array{Elem: Int, Size: 4}
	b := Array{Elem: Int, Size: 4}
	c := Array{Elem: Int, Size: -1}
	if !a.Equals(b) {
		t.Error("expected equal fixed arrays to compare equal")
	}
	if a.Equals(c) {
		t.Error("expected fixed and dynamic arrays to compare unequal")
	}
	if !a.AssignableTo(c) {
		t.Error("expected a fixed array to be assignable to a dynamic array of the same element type")
	}
}

func TestIdentity_NominalEquality(t *testing.T) {
	a := Identity{QualifiedName: "geometry::Point", IdentityKind: IdentityStruct}
	b := Identity{QualifiedName: "geometry::Point", IdentityKind: IdentityStruct}
	c := Identity{QualifiedName: "geometry::Vector", IdentityKind: IdentityStruct}
	if !a.Equals(b) {
		t.Error("expected identities with the same qualified name to compare equal")
	}
	if a.Equals(c) {
		t.Error("expected identities with different qualified names to compare unequal")
	}
}

func TestIsNumericIsOrderedIsComparable(t *testing.T) {
	if !IsNumeric(Int) || !IsNumeric(Float64) {
		t.Error("expected Int and Float64 to be numeric")
	}
	if IsNumeric(Bool) {
		t.Error("expected Bool not to be numeric")
	}
	if !IsOrdered(Char) {
		t.Error("expected Char to be ordered")
	}
	if !IsComparable(String) {
		t.Error("expected String to be comparable")
	}
}
