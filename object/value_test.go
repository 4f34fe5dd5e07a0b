package object

import "testing"

func TestIsTruthy(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want bool
	}{
		{"nil is falsey", nil, false},
		{"false is falsey", false, false},
		{"true is truthy", true, true},
		{"zero is truthy", 0.0, true},
		{"empty string is truthy", "", true},
		{"non-empty string is truthy", "x", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTruthy(tt.v); got != tt.want {
				t.Errorf("IsTruthy(%#v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	a := NewInstance(NewClass("A"))
	b := NewInstance(NewClass("A"))
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"nil equals nil", nil, nil, true},
		{"nil not equal false", nil, false, false},
		{"numbers by value", 1.0, 1.0, true},
		{"different numbers", 1.0, 2.0, false},
		{"strings by content", "hi", "hi", true},
		{"different type never equal", 1.0, "1", false},
		{"instances by identity", a, a, true},
		{"distinct instances differ", a, b, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal(%#v, %#v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestToStringFunction(t *testing.T) {
	script := &Function{Name: "", Chunk: &Chunk{}}
	if got := ToString(script); got != "<script>" {
		t.Errorf("ToString(script) = %q, want <script>", got)
	}
	named := &Function{Name: "add", Chunk: &Chunk{}}
	if got := ToString(named); got != "<fn add>" {
		t.Errorf("ToString(named) = %q, want <fn add>", got)
	}
}

func TestChunkAddConstantDedup(t *testing.T) {
	c := &Chunk{}
	i1 := c.AddConstant("hello")
	i2 := c.AddConstant("hello")
	if i1 != i2 {
		t.Errorf("expected string constants to be de-duplicated: got %d and %d", i1, i2)
	}
	i3 := c.AddConstant(1.0)
	i4 := c.AddConstant(1.0)
	if i3 == i4 {
		t.Errorf("number constants are not de-duplicated, expected distinct indices")
	}
}

func TestUpvalueClose(t *testing.T) {
	v := Value(42.0)
	u := &Upvalue{Location: &v, Slot: 0}
	v = 43.0
	u.Close()
	if got := *u.Location; got != 43.0 {
		t.Errorf("closed upvalue = %v, want 43", got)
	}
}
