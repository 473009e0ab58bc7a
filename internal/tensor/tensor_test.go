package tensor

import (
	"math"
	"math/rand/v2"
	"testing"
)

// Test helpers

func assertEqualFloat(t *testing.T, expected, actual float64, msg string) {
	t.Helper()
	if math.Abs(expected-actual) > 1e-9 {
		t.Errorf("%s: expected %v, got %v", msg, expected, actual)
	}
}

func assertEqualShape(t *testing.T, expected, actual Shape, msg string) {
	t.Helper()
	if !expected.Equal(actual) {
		t.Errorf("%s: expected shape %v, got %v", msg, expected, actual)
	}
}

func assertPanics(t *testing.T, msg string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", msg)
		}
	}()
	fn()
}

// DType Tests

func TestDataTypeSize(t *testing.T) {
	tests := []struct {
		dtype DataType
		size  int
	}{
		{Float32, 4},
		{Float64, 8},
		{Int32, 4},
		{Int64, 8},
	}

	for _, tt := range tests {
		if got := tt.dtype.Size(); got != tt.size {
			t.Errorf("%s.Size() = %d, want %d", tt.dtype, got, tt.size)
		}
	}
}

func TestParseDataType(t *testing.T) {
	for _, dt := range []DataType{Float32, Float64, Int32, Int64} {
		got, err := ParseDataType(dt.String())
		if err != nil || got != dt {
			t.Errorf("ParseDataType(%q) = %v, %v", dt.String(), got, err)
		}
	}
	if _, err := ParseDataType("complex64"); err == nil {
		t.Error("ParseDataType(complex64) should fail")
	}
}

func TestIntegerDataTypeTruncates(t *testing.T) {
	x := MustNew([]float64{1.7, -2.9}, Shape{2}, Int32)
	got := x.Data()
	assertEqualFloat(t, 1, got[0], "truncate positive")
	assertEqualFloat(t, -2, got[1], "truncate negative")
}

// Shape Tests

func TestShapeNumElements(t *testing.T) {
	tests := []struct {
		shape    Shape
		expected int
	}{
		{Shape{}, 1},
		{Shape{5}, 5},
		{Shape{3, 4}, 12},
		{Shape{2, 3, 4}, 24},
		{Shape{2, Unknown}, -1},
	}

	for _, tt := range tests {
		if got := tt.shape.NumElements(); got != tt.expected {
			t.Errorf("Shape%v.NumElements() = %d, want %d", tt.shape, got, tt.expected)
		}
	}
}

func TestShapeRankWithUnknownDims(t *testing.T) {
	s := Shape{Unknown, 3}
	if s.Rank() != 2 {
		t.Errorf("Rank() = %d, want 2", s.Rank())
	}
	if s.IsFullyDefined() {
		t.Error("IsFullyDefined() should be false")
	}
	if !(Shape{2, 3}).IsFullyDefined() {
		t.Error("IsFullyDefined() should be true")
	}
}

func TestShapeValidation(t *testing.T) {
	for _, s := range []Shape{{1}, {3, 4}, {}} {
		if err := s.Validate(); err != nil {
			t.Errorf("Shape%v.Validate() failed: %v", s, err)
		}
	}
	for _, s := range []Shape{{0}, {3, 0}, {-1}} {
		if err := s.Validate(); err == nil {
			t.Errorf("Shape%v.Validate() should fail", s)
		}
	}
}

func TestBroadcastShapes(t *testing.T) {
	tests := []struct {
		a, b     Shape
		expected Shape
		wantErr  bool
	}{
		{Shape{3, 1}, Shape{3, 5}, Shape{3, 5}, false},
		{Shape{1, 5}, Shape{3, 5}, Shape{3, 5}, false},
		{Shape{5}, Shape{3, 5}, Shape{3, 5}, false},
		{Shape{}, Shape{2, 2}, Shape{2, 2}, false},
		{Shape{3, 4}, Shape{3, 5}, nil, true},
	}

	for _, tt := range tests {
		got, err := BroadcastShapes(tt.a, tt.b)
		if tt.wantErr {
			if err == nil {
				t.Errorf("BroadcastShapes(%v, %v) should fail", tt.a, tt.b)
			}
			continue
		}
		if err != nil {
			t.Errorf("BroadcastShapes(%v, %v) failed: %v", tt.a, tt.b, err)
			continue
		}
		assertEqualShape(t, tt.expected, got, "BroadcastShapes")
	}
}

// Tensor Tests

func TestNewRejectsMismatchedData(t *testing.T) {
	if _, err := New([]float64{1, 2, 3}, Shape{2, 2}, Float64); err == nil {
		t.Error("New() should reject 3 elements for shape [2 2]")
	}
}

func TestAt(t *testing.T) {
	x := MustNew([]float64{1, 2, 3, 4, 5, 6}, Shape{2, 3}, Float64)
	assertEqualFloat(t, 6, x.At(1, 2), "At(1, 2)")
	assertEqualFloat(t, 2, x.At(0, 1), "At(0, 1)")
	assertPanics(t, "At out of bounds", func() { x.At(2, 0) })
}

func TestDataReturnsCopy(t *testing.T) {
	x := MustNew([]float64{1, 2}, Shape{2}, Float64)
	d := x.Data()
	d[0] = 100
	assertEqualFloat(t, 1, x.At(0), "tensor must be unchanged")
}

func TestBinaryOps(t *testing.T) {
	a := MustNew([]float64{1, 2, 3, 4}, Shape{2, 2}, Float64)
	b := MustNew([]float64{10, 20}, Shape{2}, Float64)

	sum := a.Add(b)
	assertEqualShape(t, Shape{2, 2}, sum.Shape(), "add shape")
	for i, want := range []float64{11, 22, 13, 24} {
		assertEqualFloat(t, want, sum.Data()[i], "add broadcast")
	}

	diff := a.Sub(a)
	for _, v := range diff.Data() {
		assertEqualFloat(t, 0, v, "sub")
	}

	prod := a.Mul(Scalar(2, Float64))
	assertEqualFloat(t, 8, prod.At(1, 1), "mul scalar")

	quot := a.Div(MustNew([]float64{1, 2, 3, 4}, Shape{2, 2}, Float64))
	for _, v := range quot.Data() {
		assertEqualFloat(t, 1, v, "div")
	}

	assertPanics(t, "add incompatible", func() {
		a.Add(MustNew([]float64{1, 2, 3}, Shape{3}, Float64))
	})
}

func TestMatMul(t *testing.T) {
	a := MustNew([]float64{1, 2, 3, 4, 5, 6}, Shape{2, 3}, Float64)
	b := MustNew([]float64{7, 8, 9, 10, 11, 12}, Shape{3, 2}, Float64)

	c := a.MatMul(b)
	assertEqualShape(t, Shape{2, 2}, c.Shape(), "matmul shape")
	for i, want := range []float64{58, 64, 139, 154} {
		assertEqualFloat(t, want, c.Data()[i], "matmul")
	}

	assertPanics(t, "matmul inner mismatch", func() { a.MatMul(a) })
}

func TestMatMulLarge(t *testing.T) {
	// Large enough to split rows across goroutines.
	rng := rand.New(rand.NewPCG(1, 2))
	m, k, n := 96, 64, 48
	a := Uniform(Shape{m, k}, -1, 1, Float64, rng)
	b := Uniform(Shape{k, n}, -1, 1, Float64, rng)

	c := a.MatMul(b)
	assertEqualShape(t, Shape{m, n}, c.Shape(), "matmul shape")
	for _, ij := range [][2]int{{0, 0}, {m - 1, n - 1}, {m / 2, n / 3}} {
		var want float64
		for p := 0; p < k; p++ {
			want += a.At(ij[0], p) * b.At(p, ij[1])
		}
		assertEqualFloat(t, want, c.At(ij[0], ij[1]), "matmul element")
	}
}

func TestTranspose(t *testing.T) {
	a := MustNew([]float64{1, 2, 3, 4, 5, 6}, Shape{2, 3}, Float64)
	at := a.Transpose()
	assertEqualShape(t, Shape{3, 2}, at.Shape(), "transpose shape")
	assertEqualFloat(t, 4, at.At(0, 1), "transpose value")
}

func TestReshape(t *testing.T) {
	a := MustNew([]float64{1, 2, 3, 4, 5, 6}, Shape{2, 3}, Float64)

	assertEqualShape(t, Shape{3, 2}, a.Reshape(Shape{3, 2}).Shape(), "reshape")
	assertEqualShape(t, Shape{6, 1}, a.Reshape(Shape{Unknown, 1}).Shape(), "reshape inferred")
	assertPanics(t, "reshape wrong count", func() { a.Reshape(Shape{4, 2}) })
	assertPanics(t, "reshape two unknowns", func() { a.Reshape(Shape{Unknown, Unknown}) })
}

func TestSum(t *testing.T) {
	a := MustNew([]float64{1, 2, 3, 4, 5, 6}, Shape{2, 3}, Float64)

	assertEqualFloat(t, 21, a.Sum().Item(), "sum")

	rows := a.SumDim(1, false)
	assertEqualShape(t, Shape{2}, rows.Shape(), "sum dim 1 shape")
	assertEqualFloat(t, 6, rows.At(0), "sum dim 1 row 0")
	assertEqualFloat(t, 15, rows.At(1), "sum dim 1 row 1")

	cols := a.SumDim(0, true)
	assertEqualShape(t, Shape{1, 3}, cols.Shape(), "sum dim 0 keepdim shape")
	assertEqualFloat(t, 9, cols.At(0, 2), "sum dim 0 col 2")
}

func TestCreation(t *testing.T) {
	z := Zeros(Shape{2, 2}, Float32)
	o := Ones(Shape{2, 2}, Float32)
	if !z.Add(o).Equal(o) {
		t.Error("zeros + ones should equal ones")
	}

	rng := rand.New(rand.NewPCG(1, 2))
	u := Uniform(Shape{100}, -1, 1, Float64, rng)
	for _, v := range u.Data() {
		if v < -1 || v >= 1 {
			t.Fatalf("uniform value %v out of range", v)
		}
	}
}

func TestVariableAssign(t *testing.T) {
	v := NewVariable("w", Zeros(Shape{2}, Float32), true)

	if err := v.Assign(Ones(Shape{2}, Float64)); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}
	if v.DType() != Float32 {
		t.Errorf("Assign must keep dtype, got %s", v.DType())
	}
	if err := v.AssignAdd(Ones(Shape{2}, Float32)); err != nil {
		t.Fatalf("AssignAdd failed: %v", err)
	}
	assertEqualFloat(t, 2, v.Value().At(1), "assign_add")

	if err := v.Assign(Ones(Shape{3}, Float32)); err == nil {
		t.Error("Assign with wrong shape should fail")
	}
}
