package pyast

import (
	"context"
	"errors"
	"testing"
)

func parseSource(t *testing.T, src string) *File {
	t.Helper()
	f, err := Parse(context.Background(), "test.py", []byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return f
}

func findFunction(t *testing.T, f *File, name string) Function {
	t.Helper()
	for _, fn := range f.Functions() {
		if fn.Name() == name {
			return fn
		}
	}
	t.Fatalf("function %q not found", name)
	return Function{}
}

func TestFunctions(t *testing.T) {
	src := `def top():
    pass

async def handler():
    pass

class Service:
    def method(self):
        def nested():
            pass
        return nested
`
	f := parseSource(t, src)

	fns := f.Functions()
	if len(fns) != 4 {
		t.Fatalf("Functions() returned %d functions, want 4", len(fns))
	}

	wantNames := []string{"top", "handler", "method", "nested"}
	wantLines := []int{1, 4, 8, 9}
	for i, fn := range fns {
		if fn.Name() != wantNames[i] {
			t.Errorf("function %d name = %q, want %q", i, fn.Name(), wantNames[i])
		}
		if fn.Line() != wantLines[i] {
			t.Errorf("function %q line = %d, want %d", fn.Name(), fn.Line(), wantLines[i])
		}
	}
}

func TestParse_SyntaxError(t *testing.T) {
	_, err := Parse(context.Background(), "bad.py", []byte("def broken(:\n    pass\n"))
	if !errors.Is(err, ErrSyntax) {
		t.Fatalf("Parse error = %v, want ErrSyntax", err)
	}
}

func TestParse_InvalidUTF8(t *testing.T) {
	_, err := Parse(context.Background(), "bad.py", []byte{0xff, 0xfe, 0x00})
	if !errors.Is(err, ErrEncoding) {
		t.Fatalf("Parse error = %v, want ErrEncoding", err)
	}
}
