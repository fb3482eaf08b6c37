package inject

import (
	"strings"
	"testing"

	"github.com/km-arc/go-inject/framework/config"
)

// Corrupting a store entry under a key's identity is only reachable
// through unsafe use, so the recovery path is exercised white-box.
func TestRecover_TypeMismatchPanics(t *testing.T) {
	key := NewKey("port", Value(8080))
	s := NewStore(func() config.Classification { return config.Production })
	s.put(key, "not-an-int")

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("reading a mismatched entry should panic, not coerce")
		}
		msg, ok := r.(string)
		if !ok {
			t.Fatalf("panic value: got %T, want string", r)
		}
		for _, want := range []string{"port", "string", "int"} {
			if !strings.Contains(msg, want) {
				t.Errorf("panic %q should name %q", msg, want)
			}
		}
	}()
	_ = key.CurrentIn(s)
}

func TestRecover_NilEntryYieldsZeroValue(t *testing.T) {
	type Notifier interface{ Notify() }
	key := NewKey[Notifier]("notifier", func() Notifier { return nil })
	s := NewStore(func() config.Classification { return config.Production })

	if got := key.CurrentIn(s); got != nil {
		t.Errorf("nil production default: got %v, want nil", got)
	}
}

func TestNewKey_RequiresProductionDefault(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewKey without a production default should panic")
		}
	}()
	_ = NewKey[int]("broken", nil)
}

func TestNewKey_DerivesNameFromType(t *testing.T) {
	key := NewKey("", Value("x"))
	if key.Name() != "string" {
		t.Errorf("derived name: got %q, want 'string'", key.Name())
	}
}
