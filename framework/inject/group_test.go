package inject_test

import (
	"context"
	"errors"
	"testing"

	"github.com/km-arc/go-inject/framework/inject"
)

func TestGroup_TasksInheritScopeAtCreation(t *testing.T) {
	key := inject.NewKey("batch", inject.Value("none"))

	ctx := inject.Bind(baseContext(), key.To("batch-7"))
	g := inject.NewGroup(ctx)

	observed := make(chan string, 2)
	for i := 0; i < 2; i++ {
		g.Go(func(ctx context.Context) error {
			observed <- key.Current(ctx)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("Wait returned %v, want nil", err)
	}
	close(observed)

	for got := range observed {
		if got != "batch-7" {
			t.Errorf("task observed %q, want 'batch-7'", got)
		}
	}
}

func TestGroup_ChildScopesInvisibleToSiblingsAndParent(t *testing.T) {
	key := inject.NewKey("shard", inject.Value(0))

	ctx := baseContext()
	g := inject.NewGroup(ctx)

	for i := 1; i <= 10; i++ {
		shard := i
		g.Go(func(ctx context.Context) error {
			return inject.With(ctx, func(ctx context.Context) error {
				for read := 0; read < 50; read++ {
					if got := key.Current(ctx); got != shard {
						t.Errorf("shard %d observed %d", shard, got)
					}
				}
				return nil
			}, key.To(shard))
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("Wait returned %v, want nil", err)
	}

	if got := key.Current(ctx); got != 0 {
		t.Errorf("parent after Wait: got %d, want 0", got)
	}
}

func TestGroup_WaitJoinsTaskErrors(t *testing.T) {
	errA := errors.New("a failed")
	errB := errors.New("b failed")

	g := inject.NewGroup(baseContext())
	g.Go(func(context.Context) error { return errA })
	g.Go(func(context.Context) error { return nil })
	g.Go(func(context.Context) error { return errB })

	err := g.Wait()
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Errorf("joined error %v should contain both failures", err)
	}
}

func TestGroup_WaitNilWhenAllSucceed(t *testing.T) {
	g := inject.NewGroup(baseContext())
	g.Go(func(context.Context) error { return nil })
	g.Go(func(context.Context) error { return nil })

	if err := g.Wait(); err != nil {
		t.Errorf("Wait returned %v, want nil", err)
	}
}
