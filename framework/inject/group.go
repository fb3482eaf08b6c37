package inject

import (
	"context"
	"errors"
	"sync"
)

// Group runs concurrent units of work that all inherit the scope active
// when the group was created. Each task receives that context; scopes a
// task enters via With stay invisible to its siblings and to the
// caller, because entering always copies (see Bind).
//
//	g := inject.NewGroup(ctx)
//	g.Go(fetchUsers)
//	g.Go(fetchOrders)
//	err := g.Wait()
type Group struct {
	ctx context.Context

	wg   sync.WaitGroup
	mu   sync.Mutex
	errs []error
}

// NewGroup creates a Group whose tasks observe ctx's scope as of this
// call.
func NewGroup(ctx context.Context) *Group {
	return &Group{ctx: ctx}
}

// Go runs fn on its own goroutine. A non-nil error is collected and
// surfaced by Wait; it does not cancel sibling tasks.
func (g *Group) Go(fn func(context.Context) error) {
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		if err := fn(g.ctx); err != nil {
			g.mu.Lock()
			g.errs = append(g.errs, err)
			g.mu.Unlock()
		}
	}()
}

// Wait blocks until every task has returned, then joins their errors
// via errors.Join. It returns nil when all tasks succeeded.
func (g *Group) Wait() error {
	g.wg.Wait()
	g.mu.Lock()
	defer g.mu.Unlock()
	return errors.Join(g.errs...)
}
