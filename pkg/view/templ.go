package view

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/a-h/templ"
)

// ComponentFunc builds the component of a view from the view vars bag.
type ComponentFunc func(bag map[string]any) templ.Component

// Templ renders views implemented as templ components, looked up by view
// name in a registry.
//
// Example:
//
//	views := view.NewTempl()
//	views.Register("pages/home", func(bag map[string]any) templ.Component {
//	    return pages.Home(bag["vars"].(map[string]any))
//	})
type Templ struct {
	components map[string]ComponentFunc
	mu         sync.RWMutex
}

// NewTempl returns an empty registry.
func NewTempl() *Templ {
	return &Templ{components: make(map[string]ComponentFunc)}
}

// Register adds or replaces the component of a view.
func (t *Templ) Register(name string, fn ComponentFunc) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.components[name] = fn
}

// Render renders the component registered under name.
func (t *Templ) Render(ctx context.Context, w io.Writer, name string, bag map[string]any) error {
	t.mu.RLock()
	fn, ok := t.components[name]
	t.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrViewNotFound, name)
	}
	return fn(bag).Render(ctx, w)
}
