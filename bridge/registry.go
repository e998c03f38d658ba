package bridge

import (
	"context"
	"fmt"
	"sort"

	"github.com/cornelk/hashmap"
	"github.com/sirupsen/logrus"
	"github.com/srg/bonded/internal/groutine"
)

// Registry holds the modules registered with the host runtime and
// dispatches method invocations to worker goroutines.
type Registry struct {
	modules *hashmap.Map[string, Module]
	logger  *logrus.Logger
}

// NewRegistry creates an empty Registry
func NewRegistry(logger *logrus.Logger) *Registry {
	if logger == nil {
		logger = logrus.New()
	}
	return &Registry{
		modules: hashmap.New[string, Module](),
		logger:  logger,
	}
}

// Register adds m; a module name can only be registered once
func (r *Registry) Register(m Module) error {
	if !r.modules.Insert(m.Name(), m) {
		return fmt.Errorf("module %q already registered", m.Name())
	}
	r.logger.WithField("module", m.Name()).Debug("Module registered")
	return nil
}

// Modules returns the registered module names, sorted
func (r *Registry) Modules() []string {
	names := make([]string, 0, r.modules.Len())
	r.modules.Range(func(name string, _ Module) bool {
		names = append(names, name)
		return true
	})
	sort.Strings(names)
	return names
}

// Invoke runs module.method on a new goroutine and returns immediately.
// The promise is always settled: unknown targets and panics reject with ERROR.
func (r *Registry) Invoke(ctx context.Context, module, method string, promise Promise) {
	m, ok := r.modules.Get(module)
	if !ok {
		promise.Reject(CodeError, fmt.Sprintf("module %q not found", module))
		return
	}
	fn, ok := m.Methods()[method]
	if !ok {
		promise.Reject(CodeError, fmt.Sprintf("method %q not found in module %q", method, module))
		return
	}

	log := r.logger.WithFields(logrus.Fields{
		"module": module,
		"method": method,
	})
	log.Debug("Dispatching bridge call")

	groutine.Go(ctx, "bridge:"+method, func(ctx context.Context) {
		fn(ctx, promise)
	}, func(p any) {
		log.WithField("panic", p).Error("Bridge call panicked")
		promise.Reject(CodeError, fmt.Sprint(p))
	})
}

// Call invokes module.method and waits for the result
func (r *Registry) Call(ctx context.Context, module, method string) (any, error) {
	f := NewFuture()
	r.Invoke(ctx, module, method, f)
	return f.Await(ctx)
}
