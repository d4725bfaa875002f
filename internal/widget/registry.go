package widget

import (
	"context"
	"fmt"
	"log"
	"sync"
)

// Registry tracks mounted shells by container id. It backs the
// programmatic mount/unmount surface and doubles as the process-wide
// guard against double injection: mounting the same container id twice
// is rejected rather than silently stacking widgets.
type Registry struct {
	mu     sync.Mutex
	shells map[string]*Shell
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{shells: make(map[string]*Shell)}
}

// Mount creates and mounts a shell for cfg. It fails if the container id
// is already occupied.
func (r *Registry) Mount(ctx context.Context, cfg Config, opts ...ShellOption) (*Shell, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.shells[cfg.ContainerID]; exists {
		return nil, fmt.Errorf("container %q already has a mounted widget", cfg.ContainerID)
	}

	sh := NewShell(cfg, opts...)
	sh.Mount(ctx)
	r.shells[cfg.ContainerID] = sh
	return sh, nil
}

// MountOnce mounts cfg unless its container id is already occupied, in
// which case the existing shell is returned. This is the declarative
// injector's self-guard: including the script twice is a no-op.
func (r *Registry) MountOnce(ctx context.Context, cfg Config, opts ...ShellOption) *Shell {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.shells[cfg.ContainerID]; ok {
		log.Printf("widget: container %s already mounted, skipping", cfg.ContainerID)
		return existing
	}

	sh := NewShell(cfg, opts...)
	sh.Mount(ctx)
	r.shells[cfg.ContainerID] = sh
	return sh
}

// Unmount tears down the shell in the given container. Unknown ids are a
// no-op.
func (r *Registry) Unmount(containerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sh, ok := r.shells[containerID]
	if !ok {
		return
	}
	sh.Unmount()
	delete(r.shells, containerID)
}

// Get returns the shell mounted in the given container, if any.
func (r *Registry) Get(containerID string) (*Shell, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sh, ok := r.shells[containerID]
	return sh, ok
}

// Len returns the number of mounted shells.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.shells)
}
