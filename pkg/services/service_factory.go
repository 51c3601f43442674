package services

import (
	"sync"
)

// ServiceFactory hands out shared container services, one per option set.
// Services hold no per-file state, so a single instance serves every worker.
type ServiceFactory struct {
	mu          sync.RWMutex
	services    map[Options]ContainerService
	initialized bool
}

// NewServiceFactory creates a new service factory instance
func NewServiceFactory() *ServiceFactory {
	return &ServiceFactory{}
}

// Initialize prepares the factory for use. It is called lazily by ContainerService.
func (sf *ServiceFactory) Initialize() error {
	sf.mu.Lock()
	defer sf.mu.Unlock()

	if sf.initialized {
		return nil
	}

	sf.services = make(map[Options]ContainerService)
	sf.initialized = true
	return nil
}

// ContainerService returns the shared service for opts, creating it on first use
func (sf *ServiceFactory) ContainerService(opts Options) (ContainerService, error) {
	sf.mu.RLock()
	initialized := sf.initialized
	svc, ok := sf.services[opts]
	sf.mu.RUnlock()

	if ok {
		return svc, nil
	}
	if !initialized {
		if err := sf.Initialize(); err != nil {
			return nil, err
		}
	}

	sf.mu.Lock()
	defer sf.mu.Unlock()

	if !sf.initialized {
		return nil, ErrServiceNotInitialized
	}
	if svc, ok := sf.services[opts]; ok {
		return svc, nil
	}
	svc = NewContainerService(opts)
	sf.services[opts] = svc
	return svc, nil
}

// IsInitialized returns whether the factory has been initialized
func (sf *ServiceFactory) IsInitialized() bool {
	sf.mu.RLock()
	defer sf.mu.RUnlock()
	return sf.initialized
}

// Shutdown releases every cached service
func (sf *ServiceFactory) Shutdown() error {
	sf.mu.Lock()
	defer sf.mu.Unlock()

	sf.services = nil
	sf.initialized = false
	return nil
}
