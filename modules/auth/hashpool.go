package auth

import (
	"context"
	"fmt"
	"log"
	"sync"
)

// DefaultHashWorkers is the hash pool size when AUTH_HASH_WORKERS is unset.
const DefaultHashWorkers = 4

// HashPool runs bcrypt operations on a fixed set of workers so CPU-bound
// hashing cannot stall concurrent request handling. Submitting callers
// block until a worker picks up the task or their context is done.
type HashPool struct {
	hasher  *PasswordHasher
	tasks   chan func()
	wg      sync.WaitGroup
	cancel  context.CancelFunc
	mu      sync.RWMutex
	running bool
}

// NewHashPool creates a pool around the given hasher.
func NewHashPool(hasher *PasswordHasher) *HashPool {
	return &HashPool{
		hasher: hasher,
		tasks:  make(chan func()),
	}
}

// Start launches numWorkers workers.
func (p *HashPool) Start(ctx context.Context, numWorkers int) error {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return fmt.Errorf("hash pool is already running")
	}
	p.running = true
	p.mu.Unlock()

	if numWorkers < 1 {
		numWorkers = 1
	}

	workerCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for i := 0; i < numWorkers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-workerCtx.Done():
					return
				case task := <-p.tasks:
					task()
				}
			}
		}()
	}

	log.Printf("[auth] Hash pool started with %d workers", numWorkers)
	return nil
}

// Stop stops the pool and waits for in-flight tasks, bounded by ctx.
func (p *HashPool) Stop(ctx context.Context) error {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return nil
	}
	p.running = false
	p.mu.Unlock()

	if p.cancel != nil {
		p.cancel()
	}

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Hash computes a password hash on the pool.
func (p *HashPool) Hash(ctx context.Context, password string) (string, error) {
	type result struct {
		hash string
		err  error
	}
	out := make(chan result, 1)

	task := func() {
		hash, err := p.hasher.Hash(password)
		out <- result{hash: hash, err: err}
	}

	select {
	case p.tasks <- task:
	case <-ctx.Done():
		return "", ctx.Err()
	}

	select {
	case r := <-out:
		return r.hash, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Verify checks a password against a hash on the pool.
func (p *HashPool) Verify(ctx context.Context, password, hash string) (bool, error) {
	out := make(chan bool, 1)

	task := func() {
		out <- p.hasher.Verify(password, hash)
	}

	select {
	case p.tasks <- task:
	case <-ctx.Done():
		return false, ctx.Err()
	}

	select {
	case ok := <-out:
		return ok, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}
