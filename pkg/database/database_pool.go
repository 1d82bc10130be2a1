package database

import (
	"errors"
	"sort"
	"sync"
)

type databasePool struct {
	mu          sync.RWMutex
	connections map[string]*Database
}

func newDatabasePool() *databasePool {
	return &databasePool{
		connections: make(map[string]*Database),
	}
}

func (p *databasePool) registerDatabase(name string, db *Database) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.connections[name]; exists {
		return ErrRegisterConnection.WithDetail("name", name).WithDetail("reason", "connection already exists")
	}

	p.connections[name] = db
	return nil
}

func (p *databasePool) getDatabase(name string) (*Database, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	db, exists := p.connections[name]
	return db, exists
}

func (p *databasePool) names() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	names := make([]string, 0, len(p.connections))
	for name := range p.connections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (p *databasePool) closeAll() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	for name, db := range p.connections {
		if err := db.Close(); err != nil {
			errs = append(errs, ErrCloseDatabase.WithDetail("name", name).WithCause(err))
		}
	}

	return errors.Join(errs...)
}
