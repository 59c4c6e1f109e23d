package registry

import (
	"hash/fnv"
	"sort"
	"sync"
)

const shardCount = 32

// Conn is one live connection handle. Send must not block: a connection
// that cannot accept a frame reports an error instead of stalling the caller.
type Conn interface {
	ID() string
	Send(payload []byte) error
}

// Registry maps user ids to their currently open connections.
type Registry interface {
	Register(userID string, conn Conn)
	Deregister(userID string, conn Conn)
	ConnectionsFor(userID string) []Conn
}

type shard struct {
	mu    sync.RWMutex
	users map[string]map[string]Conn
}

// ShardedRegistry spreads users over independently locked shards so that
// connects, disconnects and lookups for unrelated users do not contend.
type ShardedRegistry struct {
	shards [shardCount]*shard

	// owners records which user a connection id currently belongs to.
	ownersMu sync.Mutex
	owners   map[string]string
}

func New() *ShardedRegistry {
	r := &ShardedRegistry{owners: make(map[string]string)}
	for i := range r.shards {
		r.shards[i] = &shard{users: make(map[string]map[string]Conn)}
	}
	return r
}

func (r *ShardedRegistry) shardFor(userID string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return r.shards[h.Sum32()%shardCount]
}

// Register adds conn to userID's set. Registering the same handle again is a
// no-op; a handle still listed under a different user is moved.
func (r *ShardedRegistry) Register(userID string, conn Conn) {
	r.ownersMu.Lock()
	previous, owned := r.owners[conn.ID()]
	r.owners[conn.ID()] = userID
	r.ownersMu.Unlock()

	if owned && previous != userID {
		r.shardFor(previous).remove(previous, conn.ID())
	}

	s := r.shardFor(userID)
	s.mu.Lock()
	conns, ok := s.users[userID]
	if !ok {
		conns = make(map[string]Conn)
		s.users[userID] = conns
	}
	conns[conn.ID()] = conn
	s.mu.Unlock()
}

// Deregister removes conn from userID's set. Unknown pairs are ignored.
func (r *ShardedRegistry) Deregister(userID string, conn Conn) {
	r.ownersMu.Lock()
	if owner, ok := r.owners[conn.ID()]; ok && owner == userID {
		delete(r.owners, conn.ID())
	}
	r.ownersMu.Unlock()

	r.shardFor(userID).remove(userID, conn.ID())
}

func (s *shard) remove(userID, connID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conns, ok := s.users[userID]
	if !ok {
		return
	}
	delete(conns, connID)
	if len(conns) == 0 {
		delete(s.users, userID)
	}
}

// ConnectionsFor returns a snapshot of userID's connections ordered by id.
func (r *ShardedRegistry) ConnectionsFor(userID string) []Conn {
	s := r.shardFor(userID)
	s.mu.RLock()
	conns := s.users[userID]
	out := make([]Conn, 0, len(conns))
	for _, c := range conns {
		out = append(out, c)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// Count returns the number of registered connections across all users.
func (r *ShardedRegistry) Count() int {
	total := 0
	for _, s := range r.shards {
		s.mu.RLock()
		for _, conns := range s.users {
			total += len(conns)
		}
		s.mu.RUnlock()
	}
	return total
}

// Users returns the number of users holding at least one connection.
func (r *ShardedRegistry) Users() int {
	total := 0
	for _, s := range r.shards {
		s.mu.RLock()
		total += len(s.users)
		s.mu.RUnlock()
	}
	return total
}
