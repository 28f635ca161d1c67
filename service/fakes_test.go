package service_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

type memCache struct {
	mu      sync.Mutex
	data    map[string]string
	writes  map[string][]string
	scanErr error
	// vanish lists keys deleted right after enumeration, before the read.
	vanish map[string]bool
}

func newMemCache(data map[string]string) *memCache {
	c := &memCache{data: map[string]string{}, writes: map[string][]string{}, vanish: map[string]bool{}}
	for k, v := range data {
		c.data[k] = v
	}
	return c
}

func (c *memCache) ScanKeys(ctx context.Context, fn func(id string) error) error {
	if c.scanErr != nil {
		return c.scanErr
	}
	c.mu.Lock()
	keys := make([]string, 0, len(c.data))
	for k := range c.data {
		keys = append(keys, k)
	}
	c.mu.Unlock()
	sort.Strings(keys)

	for _, k := range keys {
		if c.vanish[k] {
			c.mu.Lock()
			delete(c.data, k)
			c.mu.Unlock()
		}
		if err := fn(k); err != nil {
			return err
		}
	}
	return nil
}

func (c *memCache) Get(ctx context.Context, id string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[id]
	return v, ok, nil
}

func (c *memCache) Set(ctx context.Context, id, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[id] = value
	c.writes[id] = append(c.writes[id], value)
	return nil
}

func (c *memCache) value(id string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data[id]
}

func (c *memCache) writeCount(id string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.writes[id])
}

func (c *memCache) distinctWrites(id string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return distinct(c.writes[id])
}

type memRecords struct {
	mu     sync.Mutex
	rows   map[string]string
	writes map[string][]string
	err    error
}

func newMemRecords(ids ...string) *memRecords {
	r := &memRecords{rows: map[string]string{}, writes: map[string][]string{}}
	for _, id := range ids {
		r.rows[id] = "2001-01-01"
	}
	return r
}

func (r *memRecords) MarkExpired(ctx context.Context, fbid, sentinel string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes[fbid] = append(r.writes[fbid], sentinel)
	if r.err != nil {
		return 0, r.err
	}
	current, ok := r.rows[fbid]
	if !ok || current == sentinel {
		return 0, nil
	}
	r.rows[fbid] = sentinel
	return 1, nil
}

func (r *memRecords) expireDate(fbid string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rows[fbid]
}

func (r *memRecords) writeCount(fbid string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.writes[fbid])
}

func (r *memRecords) distinctWrites(fbid string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return distinct(r.writes[fbid])
}

type scheduled struct {
	at time.Time
	id string
}

type recordingScheduler struct {
	mu     sync.Mutex
	tasks  []scheduled
	reject bool
}

func (s *recordingScheduler) ScheduleAt(at time.Time, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.reject {
		return false
	}
	s.tasks = append(s.tasks, scheduled{at: at, id: id})
	return true
}

func (s *recordingScheduler) all() []scheduled {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]scheduled(nil), s.tasks...)
}

func distinct(values []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

var errScan = errors.New("redis: connection refused")
