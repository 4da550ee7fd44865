package main

// Block-based unique ID allocation backed by MySQL. Each tag reserves
// contiguous ID blocks with a short transaction; an in-memory hot block
// serves allocations and a spare block is prefetched before the hot one
// drains, so the database is only touched once per block. Numeric block
// IDs complement random cuuid identifiers: compact and roughly ordered,
// at the cost of a central database.
//
// Schema:
//
//	CREATE TABLE id_alloc (
//	    tag        VARCHAR(64) PRIMARY KEY,
//	    max_id     BIGINT NOT NULL,
//	    block_size INT    NOT NULL
//	);

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/lab2439/cuuid"
)

// Block is a reserved ID range (base, max]. Next is advanced atomically.
type Block struct {
	next int64
	max  int64
	size int64
}

// Take returns the next ID in the block, or false when the block is drained.
func (b *Block) Take() (int64, bool) {
	id := atomic.AddInt64(&b.next, 1)
	return id, id <= b.max
}

// Remaining returns how many IDs the block can still hand out.
func (b *Block) Remaining() int64 {
	return b.max - atomic.LoadInt64(&b.next)
}

// Store performs the database side of block reservation.
type Store struct {
	db *sql.DB
}

// OpenStore connects to MySQL with conservative pool settings.
func OpenStore(dsn string) (*Store, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)
	return &Store{db: db}, nil
}

// ReserveBlock atomically advances max_id for the tag and returns the
// freshly reserved range. The UPDATE-then-SELECT inside one transaction
// guarantees no two callers receive overlapping blocks.
func (s *Store) ReserveBlock(ctx context.Context, tag string) (*Block, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"UPDATE id_alloc SET max_id = max_id + block_size WHERE tag = ?", tag); err != nil {
		return nil, err
	}

	var maxID int64
	var size int
	if err := tx.QueryRowContext(ctx,
		"SELECT max_id, block_size FROM id_alloc WHERE tag = ?", tag).Scan(&maxID, &size); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &Block{next: maxID - int64(size), max: maxID, size: int64(size)}, nil
}

// Allocator hands out IDs for one tag from a hot block, swapping in a
// prefetched spare when the hot block drains.
type Allocator struct {
	tag   string
	store *Store

	mu        sync.Mutex
	hot       *Block
	spare     *Block
	refilling int32
}

// NewAllocator reserves the first block for the tag eagerly so the first
// Next call never waits on the database.
func NewAllocator(ctx context.Context, store *Store, tag string) (*Allocator, error) {
	hot, err := store.ReserveBlock(ctx, tag)
	if err != nil {
		return nil, fmt.Errorf("reserve initial block for %q: %w", tag, err)
	}
	return &Allocator{tag: tag, store: store, hot: hot}, nil
}

// Next returns the next unique ID for the allocator's tag.
func (a *Allocator) Next(ctx context.Context) (int64, error) {
	if id, ok := a.hot.Take(); ok {
		a.maybeRefill()
		return id, nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	// Another goroutine may have swapped blocks while we waited
	if id, ok := a.hot.Take(); ok {
		return id, nil
	}

	if a.spare != nil {
		a.hot, a.spare = a.spare, nil
		if id, ok := a.hot.Take(); ok {
			return id, nil
		}
	}

	// No spare ready: fall back to a synchronous reservation
	block, err := a.store.ReserveBlock(ctx, a.tag)
	if err != nil {
		return 0, err
	}
	a.hot = block
	id, ok := a.hot.Take()
	if !ok {
		return 0, errors.New("freshly reserved block is empty")
	}
	return id, nil
}

// maybeRefill prefetches the spare block once the hot block runs below
// 20% capacity. Only one refill runs at a time.
func (a *Allocator) maybeRefill() {
	hot := a.hot
	if a.spare != nil || hot.Remaining() > hot.size/5 {
		return
	}
	if !atomic.CompareAndSwapInt32(&a.refilling, 0, 1) {
		return
	}

	go func() {
		defer atomic.StoreInt32(&a.refilling, 0)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		block, err := a.store.ReserveBlock(ctx, a.tag)
		if err != nil {
			log.Printf("prefetch block for %q: %v", a.tag, err)
			return
		}

		a.mu.Lock()
		a.spare = block
		a.mu.Unlock()
	}()
}

func main() {
	// Adjust the DSN for your environment; the id_alloc table must
	// contain a row for the tag used below.
	dsn := "root:root@tcp(127.0.0.1:3306)/ids?parseTime=true"

	store, err := OpenStore(dsn)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	alloc, err := NewAllocator(ctx, store, "invoice")
	if err != nil {
		log.Fatal(err)
	}

	// Each worker gets a random cuuid key rendered in base-62, so log
	// lines from different workers stay distinguishable.
	var wg sync.WaitGroup
	start := time.Now()

	for w := 0; w < 10; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			worker := cuuid.Must(cuuid.New())
			key, err := worker.Encode(cuuid.FormatBase62)
			if err != nil {
				log.Fatal(err)
			}

			var last int64
			for i := 0; i < 500; i++ {
				id, err := alloc.Next(ctx)
				if err != nil {
					log.Printf("worker %s: %v", key, err)
					return
				}
				last = id
			}
			log.Printf("worker %s: last id %d", key, last)
		}()
	}

	wg.Wait()
	log.Printf("allocated 5000 ids in %s", time.Since(start))
}
