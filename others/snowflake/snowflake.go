package main

// Snowflake IDs with ZooKeeper-assigned worker numbers. Each process
// claims a worker number by creating an ephemeral sequential znode under
// the service path, so restarts and scale-out never hand two live
// processes the same number. The 64-bit layout is the usual
// | 0 | 41-bit timestamp | 10-bit worker | 12-bit sequence |.
//
// Compared to random cuuid identifiers these are ordered and half the
// size, but they need ZooKeeper and a monotonic clock.

import (
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/go-zookeeper/zk"
	"github.com/lab2439/cuuid"
)

const (
	epoch int64 = 1672531200000 // UTC 2023-01-01 00:00:00, in ms

	workerBits = 10
	seqBits    = 12

	workerShift    = seqBits
	timestampShift = seqBits + workerBits
	seqMask        = -1 ^ (-1 << seqBits)
	workerMax      = 1 << workerBits

	zkRoot = "/snowflake"
)

// Node generates snowflake IDs for one claimed worker number.
type Node struct {
	mu     sync.Mutex
	last   int64
	seq    int64
	worker int64
}

// claimWorker registers an ephemeral sequential znode under the service
// path and derives the worker number from the assigned sequence. The
// znode disappears with the session, releasing the number.
func claimWorker(conn *zk.Conn, service string) (int64, error) {
	servicePath := zkRoot + "/" + service
	for _, path := range []string{zkRoot, servicePath} {
		if _, err := conn.Create(path, nil, 0, zk.WorldACL(zk.PermAll)); err != nil && err != zk.ErrNodeExists {
			return 0, fmt.Errorf("ensure %s: %w", path, err)
		}
	}

	created, err := conn.Create(servicePath+"/worker-", nil,
		zk.FlagEphemeral|zk.FlagSequence, zk.WorldACL(zk.PermAll))
	if err != nil {
		return 0, fmt.Errorf("claim worker: %w", err)
	}

	// The last 10 digits of the created path are the zk sequence
	seq, err := strconv.ParseInt(created[len(created)-10:], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse worker sequence from %s: %w", created, err)
	}
	return seq % workerMax, nil
}

// NewNode connects to ZooKeeper and claims a worker number.
func NewNode(servers []string, service string) (*Node, error) {
	conn, _, err := zk.Connect(servers, 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("connect zookeeper: %w", err)
	}

	worker, err := claimWorker(conn, service)
	if err != nil {
		conn.Close()
		return nil, err
	}

	log.Printf("claimed snowflake worker %d", worker)
	return &Node{worker: worker}, nil
}

// Next returns the next snowflake ID. Small clock rollbacks are waited
// out; larger ones refuse to generate rather than risk duplicates.
func (n *Node) Next() (int64, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	now := time.Now().UnixMilli()
	if now < n.last {
		offset := n.last - now
		if offset > 5 {
			return 0, fmt.Errorf("clock moved back %dms, refusing to generate", offset)
		}
		time.Sleep(time.Duration(offset) * time.Millisecond)
		now = time.Now().UnixMilli()
		if now < n.last {
			return 0, fmt.Errorf("clock still behind after waiting")
		}
	}

	if now == n.last {
		n.seq = (n.seq + 1) & seqMask
		if n.seq == 0 {
			// Sequence exhausted for this millisecond, spin to the next
			for now <= n.last {
				now = time.Now().UnixMilli()
			}
		}
	} else {
		n.seq = 0
	}
	n.last = now

	id := ((now - epoch) << timestampShift) | (n.worker << workerShift) | n.seq
	return id, nil
}

func main() {
	// Requires a ZooKeeper at localhost:2181, e.g.:
	// docker run --name zk -p 2181:2181 -d zookeeper
	node, err := NewNode([]string{"127.0.0.1:2181"}, "order-service")
	if err != nil {
		log.Fatalf("init snowflake node: %v", err)
	}

	// Print snowflake IDs next to random cuuid keys of the same events
	// to contrast the two schemes.
	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 5; i++ {
				id, err := node.Next()
				if err != nil {
					log.Println(err)
					continue
				}
				key, err := cuuid.Must(cuuid.New()).Encode(cuuid.FormatBase62)
				if err != nil {
					log.Println(err)
					continue
				}
				fmt.Printf("snowflake=%d cuuid=%s\n", id, key)
			}
		}()
	}
	wg.Wait()
}
