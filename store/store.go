package store

import (
	"errors"
	"sort"
	"sync"

	"github.com/golang/glog"
)

var (
	// ErrAlreadyExist error returns when Add attempts to add already existing item
	ErrAlreadyExist = errors.New("already exists")
	// ErrNotFound error returns when Remove or Get attempts to access a non existing item
	ErrNotFound = errors.New("not found")
	// ErrStopped error returns when the store is accessed after Stop
	ErrStopped = errors.New("store is stopped")
)

type storeOp uint8

const (
	addItem storeOp = iota + 1
	removeItem
	getItem
	listItems
)

// Storable is anything the store can keep, benchmark series are keyed by
// their algorithm name.
type Storable interface {
	Key() string
}

var _ Storable = &item{}

type item struct {
	key string
}

func (i *item) Key() string {
	return i.key
}

type Manager interface {
	Add(Storable) error
	Remove(Storable) error
	List() []Storable
	Get(string) Storable
	Stop()
}

var _ Manager = &itemStore{}

type mgrReply struct {
	item []Storable
	err  error
}

type storeCh struct {
	op      storeOp
	item    []Storable
	replyCh chan mgrReply
	err     chan error
}

type itemStore struct {
	stopCh   chan struct{}
	stopOnce sync.Once
	opCh     chan storeCh
}

// send hands msg to the manager, it fails once the store is stopped.
func (s *itemStore) send(msg storeCh) error {
	select {
	case <-s.stopCh:
		return ErrStopped
	default:
	}
	select {
	case s.opCh <- msg:
		return nil
	case <-s.stopCh:
		return ErrStopped
	}
}

func (s *itemStore) Add(i Storable) error {
	err := make(chan error)
	if serr := s.send(storeCh{
		op:   addItem,
		item: []Storable{i},
		err:  err,
	}); serr != nil {
		return serr
	}
	// Return the result of the operation
	return <-err
}

func (s *itemStore) Remove(i Storable) error {
	err := make(chan error)
	if serr := s.send(storeCh{
		op:   removeItem,
		item: []Storable{i},
		err:  err,
	}); serr != nil {
		return serr
	}
	return <-err
}

func (s *itemStore) Get(key string) Storable {
	repl := make(chan mgrReply)
	if err := s.send(storeCh{
		op: getItem,
		item: []Storable{
			&item{
				key: key,
			},
		},
		replyCh: repl,
	}); err != nil {
		return nil
	}
	r := <-repl
	if r.err != nil {
		return nil
	}

	return r.item[0]
}

// List returns all stored items ordered by key.
func (s *itemStore) List() []Storable {
	repl := make(chan mgrReply)
	if err := s.send(storeCh{
		op:      listItems,
		replyCh: repl,
	}); err != nil {
		return nil
	}
	r := <-repl

	return r.item
}

// Stop terminates the manager. Add and Remove then fail with ErrStopped,
// Get and List return nothing.
func (s *itemStore) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
	})
}

func (s *itemStore) manager() {
	items := make(map[string]Storable)
	for {
		select {
		case <-s.stopCh:
			return
		case msg := <-s.opCh:
			switch msg.op {
			case addItem:
				glog.V(6).Infof("Adding item: %s", msg.item[0].Key())
				if _, ok := items[msg.item[0].Key()]; ok {
					msg.err <- ErrAlreadyExist
					continue
				}
				items[msg.item[0].Key()] = msg.item[0]
				msg.err <- nil
			case removeItem:
				glog.V(6).Infof("Removing item: %s", msg.item[0].Key())
				if _, ok := items[msg.item[0].Key()]; !ok {
					msg.err <- ErrNotFound
					continue
				}
				delete(items, msg.item[0].Key())
				msg.err <- nil
			case getItem:
				glog.V(6).Infof("Getting item: %s", msg.item[0].Key())
				it, ok := items[msg.item[0].Key()]
				if !ok {
					msg.replyCh <- mgrReply{
						item: nil,
						err:  ErrNotFound,
					}
					continue
				}
				msg.replyCh <- mgrReply{
					item: []Storable{it},
					err:  nil,
				}
			case listItems:
				l := make([]Storable, 0, len(items))
				for _, item := range items {
					l = append(l, item)
				}
				sort.Slice(l, func(i, j int) bool { return l[i].Key() < l[j].Key() })
				msg.replyCh <- mgrReply{
					item: l,
					err:  nil,
				}
			}
		}
	}
}

// NewStore returns a new instance of a store, any object which is compatible
// with the interface Storable, can be stored in the store.
func NewStore() Manager {
	s := &itemStore{
		stopCh: make(chan struct{}),
		opCh:   make(chan storeCh),
	}
	// Starting store manager
	go s.manager()

	return s
}
