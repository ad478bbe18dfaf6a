package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"db-chat-be/internal/entity"
	"db-chat-be/internal/repository/contract"
	"db-chat-be/internal/repository/specification"
	"db-chat-be/internal/repository/unitofwork"
	"db-chat-be/pkg/agent"
	"db-chat-be/pkg/events"

	"github.com/google/uuid"
)

// fakeStore is an in-memory stand-in for the app database. It understands the
// specifications the services use.
type fakeStore struct {
	mu       sync.Mutex
	users    []*entity.User
	sessions []*entity.Session
	chats    []*entity.SessionChat

	findErr       error
	userCreateErr error
	batchErr      error

	commits   int
	rollbacks int
}

func newFakeStore() *fakeStore {
	return &fakeStore{}
}

func (s *fakeStore) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUoW{store: s}
}

func (s *fakeStore) storedChats() []*entity.SessionChat {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*entity.SessionChat(nil), s.chats...)
}

type fakeUoW struct {
	store   *fakeStore
	inTx    bool
	pending []*entity.SessionChat
}

func (u *fakeUoW) Begin(ctx context.Context) error {
	if u.inTx {
		return errors.New("transaction already started")
	}
	u.inTx = true
	return nil
}

func (u *fakeUoW) Commit() error {
	if !u.inTx {
		return errors.New("no transaction to commit")
	}
	u.store.mu.Lock()
	u.store.chats = append(u.store.chats, u.pending...)
	u.store.commits++
	u.store.mu.Unlock()
	u.pending, u.inTx = nil, false
	return nil
}

func (u *fakeUoW) Rollback() error {
	if !u.inTx {
		return errors.New("no transaction to rollback")
	}
	u.store.mu.Lock()
	u.store.rollbacks++
	u.store.mu.Unlock()
	u.pending, u.inTx = nil, false
	return nil
}

func (u *fakeUoW) UserRepository() contract.UserRepository {
	return &fakeUserRepo{store: u.store}
}

func (u *fakeUoW) SessionRepository() contract.SessionRepository {
	return &fakeSessionRepo{store: u.store}
}

func (u *fakeUoW) SessionChatRepository() contract.SessionChatRepository {
	return &fakeChatRepo{uow: u}
}

type fakeUserRepo struct{ store *fakeStore }

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	if r.store.userCreateErr != nil {
		return r.store.userCreateErr
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.users = append(r.store.users, user)
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	kept := r.store.users[:0]
	for _, u := range r.store.users {
		if u.Id != id {
			kept = append(kept, u)
		}
	}
	r.store.users = kept

	sessions := r.store.sessions[:0]
	for _, sess := range r.store.sessions {
		if sess.UserId != id {
			sessions = append(sessions, sess)
		}
	}
	r.store.sessions = sessions
	return nil
}

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *fakeUserRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	if r.store.findErr != nil {
		return nil, r.store.findErr
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []*entity.User
	for _, u := range r.store.users {
		ok := true
		for _, spec := range specs {
			switch s := spec.(type) {
			case specification.ByID:
				ok = ok && u.Id == s.ID
			case specification.ByEmail:
				ok = ok && u.Email == s.Email
			}
		}
		if ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	return int64(len(all)), err
}

type fakeSessionRepo struct{ store *fakeStore }

func (r *fakeSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.sessions = append(r.store.sessions, session)
	return nil
}

func (r *fakeSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Session, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *fakeSessionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Session, error) {
	if r.store.findErr != nil {
		return nil, r.store.findErr
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []*entity.Session
	for _, sess := range r.store.sessions {
		ok := true
		for _, spec := range specs {
			switch s := spec.(type) {
			case specification.ByID:
				ok = ok && sess.Id == s.ID
			case specification.UserOwnedBy:
				ok = ok && sess.UserId == s.UserID
			}
		}
		if ok {
			out = append(out, sess)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeSessionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	return int64(len(all)), err
}

type fakeChatRepo struct{ uow *fakeUoW }

func (r *fakeChatRepo) Create(ctx context.Context, chat *entity.SessionChat) error {
	return r.CreateBatch(ctx, []*entity.SessionChat{chat})
}

func (r *fakeChatRepo) CreateBatch(ctx context.Context, chats []*entity.SessionChat) error {
	if r.uow.store.batchErr != nil {
		return r.uow.store.batchErr
	}
	if r.uow.inTx {
		r.uow.pending = append(r.uow.pending, chats...)
		return nil
	}
	r.uow.store.mu.Lock()
	defer r.uow.store.mu.Unlock()
	r.uow.store.chats = append(r.uow.store.chats, chats...)
	return nil
}

func (r *fakeChatRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SessionChat, error) {
	store := r.uow.store
	if store.findErr != nil {
		return nil, store.findErr
	}
	store.mu.Lock()
	defer store.mu.Unlock()

	var out []*entity.SessionChat
	desc, limit := false, 0
	for _, c := range store.chats {
		ok := true
		for _, spec := range specs {
			if s, isSession := spec.(specification.BySessionID); isSession {
				ok = ok && c.SessionId == s.SessionID
			}
		}
		if ok {
			out = append(out, c)
		}
	}
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.RecentFirst:
			desc = true
		case specification.Pagination:
			limit = s.Limit
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeChatRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	return int64(len(all)), err
}

type fakePipeline struct {
	mu     sync.Mutex
	calls  int
	inputs [][]agent.Message
	thread string
	invoke func(ctx context.Context, messages []agent.Message) ([]agent.Message, error)
}

func (p *fakePipeline) Invoke(ctx context.Context, messages []agent.Message, threadID string) ([]agent.Message, error) {
	p.mu.Lock()
	p.calls++
	p.inputs = append(p.inputs, append([]agent.Message(nil), messages...))
	p.thread = threadID
	p.mu.Unlock()
	return p.invoke(ctx, messages)
}

// answering echoes the input and appends the given messages, which is what a
// real pipeline returns.
func answering(produced ...agent.Message) *fakePipeline {
	return &fakePipeline{invoke: func(ctx context.Context, messages []agent.Message) ([]agent.Message, error) {
		out := append([]agent.Message(nil), messages...)
		return append(out, produced...), nil
	}}
}

type fakeThreads struct {
	mu      sync.Mutex
	deleted []string
	err     error
}

func (f *fakeThreads) Delete(ctx context.Context, threadID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, threadID)
	return f.err
}

type fakePublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *fakePublisher) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *fakePublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []string
	for _, e := range p.events {
		out = append(out, e.EventType())
	}
	return out
}
