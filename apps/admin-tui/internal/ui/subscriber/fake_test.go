package subscriber

import (
	"context"
	"sort"
	"sync"

	"github.com/oyaguma3/lte-nms/pkg/apperr"
	"github.com/oyaguma3/lte-nms/pkg/magma"
	"github.com/oyaguma3/lte-nms/pkg/model"
)

// fakeAPI はメモリ上で加入者を保持するSubscriberAPI。
type fakeAPI struct {
	mu      sync.Mutex
	subs    map[string]*model.Subscriber
	listErr error
}

var _ magma.SubscriberAPI = (*fakeAPI)(nil)

func newFakeAPI(subs ...*model.Subscriber) *fakeAPI {
	f := &fakeAPI{subs: make(map[string]*model.Subscriber)}
	for _, s := range subs {
		f.subs[s.ID] = s
	}
	return f
}

func (f *fakeAPI) CreateSubscriber(_ context.Context, _ string, sub *model.Subscriber) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.subs[sub.ID]; ok {
		return "", apperr.ErrSubscriberExists
	}
	f.subs[sub.ID] = sub
	return sub.ID, nil
}

func (f *fakeAPI) UpdateSubscriber(_ context.Context, _ string, sub *model.Subscriber) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.subs[sub.ID]; !ok {
		return apperr.ErrSubscriberNotFound
	}
	f.subs[sub.ID] = sub
	return nil
}

func (f *fakeAPI) GetSubscriber(_ context.Context, _, id string) (*model.Subscriber, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sub, ok := f.subs[id]
	if !ok {
		return nil, apperr.ErrSubscriberNotFound
	}
	return sub, nil
}

func (f *fakeAPI) ListSubscribers(context.Context, string) ([]*model.Subscriber, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*model.Subscriber, 0, len(f.subs))
	for _, s := range f.subs {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeAPI) DeleteSubscriber(_ context.Context, _, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.subs[id]; !ok {
		return apperr.ErrSubscriberNotFound
	}
	delete(f.subs, id)
	return nil
}

func (f *fakeAPI) ListNetworks(context.Context) ([]string, error) {
	return []string{"net1"}, nil
}
