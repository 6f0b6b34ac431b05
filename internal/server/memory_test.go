package server

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/blood-heros/apiserver/internal/mq"
	"github.com/blood-heros/apiserver/internal/repository"
	"github.com/blood-heros/apiserver/internal/storage"
	"github.com/blood-heros/apiserver/internal/store"
	"github.com/blood-heros/apiserver/types"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memoryStore backs every repository interface with maps so the router can
// be exercised without a database.
type memoryStore struct {
	mu        sync.Mutex
	seq       int
	users     map[string]types.User
	donations map[string]types.DonationRequest
	blogs     map[string]types.Blog
	districts []types.District
	upazilas  []types.Upazila
	pingErr   error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:     map[string]types.User{},
		donations: map[string]types.DonationRequest{},
		blogs:     map[string]types.Blog{},
	}
}

func (m *memoryStore) set() *repository.Set {
	return &repository.Set{
		Users:     memoryUsers{m},
		Donations: memoryDonations{m},
		Blogs:     memoryBlogs{m},
		Locations: memoryLocations{m},
		Ping:      func(context.Context) error { return m.pingErr },
		Close:     func() error { return nil },
	}
}

func (m *memoryStore) nextID() string {
	m.seq++
	return fmt.Sprintf("%024x", m.seq)
}

// checkID rejects ids that are not ObjectID hex, as the MongoDB store does.
func checkID(id string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return store.ErrInvalidID
	}
	return nil
}

func updated(n int) types.UpdateResult {
	return types.UpdateResult{Acknowledged: true, MatchedCount: int64(n), ModifiedCount: int64(n)}
}

type memoryUsers struct{ *memoryStore }

func (m memoryUsers) List(ctx context.Context) ([]types.User, error) {
	return m.filter(func(types.User) bool { return true }), nil
}

func (m memoryUsers) Search(ctx context.Context, search types.UserSearch) ([]types.User, error) {
	return m.filter(func(u types.User) bool {
		return (search.BloodGroup == "" || u.BloodGroup == search.BloodGroup) &&
			(search.District == "" || u.District == search.District) &&
			(search.Upazila == "" || u.Upazila == search.Upazila)
	}), nil
}

func (m memoryUsers) filter(keep func(types.User) bool) []types.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []types.User{}
	for _, u := range m.users {
		if keep(u) {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m memoryUsers) GetByEmail(ctx context.Context, email string) (types.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (m memoryUsers) Create(ctx context.Context, user types.User) (types.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return types.User{}, store.ErrDuplicate
		}
	}
	user.ID = m.nextID()
	m.users[user.ID] = user
	return user, nil
}

func (m memoryUsers) UpdateProfile(ctx context.Context, email string, p types.UserProfile) (types.UpdateResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, u := range m.users {
		if u.Email == email {
			u.Name, u.Email, u.BloodGroup, u.Photo, u.Upazila, u.District = p.Name, p.Email, p.BloodGroup, p.Photo, p.Upazila, p.District
			m.users[id] = u
			return updated(1), nil
		}
	}
	return types.UpdateResult{}, store.ErrNotFound
}

func (m memoryUsers) SetStatus(ctx context.Context, id, status string) (types.UpdateResult, error) {
	return m.modify(id, func(u *types.User) { u.Status = status })
}

func (m memoryUsers) SetRole(ctx context.Context, id, role string) (types.UpdateResult, error) {
	return m.modify(id, func(u *types.User) { u.Role = role })
}

func (m memoryUsers) modify(id string, apply func(*types.User)) (types.UpdateResult, error) {
	if err := checkID(id); err != nil {
		return types.UpdateResult{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return types.UpdateResult{}, store.ErrNotFound
	}
	apply(&u)
	m.users[id] = u
	return updated(1), nil
}

type memoryDonations struct{ *memoryStore }

func (m memoryDonations) list(keep func(types.DonationRequest) bool) []types.DonationRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []types.DonationRequest{}
	for _, d := range m.donations {
		if keep(d) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m memoryDonations) List(ctx context.Context) ([]types.DonationRequest, error) {
	return m.list(func(types.DonationRequest) bool { return true }), nil
}

func (m memoryDonations) ListByStatus(ctx context.Context, status string) ([]types.DonationRequest, error) {
	return m.list(func(d types.DonationRequest) bool { return d.DonationStatus == status }), nil
}

func (m memoryDonations) ListByRequester(ctx context.Context, email string) ([]types.DonationRequest, error) {
	out := m.list(func(d types.DonationRequest) bool { return d.RequesterEmail == email })
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m memoryDonations) Get(ctx context.Context, id string) (types.DonationRequest, error) {
	if err := checkID(id); err != nil {
		return types.DonationRequest{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.donations[id]
	if !ok {
		return types.DonationRequest{}, store.ErrNotFound
	}
	return d, nil
}

func (m memoryDonations) Create(ctx context.Context, req types.DonationRequest) (types.DonationRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	req.ID = m.nextID()
	m.donations[req.ID] = req
	return req, nil
}

func (m memoryDonations) UpdateDetails(ctx context.Context, id string, d types.DonationDetails) (types.UpdateResult, error) {
	return m.modify(id, func(r *types.DonationRequest) {
		r.RecipientName, r.BloodGroup = d.RecipientName, d.BloodGroup
		r.RecipientDistrict, r.RecipientUpazila = d.RecipientDistrict, d.RecipientUpazila
		r.HospitalName, r.FullAddress = d.HospitalName, d.FullAddress
		r.DonationDate, r.DonationTime, r.RequestMessage = d.DonationDate, d.DonationTime, d.RequestMessage
	})
}

func (m memoryDonations) ClaimDonor(ctx context.Context, id string, c types.DonorClaim) (types.UpdateResult, error) {
	return m.modify(id, func(r *types.DonationRequest) {
		r.DonorName, r.DonorEmail, r.DonationStatus = c.DonorName, c.DonorEmail, c.DonationStatus
	})
}

func (m memoryDonations) SetStatus(ctx context.Context, id, status string) (types.UpdateResult, error) {
	return m.modify(id, func(r *types.DonationRequest) { r.DonationStatus = status })
}

func (m memoryDonations) modify(id string, apply func(*types.DonationRequest)) (types.UpdateResult, error) {
	if err := checkID(id); err != nil {
		return types.UpdateResult{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.donations[id]
	if !ok {
		return types.UpdateResult{}, store.ErrNotFound
	}
	apply(&d)
	m.donations[id] = d
	return updated(1), nil
}

func (m memoryDonations) Delete(ctx context.Context, id string) (types.DeleteResult, error) {
	if err := checkID(id); err != nil {
		return types.DeleteResult{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.donations[id]; !ok {
		return types.DeleteResult{}, store.ErrNotFound
	}
	delete(m.donations, id)
	return types.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
}

type memoryBlogs struct{ *memoryStore }

func (m memoryBlogs) list(keep func(types.Blog) bool) []types.Blog {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []types.Blog{}
	for _, b := range m.blogs {
		if keep(b) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m memoryBlogs) List(ctx context.Context) ([]types.Blog, error) {
	return m.list(func(types.Blog) bool { return true }), nil
}

func (m memoryBlogs) ListByStatus(ctx context.Context, status string) ([]types.Blog, error) {
	return m.list(func(b types.Blog) bool { return b.Status == status }), nil
}

func (m memoryBlogs) Create(ctx context.Context, blog types.Blog) (types.Blog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	blog.ID = m.nextID()
	m.blogs[blog.ID] = blog
	return blog, nil
}

func (m memoryBlogs) SetStatus(ctx context.Context, id, status string) (types.UpdateResult, error) {
	if err := checkID(id); err != nil {
		return types.UpdateResult{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.blogs[id]
	if !ok {
		return types.UpdateResult{}, store.ErrNotFound
	}
	b.Status = status
	m.blogs[id] = b
	return updated(1), nil
}

func (m memoryBlogs) Delete(ctx context.Context, id string) (types.DeleteResult, error) {
	if err := checkID(id); err != nil {
		return types.DeleteResult{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.blogs[id]; !ok {
		return types.DeleteResult{}, store.ErrNotFound
	}
	delete(m.blogs, id)
	return types.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
}

type memoryLocations struct{ *memoryStore }

func (m memoryLocations) ListDistricts(ctx context.Context) ([]types.District, error) {
	return append([]types.District{}, m.districts...), nil
}

func (m memoryLocations) ListUpazilas(ctx context.Context) ([]types.Upazila, error) {
	return append([]types.Upazila{}, m.upazilas...), nil
}

func (m memoryLocations) UpsertDistricts(ctx context.Context, districts []types.District) (int, error) {
	m.districts = append([]types.District{}, districts...)
	return len(districts), nil
}

func (m memoryLocations) UpsertUpazilas(ctx context.Context, upazilas []types.Upazila) (int, error) {
	m.upazilas = append([]types.Upazila{}, upazilas...)
	return len(upazilas), nil
}

// recordingPublisher keeps every published donation event.
type recordingPublisher struct {
	mu     sync.Mutex
	events []mq.DonationEvent
}

func (p *recordingPublisher) PublishDonationEvent(ctx context.Context, event mq.DonationEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) eventTypes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

// memoryObjectsStub satisfies storage.ObjectStorage for tests that never
// touch object contents.
type memoryObjectsStub struct{}

func (memoryObjectsStub) EnsureBucket(ctx context.Context) error { return nil }
func (memoryObjectsStub) Bucket() string                         { return "test" }
func (memoryObjectsStub) Close() error                           { return nil }

func (memoryObjectsStub) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	return nil
}

func (memoryObjectsStub) Get(ctx context.Context, key string) (storage.Object, error) {
	return storage.Object{}, storage.ErrObjectNotFound
}

func (memoryObjectsStub) Delete(ctx context.Context, key string) error {
	return storage.ErrObjectNotFound
}
