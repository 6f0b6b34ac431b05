package services

import (
	"context"

	"github.com/blood-heros/apiserver/internal/mq"
	"github.com/blood-heros/apiserver/types"
	"github.com/stretchr/testify/mock"
)

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) List(ctx context.Context) ([]types.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]types.User), args.Error(1)
}

func (m *MockUserRepo) Search(ctx context.Context, search types.UserSearch) ([]types.User, error) {
	args := m.Called(ctx, search)
	return args.Get(0).([]types.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (types.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(types.User), args.Error(1)
}

func (m *MockUserRepo) Create(ctx context.Context, user types.User) (types.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(types.User), args.Error(1)
}

func (m *MockUserRepo) UpdateProfile(ctx context.Context, email string, profile types.UserProfile) (types.UpdateResult, error) {
	args := m.Called(ctx, email, profile)
	return args.Get(0).(types.UpdateResult), args.Error(1)
}

func (m *MockUserRepo) SetStatus(ctx context.Context, id, status string) (types.UpdateResult, error) {
	args := m.Called(ctx, id, status)
	return args.Get(0).(types.UpdateResult), args.Error(1)
}

func (m *MockUserRepo) SetRole(ctx context.Context, id, role string) (types.UpdateResult, error) {
	args := m.Called(ctx, id, role)
	return args.Get(0).(types.UpdateResult), args.Error(1)
}

type MockDonationRepo struct {
	mock.Mock
}

func (m *MockDonationRepo) List(ctx context.Context) ([]types.DonationRequest, error) {
	args := m.Called(ctx)
	return args.Get(0).([]types.DonationRequest), args.Error(1)
}

func (m *MockDonationRepo) ListByStatus(ctx context.Context, status string) ([]types.DonationRequest, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]types.DonationRequest), args.Error(1)
}

func (m *MockDonationRepo) ListByRequester(ctx context.Context, email string) ([]types.DonationRequest, error) {
	args := m.Called(ctx, email)
	return args.Get(0).([]types.DonationRequest), args.Error(1)
}

func (m *MockDonationRepo) Get(ctx context.Context, id string) (types.DonationRequest, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(types.DonationRequest), args.Error(1)
}

func (m *MockDonationRepo) Create(ctx context.Context, req types.DonationRequest) (types.DonationRequest, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(types.DonationRequest), args.Error(1)
}

func (m *MockDonationRepo) UpdateDetails(ctx context.Context, id string, details types.DonationDetails) (types.UpdateResult, error) {
	args := m.Called(ctx, id, details)
	return args.Get(0).(types.UpdateResult), args.Error(1)
}

func (m *MockDonationRepo) ClaimDonor(ctx context.Context, id string, claim types.DonorClaim) (types.UpdateResult, error) {
	args := m.Called(ctx, id, claim)
	return args.Get(0).(types.UpdateResult), args.Error(1)
}

func (m *MockDonationRepo) SetStatus(ctx context.Context, id, status string) (types.UpdateResult, error) {
	args := m.Called(ctx, id, status)
	return args.Get(0).(types.UpdateResult), args.Error(1)
}

func (m *MockDonationRepo) Delete(ctx context.Context, id string) (types.DeleteResult, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(types.DeleteResult), args.Error(1)
}

type MockBlogRepo struct {
	mock.Mock
}

func (m *MockBlogRepo) List(ctx context.Context) ([]types.Blog, error) {
	args := m.Called(ctx)
	return args.Get(0).([]types.Blog), args.Error(1)
}

func (m *MockBlogRepo) ListByStatus(ctx context.Context, status string) ([]types.Blog, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]types.Blog), args.Error(1)
}

func (m *MockBlogRepo) Create(ctx context.Context, blog types.Blog) (types.Blog, error) {
	args := m.Called(ctx, blog)
	return args.Get(0).(types.Blog), args.Error(1)
}

func (m *MockBlogRepo) SetStatus(ctx context.Context, id, status string) (types.UpdateResult, error) {
	args := m.Called(ctx, id, status)
	return args.Get(0).(types.UpdateResult), args.Error(1)
}

func (m *MockBlogRepo) Delete(ctx context.Context, id string) (types.DeleteResult, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(types.DeleteResult), args.Error(1)
}

type MockLocationRepo struct {
	mock.Mock
}

func (m *MockLocationRepo) ListDistricts(ctx context.Context) ([]types.District, error) {
	args := m.Called(ctx)
	return args.Get(0).([]types.District), args.Error(1)
}

func (m *MockLocationRepo) ListUpazilas(ctx context.Context) ([]types.Upazila, error) {
	args := m.Called(ctx)
	return args.Get(0).([]types.Upazila), args.Error(1)
}

func (m *MockLocationRepo) UpsertDistricts(ctx context.Context, districts []types.District) (int, error) {
	args := m.Called(ctx, districts)
	return args.Int(0), args.Error(1)
}

func (m *MockLocationRepo) UpsertUpazilas(ctx context.Context, upazilas []types.Upazila) (int, error) {
	args := m.Called(ctx, upazilas)
	return args.Int(0), args.Error(1)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishDonationEvent(ctx context.Context, event mq.DonationEvent) error {
	return m.Called(ctx, event).Error(0)
}
