package services

import (
	"context"
	"strings"
	"time"

	"github.com/blood-heros/apiserver/types"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	List(ctx context.Context) ([]types.User, error)
	Search(ctx context.Context, search types.UserSearch) ([]types.User, error)
	GetByEmail(ctx context.Context, email string) (types.User, error)
	Create(ctx context.Context, user types.User) (types.User, error)
	UpdateProfile(ctx context.Context, email string, profile types.UserProfile) (types.UpdateResult, error)
	SetStatus(ctx context.Context, id, status string) (types.UpdateResult, error)
	SetRole(ctx context.Context, id, role string) (types.UpdateResult, error)
}

// UserService encapsulates user use-cases.
type UserService struct {
	repo UserRepository
	now  func() time.Time
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo, now: time.Now}
}

func (s *UserService) List(ctx context.Context) ([]types.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) Search(ctx context.Context, search types.UserSearch) ([]types.User, error) {
	return s.repo.Search(ctx, search)
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (types.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return types.User{}, invalid("email is required")
	}
	return s.repo.GetByEmail(ctx, email)
}

// IsAdmin reports whether the user registered under email has the admin role.
func (s *UserService) IsAdmin(ctx context.Context, email string) (bool, error) {
	user, err := s.GetByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	return user.Role == types.RoleAdmin, nil
}

// Register stores a new user. Every new account starts as an active donor;
// status and role only change through the admin transitions.
func (s *UserService) Register(ctx context.Context, user types.User) (types.User, error) {
	user.Email = strings.TrimSpace(user.Email)
	if user.Email == "" {
		return types.User{}, invalid("email is required")
	}
	if user.BloodGroup != "" && !types.IsBloodGroup(user.BloodGroup) {
		return types.User{}, invalid("unknown blood group %q", user.BloodGroup)
	}

	user.ID = ""
	user.Status = types.UserStatusActive
	user.Role = types.RoleDonor
	if user.CreatedAt.IsZero() {
		user.CreatedAt = s.now().UTC()
	}
	return s.repo.Create(ctx, user)
}

// UpdateProfile overwrites the editable profile fields of the user with the
// given email. An empty profile email keeps the current one.
func (s *UserService) UpdateProfile(ctx context.Context, email string, profile types.UserProfile) (types.UpdateResult, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return types.UpdateResult{}, invalid("email is required")
	}
	profile.Email = strings.TrimSpace(profile.Email)
	if profile.Email == "" {
		profile.Email = email
	}
	if profile.BloodGroup != "" && !types.IsBloodGroup(profile.BloodGroup) {
		return types.UpdateResult{}, invalid("unknown blood group %q", profile.BloodGroup)
	}
	return s.repo.UpdateProfile(ctx, email, profile)
}

func (s *UserService) Block(ctx context.Context, id string) (types.UpdateResult, error) {
	return s.repo.SetStatus(ctx, id, types.UserStatusBlocked)
}

func (s *UserService) Activate(ctx context.Context, id string) (types.UpdateResult, error) {
	return s.repo.SetStatus(ctx, id, types.UserStatusActive)
}

func (s *UserService) MakeAdmin(ctx context.Context, id string) (types.UpdateResult, error) {
	return s.repo.SetRole(ctx, id, types.RoleAdmin)
}

func (s *UserService) MakeVolunteer(ctx context.Context, id string) (types.UpdateResult, error) {
	return s.repo.SetRole(ctx, id, types.RoleVolunteer)
}
