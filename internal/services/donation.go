package services

import (
	"context"
	"strings"
	"time"

	"github.com/blood-heros/apiserver/internal/mq"
	"github.com/blood-heros/apiserver/types"
	"github.com/sirupsen/logrus"
)

// DonationRepository defines persistence operations for donation requests.
type DonationRepository interface {
	List(ctx context.Context) ([]types.DonationRequest, error)
	ListByStatus(ctx context.Context, status string) ([]types.DonationRequest, error)
	ListByRequester(ctx context.Context, email string) ([]types.DonationRequest, error)
	Get(ctx context.Context, id string) (types.DonationRequest, error)
	Create(ctx context.Context, req types.DonationRequest) (types.DonationRequest, error)
	UpdateDetails(ctx context.Context, id string, details types.DonationDetails) (types.UpdateResult, error)
	ClaimDonor(ctx context.Context, id string, claim types.DonorClaim) (types.UpdateResult, error)
	SetStatus(ctx context.Context, id, status string) (types.UpdateResult, error)
	Delete(ctx context.Context, id string) (types.DeleteResult, error)
}

// EventPublisher receives donation lifecycle events.
type EventPublisher interface {
	PublishDonationEvent(ctx context.Context, event mq.DonationEvent) error
}

// DonationService encapsulates donation request use-cases.
type DonationService struct {
	repo   DonationRepository
	events EventPublisher
	logger logrus.FieldLogger
	now    func() time.Time
}

// NewDonationService constructs the service. events may be nil, in which
// case no lifecycle events are emitted.
func NewDonationService(repo DonationRepository, events EventPublisher, logger logrus.FieldLogger) *DonationService {
	return &DonationService{
		repo:   repo,
		events: events,
		logger: logger,
		now:    time.Now,
	}
}

func (s *DonationService) List(ctx context.Context) ([]types.DonationRequest, error) {
	return s.repo.List(ctx)
}

func (s *DonationService) ListPending(ctx context.Context) ([]types.DonationRequest, error) {
	return s.repo.ListByStatus(ctx, types.DonationStatusPending)
}

// ListByRequester returns the requests posted by email, newest first.
func (s *DonationService) ListByRequester(ctx context.Context, email string) ([]types.DonationRequest, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, invalid("email is required")
	}
	return s.repo.ListByRequester(ctx, email)
}

func (s *DonationService) Get(ctx context.Context, id string) (types.DonationRequest, error) {
	return s.repo.Get(ctx, id)
}

func (s *DonationService) Create(ctx context.Context, req types.DonationRequest) (types.DonationRequest, error) {
	req.RequesterEmail = strings.TrimSpace(req.RequesterEmail)
	if req.RequesterEmail == "" {
		return types.DonationRequest{}, invalid("requesterEmail is required")
	}
	if req.BloodGroup != "" && !types.IsBloodGroup(req.BloodGroup) {
		return types.DonationRequest{}, invalid("unknown blood group %q", req.BloodGroup)
	}
	if req.DonationStatus == "" {
		req.DonationStatus = types.DonationStatusPending
	} else if !types.IsDonationStatus(req.DonationStatus) {
		return types.DonationRequest{}, invalid("unknown donation status %q", req.DonationStatus)
	}
	if req.CreatedAt.IsZero() {
		req.CreatedAt = s.now().UTC()
	}
	req.ID = ""

	created, err := s.repo.Create(ctx, req)
	if err != nil {
		return types.DonationRequest{}, err
	}
	s.publish(ctx, mq.DonationEvent{
		Type:       mq.EventDonationCreated,
		DonationID: created.ID,
		Status:     created.DonationStatus,
		BloodGroup: created.BloodGroup,
		District:   created.RecipientDistrict,
		Upazila:    created.RecipientUpazila,
	})
	return created, nil
}

func (s *DonationService) UpdateDetails(ctx context.Context, id string, details types.DonationDetails) (types.UpdateResult, error) {
	if details.BloodGroup != "" && !types.IsBloodGroup(details.BloodGroup) {
		return types.UpdateResult{}, invalid("unknown blood group %q", details.BloodGroup)
	}
	result, err := s.repo.UpdateDetails(ctx, id, details)
	if err != nil {
		return types.UpdateResult{}, err
	}
	s.publish(ctx, mq.DonationEvent{
		Type:       mq.EventDonationUpdated,
		DonationID: id,
		BloodGroup: details.BloodGroup,
		District:   details.RecipientDistrict,
		Upazila:    details.RecipientUpazila,
	})
	return result, nil
}

// ClaimDonor records the donor taking on the request. An empty status means
// the donation is now in progress.
func (s *DonationService) ClaimDonor(ctx context.Context, id string, claim types.DonorClaim) (types.UpdateResult, error) {
	if claim.DonationStatus == "" {
		claim.DonationStatus = types.DonationStatusInProgress
	} else if !types.IsDonationStatus(claim.DonationStatus) {
		return types.UpdateResult{}, invalid("unknown donation status %q", claim.DonationStatus)
	}
	result, err := s.repo.ClaimDonor(ctx, id, claim)
	if err != nil {
		return types.UpdateResult{}, err
	}
	s.publish(ctx, mq.DonationEvent{
		Type:       mq.EventDonationStatusChanged,
		DonationID: id,
		Status:     claim.DonationStatus,
		DonorEmail: claim.DonorEmail,
	})
	return result, nil
}

func (s *DonationService) MarkDone(ctx context.Context, id string) (types.UpdateResult, error) {
	return s.setStatus(ctx, id, types.DonationStatusDone)
}

func (s *DonationService) MarkCanceled(ctx context.Context, id string) (types.UpdateResult, error) {
	return s.setStatus(ctx, id, types.DonationStatusCanceled)
}

func (s *DonationService) Delete(ctx context.Context, id string) (types.DeleteResult, error) {
	result, err := s.repo.Delete(ctx, id)
	if err != nil {
		return types.DeleteResult{}, err
	}
	s.publish(ctx, mq.DonationEvent{Type: mq.EventDonationDeleted, DonationID: id})
	return result, nil
}

func (s *DonationService) setStatus(ctx context.Context, id, status string) (types.UpdateResult, error) {
	result, err := s.repo.SetStatus(ctx, id, status)
	if err != nil {
		return types.UpdateResult{}, err
	}
	s.publish(ctx, mq.DonationEvent{
		Type:       mq.EventDonationStatusChanged,
		DonationID: id,
		Status:     status,
	})
	return result, nil
}

// publish is best effort: a broker outage must not fail the write that
// already succeeded.
func (s *DonationService) publish(ctx context.Context, event mq.DonationEvent) {
	if s.events == nil {
		return
	}
	event.OccurredAt = s.now().UTC()
	if err := s.events.PublishDonationEvent(ctx, event); err != nil && s.logger != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"event":       event.Type,
			"donation_id": event.DonationID,
		}).Warn("failed to publish donation event")
	}
}
