package postgres

import (
	"context"
	"database/sql"

	"github.com/blood-heros/apiserver/types"
)

const donationColumns = `id, requester_name, requester_email, recipient_name, blood_group,
	recipient_district, recipient_upazila, hospital_name, full_address,
	donation_date, donation_time, request_message, donation_status,
	donor_name, donor_email, created_at`

// DonationRepository handles persistence for donation requests.
type DonationRepository struct {
	db *sql.DB
}

func NewDonationRepository(db *sql.DB) *DonationRepository {
	return &DonationRepository{db: db}
}

func scanDonation(row scanner) (types.DonationRequest, error) {
	var req types.DonationRequest
	err := row.Scan(
		&req.ID,
		&req.RequesterName,
		&req.RequesterEmail,
		&req.RecipientName,
		&req.BloodGroup,
		&req.RecipientDistrict,
		&req.RecipientUpazila,
		&req.HospitalName,
		&req.FullAddress,
		&req.DonationDate,
		&req.DonationTime,
		&req.RequestMessage,
		&req.DonationStatus,
		&req.DonorName,
		&req.DonorEmail,
		&req.CreatedAt,
	)
	return req, err
}

func (r *DonationRepository) list(ctx context.Context, query string, args ...any) ([]types.DonationRequest, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]types.DonationRequest, 0)
	for rows.Next() {
		req, err := scanDonation(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *DonationRepository) List(ctx context.Context) ([]types.DonationRequest, error) {
	return r.list(ctx, `SELECT `+donationColumns+` FROM donation_requests ORDER BY created_at`)
}

func (r *DonationRepository) ListByStatus(ctx context.Context, status string) ([]types.DonationRequest, error) {
	return r.list(ctx, `SELECT `+donationColumns+` FROM donation_requests WHERE donation_status = $1 ORDER BY created_at`, status)
}

func (r *DonationRepository) ListByRequester(ctx context.Context, email string) ([]types.DonationRequest, error) {
	return r.list(ctx, `SELECT `+donationColumns+` FROM donation_requests WHERE requester_email = $1 ORDER BY created_at DESC`, email)
}

func (r *DonationRepository) Get(ctx context.Context, id string) (types.DonationRequest, error) {
	if err := validID(id); err != nil {
		return types.DonationRequest{}, err
	}
	const query = `SELECT ` + donationColumns + ` FROM donation_requests WHERE id = $1`
	req, err := scanDonation(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return types.DonationRequest{}, translate(err)
	}
	return req, nil
}

func (r *DonationRepository) Create(ctx context.Context, req types.DonationRequest) (types.DonationRequest, error) {
	req.ID = newID()

	const query = `
		INSERT INTO donation_requests (
			id, requester_name, requester_email, recipient_name, blood_group,
			recipient_district, recipient_upazila, hospital_name, full_address,
			donation_date, donation_time, request_message, donation_status,
			donor_name, donor_email, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	if _, err := r.db.ExecContext(
		ctx,
		query,
		req.ID,
		req.RequesterName,
		req.RequesterEmail,
		req.RecipientName,
		req.BloodGroup,
		req.RecipientDistrict,
		req.RecipientUpazila,
		req.HospitalName,
		req.FullAddress,
		req.DonationDate,
		req.DonationTime,
		req.RequestMessage,
		req.DonationStatus,
		req.DonorName,
		req.DonorEmail,
		req.CreatedAt,
	); err != nil {
		return types.DonationRequest{}, translate(err)
	}
	return req, nil
}

func (r *DonationRepository) UpdateDetails(ctx context.Context, id string, details types.DonationDetails) (types.UpdateResult, error) {
	if err := validID(id); err != nil {
		return types.UpdateResult{}, err
	}
	const query = `
		UPDATE donation_requests
		SET recipient_name = $1,
			blood_group = $2,
			recipient_district = $3,
			recipient_upazila = $4,
			hospital_name = $5,
			full_address = $6,
			donation_date = $7,
			donation_time = $8,
			request_message = $9
		WHERE id = $10`
	result, err := r.db.ExecContext(
		ctx,
		query,
		details.RecipientName,
		details.BloodGroup,
		details.RecipientDistrict,
		details.RecipientUpazila,
		details.HospitalName,
		details.FullAddress,
		details.DonationDate,
		details.DonationTime,
		details.RequestMessage,
		id,
	)
	if err != nil {
		return types.UpdateResult{}, err
	}
	return updateResult(result)
}

func (r *DonationRepository) ClaimDonor(ctx context.Context, id string, claim types.DonorClaim) (types.UpdateResult, error) {
	if err := validID(id); err != nil {
		return types.UpdateResult{}, err
	}
	const query = `
		UPDATE donation_requests
		SET donor_name = $1,
			donor_email = $2,
			donation_status = $3
		WHERE id = $4`
	result, err := r.db.ExecContext(ctx, query, claim.DonorName, claim.DonorEmail, claim.DonationStatus, id)
	if err != nil {
		return types.UpdateResult{}, err
	}
	return updateResult(result)
}

func (r *DonationRepository) SetStatus(ctx context.Context, id, status string) (types.UpdateResult, error) {
	if err := validID(id); err != nil {
		return types.UpdateResult{}, err
	}
	const query = `UPDATE donation_requests SET donation_status = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return types.UpdateResult{}, err
	}
	return updateResult(result)
}

func (r *DonationRepository) Delete(ctx context.Context, id string) (types.DeleteResult, error) {
	if err := validID(id); err != nil {
		return types.DeleteResult{}, err
	}
	const query = `DELETE FROM donation_requests WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return types.DeleteResult{}, err
	}
	return deleteResult(result)
}
