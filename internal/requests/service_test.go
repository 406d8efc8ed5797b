package requests

import (
	"context"
	"testing"
	"time"

	"github.com/crestviewems/supplyline-backend/internal/collections"
	"github.com/crestviewems/supplyline-backend/pkg/db/models"
	"github.com/crestviewems/supplyline-backend/pkg/enums"
	pkgerrors "github.com/crestviewems/supplyline-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubRequestsRepo struct {
	rows        map[uuid.UUID]*models.Request
	lastUpdate  map[string]any
	manyIDs     []uuid.UUID
	manyUpdates map[string]any
}

func newStubRequestsRepo() *stubRequestsRepo {
	return &stubRequestsRepo{rows: map[uuid.UUID]*models.Request{}}
}

func (s *stubRequestsRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRequestsRepo) ListAll(ctx context.Context) ([]models.Request, error) {
	out := []models.Request{}
	for _, row := range s.rows {
		out = append(out, *row)
	}
	return out, nil
}

func (s *stubRequestsRepo) Find(ctx context.Context, id uuid.UUID) (*models.Request, error) {
	row, ok := s.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *row
	return &copied, nil
}

func (s *stubRequestsRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Request, error) {
	out := []models.Request{}
	for _, id := range ids {
		if row, ok := s.rows[id]; ok {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (s *stubRequestsRepo) Create(ctx context.Context, req *models.Request) (*models.Request, error) {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	s.rows[req.ID] = req
	return req, nil
}

func (s *stubRequestsRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	s.lastUpdate = updates
	row := s.rows[id]
	if status, ok := updates["status"].(enums.RequestStatus); ok {
		row.Status = status
	}
	if v, ok := updates["override_vendor_id"]; ok {
		if v == nil {
			row.OverrideVendorID = nil
		} else if id, ok := v.(uuid.UUID); ok {
			row.OverrideVendorID = &id
		}
	}
	if at, ok := updates["received_at"].(time.Time); ok {
		row.ReceivedAt = &at
	}
	if at, ok := updates["last_ordered"].(time.Time); ok {
		row.LastOrdered = &at
	}
	if qty, ok := updates["qty"].(int); ok {
		row.Qty = qty
	}
	return nil
}

func (s *stubRequestsRepo) UpdateMany(ctx context.Context, ids []uuid.UUID, updates map[string]any) error {
	s.manyIDs = ids
	s.manyUpdates = updates
	for _, id := range ids {
		_ = s.Update(ctx, id, updates)
	}
	return nil
}

func (s *stubRequestsRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(s.rows, id)
	return nil
}

type stubRefs struct {
	items   map[uuid.UUID]struct{}
	vendors map[uuid.UUID]struct{}
}

func newStubRefs() *stubRefs {
	return &stubRefs{items: map[uuid.UUID]struct{}{}, vendors: map[uuid.UUID]struct{}{}}
}

func (s *stubRefs) FindCatalogItem(ctx context.Context, id uuid.UUID) (*models.CatalogItem, error) {
	if _, ok := s.items[id]; !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &models.CatalogItem{ID: id}, nil
}

func (s *stubRefs) FindVendor(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	if _, ok := s.vendors[id]; !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &models.Vendor{ID: id}, nil
}

type recordingNotifier struct {
	published []string
}

func (n *recordingNotifier) NotifyChanged(ctx context.Context, collection string) error {
	n.published = append(n.published, collection)
	return nil
}

func newTestService(repo *stubRequestsRepo, refs *stubRefs, notifier *recordingNotifier) *Service {
	svc := NewService(repo, refs, nil, notifier, nil)
	svc.now = func() time.Time { return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestCreateRequiresExactlyOneItemReference(t *testing.T) {
	svc := newTestService(newStubRequestsRepo(), newStubRefs(), &recordingNotifier{})

	_, err := svc.Create(context.Background(), "medic@crestviewems.org", CreateRequestInput{Qty: 1})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	name := "duct tape"
	catID := uuid.New()
	_, err = svc.Create(context.Background(), "medic@crestviewems.org", CreateRequestInput{
		CatalogID:     &catID,
		OtherItemName: &name,
		Qty:           1,
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestCreateFreeTextRequest(t *testing.T) {
	repo := newStubRequestsRepo()
	notifier := &recordingNotifier{}
	svc := newTestService(repo, newStubRefs(), notifier)

	name := "duct tape"
	created, err := svc.Create(context.Background(), "medic@crestviewems.org", CreateRequestInput{
		OtherItemName: &name,
		Qty:           2,
	})
	require.NoError(t, err)
	assert.Equal(t, enums.RequestStatusOpen, created.Status)
	assert.Equal(t, "medic@crestviewems.org", created.RequesterEmail)
	assert.Equal(t, []string{collections.Requests}, notifier.published)
}

func TestCreateValidatesCatalogReference(t *testing.T) {
	svc := newTestService(newStubRequestsRepo(), newStubRefs(), &recordingNotifier{})

	catID := uuid.New()
	_, err := svc.Create(context.Background(), "medic@crestviewems.org", CreateRequestInput{
		CatalogID: &catID,
		Qty:       1,
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestUpdateStatusReceivedClearsOverrideAtomically(t *testing.T) {
	repo := newStubRequestsRepo()
	override := uuid.New()
	row := &models.Request{ID: uuid.New(), Qty: 1, Status: enums.RequestStatusOrdered, OverrideVendorID: &override}
	repo.rows[row.ID] = row
	svc := newTestService(repo, newStubRefs(), &recordingNotifier{})

	updated, err := svc.UpdateStatus(context.Background(), row.ID, UpdateStatusInput{Status: "Received"})
	require.NoError(t, err)

	// Side effects ride in the same update map as the status write.
	require.Contains(t, repo.lastUpdate, "status")
	require.Contains(t, repo.lastUpdate, "received_at")
	require.Contains(t, repo.lastUpdate, "override_vendor_id")
	assert.Nil(t, repo.lastUpdate["override_vendor_id"])

	assert.Equal(t, enums.RequestStatusReceived, updated.Status)
	assert.Nil(t, updated.OverrideVendorID)
	require.NotNil(t, updated.ReceivedAt)
}

func TestUpdateStatusReceivedClearsUnsetOverrideToo(t *testing.T) {
	repo := newStubRequestsRepo()
	row := &models.Request{ID: uuid.New(), Qty: 1, Status: enums.RequestStatusOpen}
	repo.rows[row.ID] = row
	svc := newTestService(repo, newStubRefs(), &recordingNotifier{})

	_, err := svc.UpdateStatus(context.Background(), row.ID, UpdateStatusInput{Status: "Completed"})
	require.NoError(t, err)
	require.Contains(t, repo.lastUpdate, "override_vendor_id")
	assert.Nil(t, repo.lastUpdate["override_vendor_id"])
}

func TestUpdateStatusOpenClearsOverride(t *testing.T) {
	repo := newStubRequestsRepo()
	override := uuid.New()
	row := &models.Request{ID: uuid.New(), Qty: 1, Status: enums.RequestStatusOrdered, OverrideVendorID: &override}
	repo.rows[row.ID] = row
	svc := newTestService(repo, newStubRefs(), &recordingNotifier{})

	updated, err := svc.UpdateStatus(context.Background(), row.ID, UpdateStatusInput{Status: "Open"})
	require.NoError(t, err)
	assert.Nil(t, updated.OverrideVendorID)
	assert.Nil(t, updated.ReceivedAt)
}

func TestUpdateStatusOrderedStampsLastOrdered(t *testing.T) {
	repo := newStubRequestsRepo()
	row := &models.Request{ID: uuid.New(), Qty: 1, Status: enums.RequestStatusOpen}
	repo.rows[row.ID] = row
	svc := newTestService(repo, newStubRefs(), &recordingNotifier{})

	updated, err := svc.UpdateStatus(context.Background(), row.ID, UpdateStatusInput{Status: "Ordered"})
	require.NoError(t, err)
	require.NotNil(t, updated.LastOrdered)
	assert.NotContains(t, repo.lastUpdate, "override_vendor_id")
}

func TestUpdateStatusRejectsLegacyValues(t *testing.T) {
	repo := newStubRequestsRepo()
	row := &models.Request{ID: uuid.New(), Qty: 1, Status: enums.RequestStatusOpen}
	repo.rows[row.ID] = row
	svc := newTestService(repo, newStubRefs(), &recordingNotifier{})

	_, err := svc.UpdateStatus(context.Background(), row.ID, UpdateStatusInput{Status: "Closed"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestSetOverridePinsAndClears(t *testing.T) {
	repo := newStubRequestsRepo()
	refs := newStubRefs()
	vendorID := uuid.New()
	refs.vendors[vendorID] = struct{}{}
	row := &models.Request{ID: uuid.New(), Qty: 1, Status: enums.RequestStatusOpen}
	repo.rows[row.ID] = row
	svc := newTestService(repo, refs, &recordingNotifier{})

	updated, err := svc.SetOverride(context.Background(), row.ID, SetOverrideInput{VendorID: &vendorID})
	require.NoError(t, err)
	require.NotNil(t, updated.OverrideVendorID)
	assert.Equal(t, vendorID, *updated.OverrideVendorID)

	updated, err = svc.SetOverride(context.Background(), row.ID, SetOverrideInput{})
	require.NoError(t, err)
	assert.Nil(t, updated.OverrideVendorID)
}

func TestSetOverrideRejectsClosedRequests(t *testing.T) {
	repo := newStubRequestsRepo()
	refs := newStubRefs()
	vendorID := uuid.New()
	refs.vendors[vendorID] = struct{}{}
	row := &models.Request{ID: uuid.New(), Qty: 1, Status: enums.RequestStatusReceived}
	repo.rows[row.ID] = row
	svc := newTestService(repo, refs, &recordingNotifier{})

	_, err := svc.SetOverride(context.Background(), row.ID, SetOverrideInput{VendorID: &vendorID})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code())
}

func TestSetOverrideUnknownVendorIsNotFound(t *testing.T) {
	repo := newStubRequestsRepo()
	row := &models.Request{ID: uuid.New(), Qty: 1, Status: enums.RequestStatusOpen}
	repo.rows[row.ID] = row
	svc := newTestService(repo, newStubRefs(), &recordingNotifier{})

	ghost := uuid.New()
	_, err := svc.SetOverride(context.Background(), row.ID, SetOverrideInput{VendorID: &ghost})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}
