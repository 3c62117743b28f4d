package offering

import (
	"context"
	"testing"

	"mixbeat/internal/models"
	"mixbeat/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOfferingRepo struct {
	offerings map[string]models.ServiceOffering
}

func newFakeOfferingRepo() *fakeOfferingRepo {
	return &fakeOfferingRepo{offerings: make(map[string]models.ServiceOffering)}
}

func (f *fakeOfferingRepo) Create(_ context.Context, offering *models.ServiceOffering) error {
	if offering.ID == "" {
		offering.ID = uuid.NewString()
	}
	f.offerings[offering.ID] = *offering
	return nil
}

func (f *fakeOfferingRepo) GetByID(_ context.Context, id string) (*models.ServiceOffering, error) {
	o, ok := f.offerings[id]
	if !ok {
		return nil, repositories.ErrOfferingNotFound
	}
	return &o, nil
}

func (f *fakeOfferingRepo) ListAll(_ context.Context) ([]models.ServiceOffering, error) {
	out := make([]models.ServiceOffering, 0, len(f.offerings))
	for _, o := range f.offerings {
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeOfferingRepo) ListByProvider(_ context.Context, providerID string) ([]models.ServiceOffering, error) {
	var out []models.ServiceOffering
	for _, o := range f.offerings {
		if o.ProviderID == providerID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOfferingRepo) Update(_ context.Context, offering *models.ServiceOffering) error {
	if _, ok := f.offerings[offering.ID]; !ok {
		return repositories.ErrOfferingNotFound
	}
	f.offerings[offering.ID] = *offering
	return nil
}

func (f *fakeOfferingRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.offerings[id]; !ok {
		return repositories.ErrOfferingNotFound
	}
	delete(f.offerings, id)
	return nil
}

func mixingOffering() *models.ServiceOffering {
	return &models.ServiceOffering{
		Name:      "Stem mixing",
		Category:  "mixing",
		BasePrice: decimal.NewFromInt(250),
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("new offerings start pending under the caller's provider id", func(t *testing.T) {
		repo := newFakeOfferingRepo()
		svc := NewService(repo)

		input := mixingOffering()
		input.ID = "client-chosen"
		input.Status = models.OfferingStatusActive

		created, err := svc.Register(ctx, "prov-1", input)
		require.NoError(t, err)
		assert.NotEqual(t, "client-chosen", created.ID)
		assert.Equal(t, "prov-1", created.ProviderID)
		assert.Equal(t, models.OfferingStatusPending, created.Status)
	})

	t.Run("rejects a blank name", func(t *testing.T) {
		svc := NewService(newFakeOfferingRepo())

		input := mixingOffering()
		input.Name = "   "
		_, err := svc.Register(ctx, "prov-1", input)
		assert.ErrorIs(t, err, ErrInvalidOffering)
	})

	t.Run("rejects a negative base price", func(t *testing.T) {
		svc := NewService(newFakeOfferingRepo())

		input := mixingOffering()
		input.BasePrice = decimal.NewFromInt(-10)
		_, err := svc.Register(ctx, "prov-1", input)
		assert.ErrorIs(t, err, ErrInvalidOffering)
	})

	t.Run("rejects a missing provider", func(t *testing.T) {
		svc := NewService(newFakeOfferingRepo())

		_, err := svc.Register(ctx, "", mixingOffering())
		assert.ErrorIs(t, err, ErrInvalidOffering)
	})
}

func TestListByProvider(t *testing.T) {
	ctx := context.Background()
	repo := newFakeOfferingRepo()
	svc := NewService(repo)

	_, err := svc.Register(ctx, "prov-1", mixingOffering())
	require.NoError(t, err)
	other := mixingOffering()
	other.Name = "Mastering"
	_, err = svc.Register(ctx, "prov-2", other)
	require.NoError(t, err)

	mine, err := svc.ListByProvider(ctx, "prov-1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Stem mixing", mine[0].Name)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("keeps identity and lifecycle fields server-owned", func(t *testing.T) {
		repo := newFakeOfferingRepo()
		svc := NewService(repo)

		created, err := svc.Register(ctx, "prov-1", mixingOffering())
		require.NoError(t, err)

		input := mixingOffering()
		input.Name = "Stem mixing + revisions"
		input.Status = models.OfferingStatusActive

		updated, err := svc.Update(ctx, "prov-1", created.ID, input)
		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, "prov-1", updated.ProviderID)
		assert.Equal(t, "Stem mixing + revisions", updated.Name)
		assert.Equal(t, models.OfferingStatusPending, updated.Status)
	})

	t.Run("refuses another provider's offering", func(t *testing.T) {
		repo := newFakeOfferingRepo()
		svc := NewService(repo)

		created, err := svc.Register(ctx, "prov-1", mixingOffering())
		require.NoError(t, err)

		_, err = svc.Update(ctx, "prov-2", created.ID, mixingOffering())
		assert.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("unknown offering", func(t *testing.T) {
		svc := NewService(newFakeOfferingRepo())

		_, err := svc.Update(ctx, "prov-1", "missing", mixingOffering())
		assert.ErrorIs(t, err, ErrOfferingNotFound)
	})
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("activates a pending offering", func(t *testing.T) {
		repo := newFakeOfferingRepo()
		svc := NewService(repo)

		created, err := svc.Register(ctx, "prov-1", mixingOffering())
		require.NoError(t, err)

		updated, err := svc.UpdateStatus(ctx, "prov-1", created.ID, models.OfferingStatusActive)
		require.NoError(t, err)
		assert.Equal(t, models.OfferingStatusActive, updated.Status)
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		repo := newFakeOfferingRepo()
		svc := NewService(repo)

		created, err := svc.Register(ctx, "prov-1", mixingOffering())
		require.NoError(t, err)

		_, err = svc.UpdateStatus(ctx, "prov-1", created.ID, "archived")
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("refuses another provider's offering", func(t *testing.T) {
		repo := newFakeOfferingRepo()
		svc := NewService(repo)

		created, err := svc.Register(ctx, "prov-1", mixingOffering())
		require.NoError(t, err)

		_, err = svc.UpdateStatus(ctx, "prov-2", created.ID, models.OfferingStatusActive)
		assert.ErrorIs(t, err, ErrNotOwner)
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the provider's own offering", func(t *testing.T) {
		repo := newFakeOfferingRepo()
		svc := NewService(repo)

		created, err := svc.Register(ctx, "prov-1", mixingOffering())
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, "prov-1", created.ID))
		_, err = repo.GetByID(ctx, created.ID)
		assert.ErrorIs(t, err, repositories.ErrOfferingNotFound)
	})

	t.Run("refuses another provider's offering", func(t *testing.T) {
		repo := newFakeOfferingRepo()
		svc := NewService(repo)

		created, err := svc.Register(ctx, "prov-1", mixingOffering())
		require.NoError(t, err)

		err = svc.Delete(ctx, "prov-2", created.ID)
		assert.ErrorIs(t, err, ErrNotOwner)
		_, getErr := repo.GetByID(ctx, created.ID)
		assert.NoError(t, getErr)
	})
}
