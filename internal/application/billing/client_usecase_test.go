package billing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturador-api/internal/application/billing"
	"github.com/jhoicas/Facturador-api/internal/application/dto"
	"github.com/jhoicas/Facturador-api/internal/domain"
	"github.com/jhoicas/Facturador-api/internal/testutil"
)

func TestClientUseCase_CRUD(t *testing.T) {
	repo := testutil.NewClientRepo()
	cache := &testutil.Invalidator{}
	uc := billing.NewClientUseCase(repo, cache)

	created, err := uc.Create(userID, dto.CreateClientRequest{Name: " Globex ", Email: "ap@globex.test", Phone: "555"})
	require.NoError(t, err)
	assert.Equal(t, "Globex", created.Name)

	list, err := uc.List(userID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	addr := "Calle 1"
	updated, err := uc.Update(userID, created.ID, dto.UpdateClientRequest{Address: &addr})
	require.NoError(t, err)
	assert.Equal(t, "Calle 1", updated.Address)
	assert.Equal(t, "555", updated.Phone, "campos ausentes no cambian")
	assert.Equal(t, "ap@globex.test", updated.Email)

	require.NoError(t, uc.Delete(userID, created.ID))
	_, err = uc.GetByID(userID, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 2, cache.Count(userID))
}

func TestClientUseCase_Validaciones(t *testing.T) {
	uc := billing.NewClientUseCase(testutil.NewClientRepo(), nil)

	_, err := uc.Create(userID, dto.CreateClientRequest{Name: "", Email: "a@b.test"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	created, err := uc.Create(userID, dto.CreateClientRequest{Name: "Globex", Email: "a@b.test"})
	require.NoError(t, err)

	empty := "  "
	_, err = uc.Update(userID, created.ID, dto.UpdateClientRequest{Name: &empty})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.GetByID("otro-usuario", created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "clientes ajenos no se ven")
	assert.ErrorIs(t, uc.Delete("otro-usuario", created.ID), domain.ErrNotFound)
}
