package service

import (
	"context"
	"testing"

	"github.com/guibitar/fit-flow-control-sub001/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newFinanceFixture() (FinanceService, *fakeClientRepo, *fakeTransactionRepo) {
	clientRepo := newFakeClientRepo()
	txRepo := newFakeTransactionRepo()
	return NewFinanceService(txRepo, clientRepo), clientRepo, txRepo
}

func TestCreateTransactionBackfillsClientName(t *testing.T) {
	svc, clientRepo, _ := newFinanceFixture()
	trainer := primitive.NewObjectID()
	clientID := seedOwnedClient(t, clientRepo, trainer)

	created, err := svc.Create(context.Background(), trainer, &domain.Transaction{
		ClientID: &clientID,
		Amount:   -100,
		Kind:     domain.KindPayment,
		Method:   "pix",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana", created.ClientName)
	assert.False(t, created.OccurredAt.IsZero())
	assert.Equal(t, trainer, created.TrainerID)
}

func TestCreateTransactionKeepsExplicitClientName(t *testing.T) {
	svc, clientRepo, _ := newFinanceFixture()
	trainer := primitive.NewObjectID()
	clientID := seedOwnedClient(t, clientRepo, trainer)

	created, err := svc.Create(context.Background(), trainer, &domain.Transaction{
		ClientID:   &clientID,
		ClientName: "Ana (legacy import)",
		Amount:     -50,
		Kind:       domain.KindPayment,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana (legacy import)", created.ClientName)
}

func TestCreateTransactionForeignClient(t *testing.T) {
	svc, clientRepo, _ := newFinanceFixture()
	clientID := seedOwnedClient(t, clientRepo, primitive.NewObjectID())

	_, err := svc.Create(context.Background(), primitive.NewObjectID(), &domain.Transaction{
		ClientID: &clientID,
		Amount:   10,
		Kind:     domain.KindOther,
	})
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestCreateTransactionWithoutClient(t *testing.T) {
	svc, _, _ := newFinanceFixture()
	trainer := primitive.NewObjectID()

	// Ad-hoc entries without a client reference are allowed.
	created, err := svc.Create(context.Background(), trainer, &domain.Transaction{
		Amount:      200,
		Kind:        domain.KindOther,
		Description: "equipment sale",
	})
	require.NoError(t, err)
	assert.Nil(t, created.ClientID)
}

func TestCreateTransactionInvalidKind(t *testing.T) {
	svc, _, _ := newFinanceFixture()

	_, err := svc.Create(context.Background(), primitive.NewObjectID(), &domain.Transaction{
		Amount: 10,
		Kind:   "tip",
	})
	assert.ErrorIs(t, err, ErrInvalidTxKind)
}

func TestUpdateTransactionInvalidKind(t *testing.T) {
	svc, _, txRepo := newFinanceFixture()
	trainer := primitive.NewObjectID()

	id, err := txRepo.Create(context.Background(), &domain.Transaction{
		TrainerID: trainer,
		Amount:    10,
		Kind:      domain.KindOther,
	})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), trainer, id, map[string]any{"kind": "tip"})
	assert.ErrorIs(t, err, ErrInvalidTxKind)
}

func TestTransactionTenantIsolation(t *testing.T) {
	svc, _, txRepo := newFinanceFixture()
	trainer := primitive.NewObjectID()

	id, err := txRepo.Create(context.Background(), &domain.Transaction{
		TrainerID: trainer,
		Amount:    10,
		Kind:      domain.KindOther,
	})
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), primitive.NewObjectID(), id)
	assert.ErrorIs(t, err, ErrTransactionNotFound)

	err = svc.Delete(context.Background(), primitive.NewObjectID(), id)
	assert.ErrorIs(t, err, ErrTransactionNotFound)
}
