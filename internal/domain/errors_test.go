package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bodega-api/internal/domain"
)

func TestInsufficientStockError_RespondeAlSentinela(t *testing.T) {
	err := &domain.InsufficientStockError{Available: 6, Requested: 7}

	assert.ErrorIs(t, err, domain.ErrInsufficientStock,
		"el error tipado debe poder detectarse con errors.Is")

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 6, stockErr.Available)
	assert.Equal(t, 7, stockErr.Requested)
}

func TestInsufficientStockError_SobreviveAlWrapping(t *testing.T) {
	err := fmt.Errorf("registrar venta: %w", &domain.InsufficientStockError{Available: 2, Requested: 5})

	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, 2, stockErr.Available)
}

func TestInsufficientStockError_MensajeIncluyeLosNumeros(t *testing.T) {
	err := &domain.InsufficientStockError{Available: 6, Requested: 7}
	assert.Contains(t, err.Error(), "6")
	assert.Contains(t, err.Error(), "7")
}

func TestSentinelas_SonDistinguibles(t *testing.T) {
	assert.NotErrorIs(t, domain.ErrNotFound, domain.ErrConflict)
	assert.NotErrorIs(t, domain.ErrForbidden, domain.ErrUnauthorized)
	assert.NotErrorIs(t, domain.ErrDuplicate, domain.ErrEmailAlreadyExists)
}
