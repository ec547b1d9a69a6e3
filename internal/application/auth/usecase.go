package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/application/usecase"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
	"github.com/jhoicas/bodega-api/pkg/jwt"
)

// PasswordHasher abstrae bcrypt para poder testear sin el costo del hash real.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenConfig parámetros de emisión de JWT.
type TokenConfig struct {
	Secret     string
	Issuer     string
	ExpMinutes int
}

// UseCase registro y autenticación de usuarios. Tanto el registro como el
// login exitoso dejan rastro de auditoría; si la auditoría falla, la operación
// completa se revierte.
type UseCase struct {
	txRunner usecase.TxRunner
	repo     repository.UserRepository
	hasher   PasswordHasher
	token    TokenConfig
}

// NewUseCase construye el caso de uso de autenticación.
func NewUseCase(txRunner usecase.TxRunner, repo repository.UserRepository, hasher PasswordHasher, token TokenConfig) *UseCase {
	return &UseCase{txRunner: txRunner, repo: repo, hasher: hasher, token: token}
}

// Register crea un usuario nuevo. El email debe ser único; el rol por defecto
// es warehouse y solo se aceptan roles de la taxonomía.
func (uc *UseCase) Register(ctx context.Context, actorID string, in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: email inválido", domain.ErrInvalidInput)
	}
	if len(in.Password) < 8 {
		return nil, fmt.Errorf("%w: la contraseña debe tener al menos 8 caracteres", domain.ErrInvalidInput)
	}
	role := in.Role
	if role == "" {
		role = entity.RoleWarehouse
	}
	if role != entity.RoleSuperAdmin && role != entity.RoleWarehouse {
		return nil, fmt.Errorf("%w: rol desconocido %q", domain.ErrInvalidInput, in.Role)
	}

	exists, err := uc.repo.ExistsByEmail(email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         strings.TrimSpace(in.Name),
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = uc.txRunner.Run(ctx, func(
		_ repository.WarehouseRepository,
		_ repository.InventoryRepository,
		userRepo repository.UserRepository,
		activityRepo repository.ActivityRepository,
	) error {
		if err := userRepo.Create(user); err != nil {
			return err
		}
		return activityRepo.Create(&entity.Activity{
			ID:          uuid.New().String(),
			UserID:      actorRef(actorID),
			Type:        entity.ActivityUserCreated,
			EntityType:  entity.EntityTypeUser,
			EntityID:    &user.ID,
			Description: fmt.Sprintf("User %s registered", user.Email),
			Metadata: map[string]any{
				"email": user.Email,
				"role":  user.Role,
			},
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	return usecase.ToUserResponse(user), nil
}

// Login valida credenciales y emite un JWT. Credenciales malas y usuarios
// inexistentes responden lo mismo para no filtrar qué emails existen. El login
// exitoso registra la actividad user_login en la misma transacción.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	user, err := uc.repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := uc.hasher.Compare(user.PasswordHash, in.Password); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, domain.ErrForbidden
	}

	token, err := jwt.Generate(uc.token.Secret, user.ID, user.Role, uc.token.Issuer, uc.token.ExpMinutes)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	err = uc.txRunner.Run(ctx, func(
		_ repository.WarehouseRepository,
		_ repository.InventoryRepository,
		_ repository.UserRepository,
		activityRepo repository.ActivityRepository,
	) error {
		return activityRepo.Create(&entity.Activity{
			ID:          uuid.New().String(),
			UserID:      &user.ID,
			Type:        entity.ActivityUserLogin,
			EntityType:  entity.EntityTypeUser,
			EntityID:    &user.ID,
			Description: fmt.Sprintf("User %s logged in", user.Email),
			Metadata:    map[string]any{"email": user.Email},
			CreatedAt:   now,
		})
	})
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token: token,
		User:  *usecase.ToUserResponse(user),
	}, nil
}

func actorRef(actorID string) *string {
	if actorID == "" {
		return nil
	}
	return &actorID
}
