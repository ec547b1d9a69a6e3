package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// UserUseCase administración de usuarios (listar, actualizar, eliminar).
// El registro y el login viven en el paquete auth.
type UserUseCase struct {
	txRunner TxRunner
	repo     repository.UserRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(txRunner TxRunner, repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{txRunner: txRunner, repo: repo}
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return ToUserResponse(user), nil
}

// List lista usuarios con paginación.
func (uc *UserUseCase) List(limit, offset int) (*dto.UserListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *ToUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Skip: offset, Limit: limit},
	}, nil
}

// Update actualiza un usuario. Verifica unicidad del email si cambia y
// rehashea la contraseña si viene en el request.
func (uc *UserUseCase) Update(ctx context.Context, actorID, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Email != nil && *in.Email != user.Email {
		existing, err := uc.repo.GetByEmail(*in.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, domain.ErrEmailAlreadyExists
		}
		user.Email = *in.Email
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if in.Role != nil {
		if *in.Role != entity.RoleSuperAdmin && *in.Role != entity.RoleWarehouse {
			return nil, domain.ErrInvalidInput
		}
		user.Role = *in.Role
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	now := time.Now()
	user.UpdatedAt = now

	err = uc.txRunner.Run(ctx, func(
		_ repository.WarehouseRepository,
		_ repository.InventoryRepository,
		userRepo repository.UserRepository,
		activityRepo repository.ActivityRepository,
	) error {
		if err := userRepo.Update(user); err != nil {
			return err
		}
		return activityRepo.Create(&entity.Activity{
			ID:          uuid.New().String(),
			UserID:      actorRef(actorID),
			Type:        entity.ActivityUserUpdated,
			EntityType:  entity.EntityTypeUser,
			EntityID:    entityRef(user.ID),
			Description: fmt.Sprintf("User %s updated", user.Email),
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
	return ToUserResponse(user), nil
}

// Delete elimina un usuario. Sus ventas y actividades quedan con user_id nulo
// (SET NULL) y siguen siendo consultables.
func (uc *UserUseCase) Delete(ctx context.Context, actorID, id string) error {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	now := time.Now()
	return uc.txRunner.Run(ctx, func(
		_ repository.WarehouseRepository,
		_ repository.InventoryRepository,
		userRepo repository.UserRepository,
		activityRepo repository.ActivityRepository,
	) error {
		if err := userRepo.Delete(id); err != nil {
			return err
		}
		return activityRepo.Create(&entity.Activity{
			ID:          uuid.New().String(),
			UserID:      actorRef(actorID),
			Type:        entity.ActivityUserDeleted,
			EntityType:  entity.EntityTypeUser,
			EntityID:    entityRef(id),
			Description: fmt.Sprintf("User %s deleted", user.Email),
			Metadata: map[string]any{
				"email": user.Email,
				"role":  user.Role,
			},
			CreatedAt: now,
		})
	})
}

// ToUserResponse convierte la entidad a su representación pública (sin hash).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
