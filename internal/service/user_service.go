package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/eujoaosantiago/velohub/internal/middleware"
	"github.com/eujoaosantiago/velohub/internal/model"
	"github.com/eujoaosantiago/velohub/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

// --- DTOs ---

// RegisterStoreRequest opens a new tenant: the store plus its admin user,
// created together. The subscription starts in TRIALING until the billing
// webhook says otherwise.
type RegisterStoreRequest struct {
	StoreName string `json:"store_name" binding:"required"`
	CNPJ      string `json:"cnpj"`
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone"`
	Password  string `json:"password" binding:"required,min=6"`
}

type CreateStaffRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required,oneof=admin manager seller"`
}

type UpdateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" binding:"omitempty,email"`
	Phone string `json:"phone"`
	Role  string `json:"role" binding:"omitempty,oneof=admin manager seller"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type UserResponse struct {
	ID        string `json:"id"`
	StoreID   string `json:"store_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

// --- Interface ---

type UserService interface {
	RegisterStore(ctx context.Context, req RegisterStoreRequest) (*UserResponse, error)
	Login(ctx context.Context, req LoginRequest) (*TokenPairResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPairResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	CreateStaff(ctx context.Context, storeID string, req CreateStaffRequest) (*UserResponse, error)
	GetUserByID(ctx context.Context, storeID, id string) (*UserResponse, error)
	ListStaff(ctx context.Context, storeID string, page, limit int) ([]UserResponse, int64, error)
	UpdateUser(ctx context.Context, storeID, id string, req UpdateUserRequest) (*UserResponse, error)
	DeleteUser(ctx context.Context, storeID, id string) error
}

type userService struct {
	userRepo  repository.UserRepository
	storeRepo repository.StoreRepository
	txManager repository.TransactionManager
}

func NewUserService(
	userRepo repository.UserRepository,
	storeRepo repository.StoreRepository,
	txManager repository.TransactionManager,
) UserService {
	return &userService{
		userRepo:  userRepo,
		storeRepo: storeRepo,
		txManager: txManager,
	}
}

// --- Implementation ---

func (s *userService) RegisterStore(ctx context.Context, req RegisterStoreRequest) (*UserResponse, error) {
	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, errors.New("email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	store := model.Store{
		Name:               req.StoreName,
		CNPJ:               req.CNPJ,
		SubscriptionStatus: model.SubscriptionTrialing,
	}
	user := model.User{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: string(hashedPassword),
		Role:     model.RoleAdmin,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if createErr := s.storeRepo.Create(txCtx, &store); createErr != nil {
			return fmt.Errorf("failed to create store: %w", createErr)
		}
		user.StoreID = store.ID
		if createErr := s.userRepo.Create(txCtx, &user); createErr != nil {
			return fmt.Errorf("failed to create user: %w", createErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return mapToUserResponse(&user), nil
}

func (s *userService) Login(ctx context.Context, req LoginRequest) (*TokenPairResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.New("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid email or password")
	}

	return s.issueTokenPair(ctx, user)
}

func (s *userService) Refresh(ctx context.Context, refreshToken string) (*TokenPairResponse, error) {
	stored, err := s.userRepo.FindRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, errors.New("invalid refresh token")
	}
	if time.Now().After(stored.ExpiresAt) {
		_ = s.userRepo.DeleteRefreshToken(ctx, refreshToken)
		return nil, errors.New("refresh token expired")
	}

	user, err := s.userRepo.FindByID(ctx, stored.UserID)
	if err != nil {
		return nil, errors.New("user not found")
	}

	// rotate: the old token dies with the new issuance
	if err := s.userRepo.DeleteRefreshToken(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	return s.issueTokenPair(ctx, user)
}

func (s *userService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.userRepo.DeleteRefreshToken(ctx, refreshToken)
}

func (s *userService) CreateStaff(ctx context.Context, storeID string, req CreateStaffRequest) (*UserResponse, error) {
	storeUUID, err := uuid.Parse(storeID)
	if err != nil {
		return nil, errors.New("invalid store id")
	}

	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, errors.New("email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	user := model.User{
		StoreID:  storeUUID,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: string(hashedPassword),
		Role:     req.Role,
	}

	if err := s.userRepo.Create(ctx, &user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return mapToUserResponse(&user), nil
}

func (s *userService) GetUserByID(ctx context.Context, storeID, id string) (*UserResponse, error) {
	storeUUID, userUUID, err := parseStoreEntity(storeID, id)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, userUUID)
	if err != nil {
		return nil, errors.New("user not found")
	}
	if user.StoreID != storeUUID {
		return nil, errors.New("user not found")
	}
	return mapToUserResponse(user), nil
}

func (s *userService) ListStaff(ctx context.Context, storeID string, page, limit int) ([]UserResponse, int64, error) {
	storeUUID, err := uuid.Parse(storeID)
	if err != nil {
		return nil, 0, errors.New("invalid store id")
	}
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	users, total, err := s.userRepo.ListByStore(ctx, storeUUID, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch users: %w", err)
	}

	result := make([]UserResponse, 0, len(users))
	for i := range users {
		result = append(result, *mapToUserResponse(&users[i]))
	}
	return result, total, nil
}

func (s *userService) UpdateUser(ctx context.Context, storeID, id string, req UpdateUserRequest) (*UserResponse, error) {
	storeUUID, userUUID, err := parseStoreEntity(storeID, id)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, userUUID)
	if err != nil {
		return nil, errors.New("user not found")
	}
	if user.StoreID != storeUUID {
		return nil, errors.New("user not found")
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.Role != "" {
		user.Role = req.Role
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return mapToUserResponse(user), nil
}

func (s *userService) DeleteUser(ctx context.Context, storeID, id string) error {
	storeUUID, userUUID, err := parseStoreEntity(storeID, id)
	if err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, storeUUID, userUUID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// --- Helpers ---

func (s *userService) issueTokenPair(ctx context.Context, user *model.User) (*TokenPairResponse, error) {
	claims := jwt.MapClaims{
		"sub":      user.ID.String(),
		"store_id": user.StoreID.String(),
		"role":     user.Role,
		"exp":      time.Now().Add(accessTokenTTL).Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	accessToken, err := token.SignedString(middleware.GetJWTSecret())
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	refreshToken := hex.EncodeToString(raw)

	if err := s.userRepo.SaveRefreshToken(ctx, &model.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	// opportunistic cleanup of stale tokens
	_ = s.userRepo.DeleteExpiredRefreshTokens(ctx)

	return &TokenPairResponse{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func mapToUserResponse(user *model.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID.String(),
		StoreID:   user.StoreID.String(),
		Name:      user.Name,
		Email:     user.Email,
		Phone:     user.Phone,
		Role:      user.Role,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}
