package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/nvoronin/inkwell/internal/config"
	"github.com/nvoronin/inkwell/internal/logger"
	"github.com/nvoronin/inkwell/internal/objectstore"
	"github.com/nvoronin/inkwell/internal/store"
	"github.com/nvoronin/inkwell/internal/utils"
	"github.com/nvoronin/inkwell/models"
)

// storageService implements the upload quota protocol. Files never pass
// through the server: AuthorizeUpload hands out a presigned PUT, the client
// uploads directly, and ConfirmUpload debits the size the store actually
// recorded. The declared size only gates the pre-check.
type storageService struct {
	userRepository store.UserRepository
	objectStore    objectstore.ObjectStore
	cfg            config.S3Config
	logger         *logger.Logger
}

func NewStorageService(users store.UserRepository, objects objectstore.ObjectStore, cfg config.S3Config, logger *logger.Logger) StorageService {
	return &storageService{
		userRepository: users,
		objectStore:    objects,
		cfg:            cfg,
		logger:         logger,
	}
}

// AuthorizeUpload runs the quota pre-check against the declared size and
// returns the upload ticket. An upload filling the quota exactly
// (used + size == assigned) is allowed. Authorized-but-never-confirmed
// objects are not tracked; they occupy bucket space but no quota.
func (s *storageService) AuthorizeUpload(ctx context.Context, userID string, req models.PresignedURLRequest) (models.PresignedURLResponse, error) {
	log := logger.FromContext(ctx)

	if req.Filename == "" || req.ContentType == "" || req.Size <= 0 {
		log.Error().Str("userID", userID).Msg("invalid upload authorization request")
		return models.PresignedURLResponse{}, ErrInvalidDataProvided
	}

	user, err := s.userRepository.GetUser(ctx, userID)
	if err != nil {
		log.Err(err).Str("userID", userID).Msg("user lookup failed")
		return models.PresignedURLResponse{}, fmt.Errorf("user lookup failed: %w", err)
	}

	if user.UsedStorage+req.Size > user.AssignedStorage {
		log.Error().
			Str("userID", userID).
			Int64("used", user.UsedStorage).
			Int64("assigned", user.AssignedStorage).
			Int64("required", req.Size).
			Msg("storage quota exceeded")
		return models.PresignedURLResponse{}, &QuotaError{
			Used:     user.UsedStorage,
			Assigned: user.AssignedStorage,
			Required: req.Size,
		}
	}

	key := utils.BuildStorageKey(userID, req.ContentType, req.Filename)
	uploadURL, err := s.objectStore.PresignPut(ctx, key, req.ContentType, s.cfg.PresignTTL)
	if err != nil {
		log.Err(err).Str("key", key).Msg("upload authorization failed")
		return models.PresignedURLResponse{}, fmt.Errorf("upload authorization failed: %w", err)
	}

	return models.PresignedURLResponse{
		UploadURL: uploadURL,
		PublicURL: s.publicURL(key),
		Key:       key,
	}, nil
}

// ConfirmUpload debits the verified object size. A key pointing into
// another user's namespace is rejected before any store round-trip; a
// missing or zero-length object confirms nothing.
func (s *storageService) ConfirmUpload(ctx context.Context, userID, key string) (int64, error) {
	log := logger.FromContext(ctx)

	if err := s.checkKeyOwnership(userID, key); err != nil {
		log.Error().Str("userID", userID).Str("key", key).Msg("confirm on foreign or malformed key")
		return 0, err
	}

	size, err := s.objectStore.Head(ctx, key)
	if err != nil {
		log.Err(err).Str("key", key).Msg("object verification failed")
		return 0, fmt.Errorf("object verification failed: %w", err)
	}
	if size == 0 {
		log.Error().Str("key", key).Msg("confirm on empty object")
		return 0, fmt.Errorf("object verification failed: %w", objectstore.ErrObjectNotFound)
	}

	if _, err = s.userRepository.DebitStorage(ctx, userID, size); err != nil {
		log.Err(err).Str("userID", userID).Int64("size", size).Msg("quota debit failed")
		return 0, fmt.Errorf("quota debit failed: %w", err)
	}

	return size, nil
}

// DeleteObject removes the object and refunds its recorded size, clamped at
// zero by the database.
func (s *storageService) DeleteObject(ctx context.Context, userID, key string) (int64, error) {
	log := logger.FromContext(ctx)

	if err := s.checkKeyOwnership(userID, key); err != nil {
		log.Error().Str("userID", userID).Str("key", key).Msg("delete on foreign or malformed key")
		return 0, err
	}

	size, err := s.objectStore.Head(ctx, key)
	if err != nil {
		log.Err(err).Str("key", key).Msg("object lookup failed")
		return 0, fmt.Errorf("object lookup failed: %w", err)
	}

	if err = s.objectStore.Delete(ctx, key); err != nil {
		log.Err(err).Str("key", key).Msg("object deletion failed")
		return 0, fmt.Errorf("object deletion failed: %w", err)
	}

	if _, err = s.userRepository.RefundStorage(ctx, userID, size); err != nil {
		log.Err(err).Str("userID", userID).Int64("size", size).Msg("quota refund failed")
		return 0, fmt.Errorf("quota refund failed: %w", err)
	}

	return size, nil
}

// List returns the caller's objects together with the quota snapshot. A
// supplied prefix must stay inside the caller's own key namespace.
func (s *storageService) List(ctx context.Context, userID, prefix string) ([]models.StorageObject, models.StorageUsage, error) {
	log := logger.FromContext(ctx)

	effective := prefix
	if effective == "" {
		effective = userID + "/"
	} else if effective != userID && !strings.HasPrefix(effective, userID+"/") {
		log.Error().Str("userID", userID).Str("prefix", prefix).Msg("listing outside own namespace")
		return nil, models.StorageUsage{}, ErrForeignStorageKey
	}

	objects, err := s.objectStore.List(ctx, effective)
	if err != nil {
		log.Err(err).Str("prefix", effective).Msg("object listing failed")
		return nil, models.StorageUsage{}, fmt.Errorf("object listing failed: %w", err)
	}
	for i := range objects {
		objects[i].URL = s.publicURL(objects[i].Key)
	}

	user, err := s.userRepository.GetUser(ctx, userID)
	if err != nil {
		log.Err(err).Str("userID", userID).Msg("user lookup failed")
		return nil, models.StorageUsage{}, fmt.Errorf("user lookup failed: %w", err)
	}

	return objects, models.StorageUsage{Used: user.UsedStorage, Assigned: user.AssignedStorage}, nil
}

func (s *storageService) checkKeyOwnership(userID, key string) error {
	owner, err := utils.StorageKeyOwner(key)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	if owner != userID {
		return ErrForeignStorageKey
	}

	return nil
}

func (s *storageService) publicURL(key string) string {
	return strings.TrimSuffix(s.cfg.PublicBaseURL, "/") + "/" + key
}
