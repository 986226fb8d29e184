package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvoronin/inkwell/internal/config"
	"github.com/nvoronin/inkwell/internal/logger"
	"github.com/nvoronin/inkwell/internal/objectstore"
	"github.com/nvoronin/inkwell/internal/store"
	"github.com/nvoronin/inkwell/models"
)

// ─────────────────────────────────────────────
// fakes
// ─────────────────────────────────────────────

type fakeUserRepository struct {
	user   models.User
	getErr error

	debited  []int64
	refunded []int64
}

func (f *fakeUserRepository) CreateUser(_ context.Context, user models.User) (models.User, error) {
	if user.UserID == "" {
		user.UserID = "user-new"
	}
	f.user = user
	return user, nil
}

func (f *fakeUserRepository) FindUserByLogin(_ context.Context, _ string) (models.User, error) {
	if f.getErr != nil {
		return models.User{}, f.getErr
	}
	return f.user, nil
}

func (f *fakeUserRepository) GetUser(_ context.Context, _ string) (models.User, error) {
	if f.getErr != nil {
		return models.User{}, f.getErr
	}
	return f.user, nil
}

func (f *fakeUserRepository) DebitStorage(_ context.Context, _ string, n int64) (models.User, error) {
	f.debited = append(f.debited, n)
	f.user.UsedStorage += n
	return f.user, nil
}

func (f *fakeUserRepository) RefundStorage(_ context.Context, _ string, n int64) (models.User, error) {
	f.refunded = append(f.refunded, n)
	if f.user.UsedStorage -= n; f.user.UsedStorage < 0 {
		f.user.UsedStorage = 0
	}
	return f.user, nil
}

func newStorageServiceWithFakes(user models.User) (StorageService, *fakeUserRepository, *objectstore.MemoryStore) {
	users := &fakeUserRepository{user: user}
	objects := objectstore.NewMemoryStore()

	cfg := config.S3Config{
		Bucket:        "inkwell-test",
		PublicBaseURL: "https://cdn.example.com/",
		PresignTTL:    5 * time.Minute,
	}

	return NewStorageService(users, objects, cfg, logger.Nop()), users, objects
}

// ─────────────────────────────────────────────
// AuthorizeUpload
// ─────────────────────────────────────────────

func TestAuthorizeUpload_Success(t *testing.T) {
	svc, _, _ := newStorageServiceWithFakes(models.User{UserID: "user-1", UsedStorage: 0, AssignedStorage: 1000})

	resp, err := svc.AuthorizeUpload(context.Background(), "user-1", models.PresignedURLRequest{
		Filename:    "photo.png",
		ContentType: "image/png",
		Size:        500,
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(resp.Key, "user-1/images/"), "key %q must live in the caller's namespace", resp.Key)
	assert.True(t, strings.HasSuffix(resp.Key, ".png"))
	assert.NotEmpty(t, resp.UploadURL)
	assert.Equal(t, "https://cdn.example.com/"+resp.Key, resp.PublicURL)
}

func TestAuthorizeUpload_ExactFitAllowed(t *testing.T) {
	svc, _, _ := newStorageServiceWithFakes(models.User{UserID: "user-1", UsedStorage: 400, AssignedStorage: 1000})

	// 400 + 600 == 1000: filling the quota exactly is fine.
	_, err := svc.AuthorizeUpload(context.Background(), "user-1", models.PresignedURLRequest{
		Filename:    "clip.mp4",
		ContentType: "video/mp4",
		Size:        600,
	})
	assert.NoError(t, err)
}

func TestAuthorizeUpload_QuotaExceeded(t *testing.T) {
	svc, _, _ := newStorageServiceWithFakes(models.User{UserID: "user-1", UsedStorage: 400, AssignedStorage: 1000})

	_, err := svc.AuthorizeUpload(context.Background(), "user-1", models.PresignedURLRequest{
		Filename:    "clip.mp4",
		ContentType: "video/mp4",
		Size:        601,
	})
	require.ErrorIs(t, err, ErrQuotaExceeded)

	var quotaErr *QuotaError
	require.ErrorAs(t, err, &quotaErr)
	assert.Equal(t, int64(400), quotaErr.Used)
	assert.Equal(t, int64(1000), quotaErr.Assigned)
	assert.Equal(t, int64(601), quotaErr.Required)
}

func TestAuthorizeUpload_InvalidRequest(t *testing.T) {
	svc, _, _ := newStorageServiceWithFakes(models.User{UserID: "user-1", AssignedStorage: 1000})

	for _, req := range []models.PresignedURLRequest{
		{ContentType: "image/png", Size: 1},
		{Filename: "a.png", Size: 1},
		{Filename: "a.png", ContentType: "image/png", Size: 0},
		{Filename: "a.png", ContentType: "image/png", Size: -5},
	} {
		_, err := svc.AuthorizeUpload(context.Background(), "user-1", req)
		assert.ErrorIs(t, err, ErrInvalidDataProvided, "request %+v", req)
	}
}

// ─────────────────────────────────────────────
// ConfirmUpload
// ─────────────────────────────────────────────

func TestConfirmUpload_DebitsVerifiedSize(t *testing.T) {
	svc, users, objects := newStorageServiceWithFakes(models.User{UserID: "user-1", AssignedStorage: 10000})

	// The client declared 100 bytes at authorization time but actually
	// uploaded 5000; the debit must use the store's number.
	objects.Put("user-1/images/a.png", 5000)

	size, err := svc.ConfirmUpload(context.Background(), "user-1", "user-1/images/a.png")
	require.NoError(t, err)
	assert.Equal(t, int64(5000), size)
	assert.Equal(t, []int64{5000}, users.debited)
}

func TestConfirmUpload_MissingObject(t *testing.T) {
	svc, users, _ := newStorageServiceWithFakes(models.User{UserID: "user-1", AssignedStorage: 10000})

	_, err := svc.ConfirmUpload(context.Background(), "user-1", "user-1/images/never-uploaded.png")
	assert.ErrorIs(t, err, objectstore.ErrObjectNotFound)
	assert.Empty(t, users.debited)
}

func TestConfirmUpload_EmptyObject(t *testing.T) {
	svc, users, objects := newStorageServiceWithFakes(models.User{UserID: "user-1", AssignedStorage: 10000})

	objects.Put("user-1/images/empty.png", 0)

	_, err := svc.ConfirmUpload(context.Background(), "user-1", "user-1/images/empty.png")
	assert.ErrorIs(t, err, objectstore.ErrObjectNotFound)
	assert.Empty(t, users.debited)
}

func TestConfirmUpload_ForeignKey(t *testing.T) {
	svc, users, objects := newStorageServiceWithFakes(models.User{UserID: "user-1", AssignedStorage: 10000})

	objects.Put("user-2/images/theirs.png", 100)

	_, err := svc.ConfirmUpload(context.Background(), "user-1", "user-2/images/theirs.png")
	assert.ErrorIs(t, err, ErrForeignStorageKey)
	assert.Empty(t, users.debited)
}

func TestConfirmUpload_MalformedKey(t *testing.T) {
	svc, _, _ := newStorageServiceWithFakes(models.User{UserID: "user-1", AssignedStorage: 10000})

	_, err := svc.ConfirmUpload(context.Background(), "user-1", "not-a-key")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

// ─────────────────────────────────────────────
// DeleteObject
// ─────────────────────────────────────────────

func TestDeleteObject_RefundsRecordedSize(t *testing.T) {
	svc, users, objects := newStorageServiceWithFakes(models.User{UserID: "user-1", UsedStorage: 5000, AssignedStorage: 10000})

	objects.Put("user-1/docs/report.pdf", 3000)

	refunded, err := svc.DeleteObject(context.Background(), "user-1", "user-1/docs/report.pdf")
	require.NoError(t, err)
	assert.Equal(t, int64(3000), refunded)
	assert.Equal(t, []int64{3000}, users.refunded)

	_, err = objects.Head(context.Background(), "user-1/docs/report.pdf")
	assert.ErrorIs(t, err, objectstore.ErrObjectNotFound)
}

func TestDeleteObject_ForeignKey(t *testing.T) {
	svc, users, objects := newStorageServiceWithFakes(models.User{UserID: "user-1", AssignedStorage: 10000})

	objects.Put("user-2/docs/theirs.pdf", 100)

	_, err := svc.DeleteObject(context.Background(), "user-1", "user-2/docs/theirs.pdf")
	assert.ErrorIs(t, err, ErrForeignStorageKey)
	assert.Empty(t, users.refunded)

	// The object itself must survive.
	size, err := objects.Head(context.Background(), "user-2/docs/theirs.pdf")
	require.NoError(t, err)
	assert.Equal(t, int64(100), size)
}

// ─────────────────────────────────────────────
// List
// ─────────────────────────────────────────────

func TestListStorage_DefaultsToOwnNamespace(t *testing.T) {
	svc, _, objects := newStorageServiceWithFakes(models.User{UserID: "user-1", UsedStorage: 300, AssignedStorage: 1000})

	objects.Put("user-1/images/a.png", 100)
	objects.Put("user-1/docs/b.pdf", 200)
	objects.Put("user-2/images/c.png", 999)

	list, usage, err := svc.List(context.Background(), "user-1", "")
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, obj := range list {
		assert.True(t, strings.HasPrefix(obj.Key, "user-1/"))
		assert.Equal(t, "https://cdn.example.com/"+obj.Key, obj.URL)
	}
	assert.Equal(t, models.StorageUsage{Used: 300, Assigned: 1000}, usage)
}

func TestListStorage_PrefixMustStayInNamespace(t *testing.T) {
	svc, _, _ := newStorageServiceWithFakes(models.User{UserID: "user-1", AssignedStorage: 1000})

	_, _, err := svc.List(context.Background(), "user-1", "user-2/")
	assert.ErrorIs(t, err, ErrForeignStorageKey)

	_, _, err = svc.List(context.Background(), "user-1", "user-1/images/")
	assert.NoError(t, err)
}

func TestListStorage_UserLookupFailure(t *testing.T) {
	users := &fakeUserRepository{getErr: store.ErrNoUserWasFound}
	svc := NewStorageService(users, objectstore.NewMemoryStore(), config.S3Config{PublicBaseURL: "https://cdn"}, logger.Nop())

	_, _, err := svc.List(context.Background(), "ghost", "")
	assert.True(t, errors.Is(err, store.ErrNoUserWasFound))
}
