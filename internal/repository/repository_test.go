package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"reviewhub/internal/db"
	"reviewhub/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gormDB, err := db.Open(db.Options{Driver: db.DriverSQLite, DSN: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB))
	t.Cleanup(func() {
		if sqlDB, err := gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gormDB
}

func createUser(t *testing.T, repo UserRepository, email string, role model.Role) *model.User {
	t.Helper()
	u := &model.User{Name: email, Email: email, PasswordHash: "x", Role: role, Enabled: true}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	alice := createUser(t, repo, "alice@example.com", model.RoleCustomer)
	bob := createUser(t, repo, "bob@example.com", model.RoleOwner)
	assert.NotEqual(t, uuid.Nil, alice.PublicID)

	got, err := repo.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, alice.PublicID, got.PublicID)

	_, err = repo.FindByPublicID(ctx, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	owners, err := repo.ListByRole(ctx, model.RoleOwner)
	require.NoError(t, err)
	require.Len(t, owners, 1)
	assert.Equal(t, bob.PublicID, owners[0].PublicID)

	require.NoError(t, repo.UpdateRole(ctx, alice.PublicID, model.RoleOwner))
	locked, err := repo.FindByPublicIDForUpdate(ctx, alice.PublicID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleOwner, locked.Role)
	assert.ErrorIs(t, repo.UpdateRole(ctx, uuid.New(), model.RoleOwner), gorm.ErrRecordNotFound)

	require.NoError(t, repo.SetEnabled(ctx, bob.PublicID, false))
	got, err = repo.FindByPublicID(ctx, bob.PublicID)
	require.NoError(t, err)
	assert.False(t, got.Enabled)

	many, err := repo.FindByPublicIDs(ctx, []uuid.UUID{alice.PublicID, bob.PublicID, uuid.New()})
	require.NoError(t, err)
	assert.Len(t, many, 2)
	none, err := repo.FindByPublicIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUserRepository_DuplicateEmailRejectedByIndex(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	createUser(t, repo, "dup@example.com", model.RoleCustomer)

	err := repo.Create(context.Background(), &model.User{Name: "x", Email: "dup@example.com", PasswordHash: "x", Enabled: true})
	assert.Error(t, err)
}

func TestUserRepository_RejectsUnknownRole(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	err := repo.Create(ctx, &model.User{Name: "Eve", Email: "eve@example.com", PasswordHash: "x", Role: "superuser"})
	assert.Error(t, err)
	_, err = repo.FindByEmail(ctx, "eve@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	alice := createUser(t, repo, "alice@example.com", "")
	assert.Equal(t, model.RoleCustomer, alice.Role)
	assert.Error(t, repo.UpdateRole(ctx, alice.PublicID, "superuser"))

	got, err := repo.FindByPublicID(ctx, alice.PublicID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleCustomer, got.Role)
}

func TestRestaurantRepository(t *testing.T) {
	ctx := context.Background()
	gormDB := newTestDB(t)
	users := NewUserRepository(gormDB)
	repo := NewRestaurantRepository(gormDB)

	owner := createUser(t, users, "owner@example.com", model.RoleOwner)
	r := &model.Restaurant{
		Name:          "Saffron",
		Address:       "1 Main St",
		AvgCost:       decimal.RequireFromString("24.50"),
		OwnerPublicID: uuid.NullUUID{UUID: owner.PublicID, Valid: true},
	}
	require.NoError(t, repo.Create(ctx, r))

	got, err := repo.FindByPublicID(ctx, r.PublicID)
	require.NoError(t, err)
	assert.True(t, got.AvgCost.Equal(decimal.RequireFromString("24.50")))
	assert.True(t, got.OwnedBy(owner.PublicID))

	byOwner, err := repo.FindByOwner(ctx, owner.PublicID)
	require.NoError(t, err)
	assert.Equal(t, r.PublicID, byOwner.PublicID)

	second := &model.Restaurant{Name: "Other", Address: "2 Main St", OwnerPublicID: uuid.NullUUID{UUID: owner.PublicID, Valid: true}}
	assert.Error(t, repo.Create(ctx, second), "one restaurant per owner")

	unowned := &model.Restaurant{Name: "Abacus", Address: "3 Main St"}
	require.NoError(t, repo.Create(ctx, unowned))
	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Abacus", list[0].Name)
	assert.False(t, list[0].OwnerPublicID.Valid)

	require.NoError(t, repo.Delete(ctx, r.PublicID))
	assert.ErrorIs(t, repo.Delete(ctx, r.PublicID), gorm.ErrRecordNotFound)
	_, err = repo.FindByPublicIDForUpdate(ctx, r.PublicID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestReviewRepository_ReplyFlagIsMonotonic(t *testing.T) {
	ctx := context.Background()
	repo := NewReviewRepository(newTestDB(t))
	restaurantID := uuid.New()

	rev := &model.Review{Text: "great food", PostedAt: time.Now(), AuthorPublicID: uuid.New(), RestaurantPublicID: restaurantID}
	require.NoError(t, repo.Create(ctx, rev))

	edited, err := repo.EditAnswer(ctx, rev.ID, "too early", time.Now())
	require.NoError(t, err)
	assert.False(t, edited, "cannot edit before the first answer")

	posted, err := repo.MarkAnswered(ctx, rev.ID, "thanks!", time.Now())
	require.NoError(t, err)
	assert.True(t, posted)

	posted, err = repo.MarkAnswered(ctx, rev.ID, "again", time.Now())
	require.NoError(t, err)
	assert.False(t, posted)

	edited, err = repo.EditAnswer(ctx, rev.ID, "thanks again!", time.Now())
	require.NoError(t, err)
	assert.True(t, edited)

	got, err := repo.FindByID(ctx, rev.ID)
	require.NoError(t, err)
	assert.True(t, got.IsReplied)
	require.NotNil(t, got.ResponseText)
	assert.Equal(t, "thanks again!", *got.ResponseText)
	assert.NotNil(t, got.RespondedAt)
}

func TestReviewRepository_ConcurrentFirstAnswer(t *testing.T) {
	ctx := context.Background()
	repo := NewReviewRepository(newTestDB(t))
	rev := &model.Review{Text: "ok", PostedAt: time.Now(), AuthorPublicID: uuid.New(), RestaurantPublicID: uuid.New()}
	require.NoError(t, repo.Create(ctx, rev))

	const writers = 8
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		flips int
	)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := repo.MarkAnswered(ctx, rev.ID, "reply", time.Now())
			assert.NoError(t, err)
			if ok {
				mu.Lock()
				flips++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, flips)
}

func TestReviewRepository_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewReviewRepository(newTestDB(t))
	restaurantID := uuid.New()
	base := time.Now().Add(-time.Hour)

	for i, text := range []string{"first", "second", "third"} {
		require.NoError(t, repo.Create(ctx, &model.Review{
			Text: text, PostedAt: base.Add(time.Duration(i) * time.Minute),
			AuthorPublicID: uuid.New(), RestaurantPublicID: restaurantID,
		}))
	}
	other := &model.Review{Text: "elsewhere", PostedAt: base, AuthorPublicID: uuid.New(), RestaurantPublicID: uuid.New()}
	require.NoError(t, repo.Create(ctx, other))

	list, err := repo.ListByRestaurant(ctx, restaurantID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "third", list[0].Text)

	require.NoError(t, repo.Delete(ctx, list[0].ID))
	assert.ErrorIs(t, repo.Delete(ctx, list[0].ID), gorm.ErrRecordNotFound)

	n, err := repo.DeleteByRestaurant(ctx, restaurantID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, err = repo.FindByID(ctx, other.ID)
	assert.NoError(t, err)
}

func TestResponseTemplateRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewResponseTemplateRepository(newTestDB(t))

	for _, tmpl := range []model.ResponseTemplate{
		{Text: "Thank you!", SentimentScore: 4},
		{Text: "Sorry to hear that.", SentimentScore: -3},
		{Text: "Glad you liked it.", SentimentScore: 4},
	} {
		tmpl := tmpl
		require.NoError(t, repo.Create(ctx, &tmpl))
	}

	all, err := repo.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, 4, all[0].SentimentScore)

	score := -3
	neg, err := repo.List(ctx, &score)
	require.NoError(t, err)
	require.Len(t, neg, 1)
	assert.Equal(t, "Sorry to hear that.", neg[0].Text)

	byText, err := repo.FindByText(ctx, "Thank you!")
	require.NoError(t, err)
	got, err := repo.FindByID(ctx, byText.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, got.SentimentScore)
}

func TestUnitOfWork_RollsBackEveryRepository(t *testing.T) {
	ctx := context.Background()
	gormDB := newTestDB(t)
	users := NewUserRepository(gormDB)
	restaurants := NewRestaurantRepository(gormDB)
	uow := NewUnitOfWork(gormDB)

	u := createUser(t, users, "tx@example.com", model.RoleCustomer)
	boom := errors.New("boom")

	err := uow.WithTransaction(ctx, func(ctx context.Context, repos Repositories) error {
		if err := repos.Users.UpdateRole(ctx, u.PublicID, model.RoleOwner); err != nil {
			return err
		}
		if err := repos.Restaurants.Create(ctx, &model.Restaurant{Name: "X", Address: "Y",
			OwnerPublicID: uuid.NullUUID{UUID: u.PublicID, Valid: true}}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := users.FindByPublicID(ctx, u.PublicID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleCustomer, got.Role)
	list, err := restaurants.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
