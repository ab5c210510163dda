package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"reviewhub/internal/db"
	"reviewhub/internal/model"
	"reviewhub/internal/repository"
)

// fixture wires real repositories over an in-memory SQLite database.
type fixture struct {
	db          *gorm.DB
	users       repository.UserRepository
	restaurants repository.RestaurantRepository
	reviews     repository.ReviewRepository
	templates   repository.ResponseTemplateRepository
	uow         repository.UnitOfWork
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gormDB, err := db.Open(db.Options{Driver: db.DriverSQLite, DSN: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB))
	t.Cleanup(func() {
		if sqlDB, err := gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return &fixture{
		db:          gormDB,
		users:       repository.NewUserRepository(gormDB),
		restaurants: repository.NewRestaurantRepository(gormDB),
		reviews:     repository.NewReviewRepository(gormDB),
		templates:   repository.NewResponseTemplateRepository(gormDB),
		uow:         repository.NewUnitOfWork(gormDB),
	}
}

func (f *fixture) user(t *testing.T, email string, role model.Role) *model.User {
	t.Helper()
	u := &model.User{Name: email, Email: email, PasswordHash: "x", Role: role, Enabled: true}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func (f *fixture) reload(t *testing.T, u *model.User) *model.User {
	t.Helper()
	got, err := f.users.FindByPublicID(context.Background(), u.PublicID)
	require.NoError(t, err)
	return got
}

func (f *fixture) restaurantService() RestaurantService {
	return NewRestaurantService(f.uow, f.restaurants, nil, 0, nil)
}

func (f *fixture) reviewService() ReviewService {
	return NewReviewService(f.reviews, f.restaurants, f.users, f.templates, nil)
}

// failOn makes every create or delete against table fail, simulating a
// storage fault in the middle of a transaction.
func (f *fixture) failOn(t *testing.T, op, table string, err error) {
	t.Helper()
	fail := func(tx *gorm.DB) {
		if tx.Statement.Table == table {
			_ = tx.AddError(err)
		}
	}
	switch op {
	case "create":
		require.NoError(t, f.db.Callback().Create().Before("gorm:create").Register("test:fail_create", fail))
	case "delete":
		require.NoError(t, f.db.Callback().Delete().Before("gorm:delete").Register("test:fail_delete", fail))
	default:
		t.Fatalf("unknown op %q", op)
	}
}
