package recipe

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	sqlitedriver "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/lmarchal/grocerly-backend/pkg/db"
	"github.com/lmarchal/grocerly-backend/pkg/db/models"
	"github.com/lmarchal/grocerly-backend/pkg/enums"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", uuid.NewString())
	conn, err := gorm.Open(sqlitedriver.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := conn.AutoMigrate(
		&models.Ingredient{},
		&models.Recipe{},
		&models.RecipeRequirement{},
		&models.ShoppingList{},
		&models.ShoppingListItem{},
	); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return conn
}

type testEnv struct {
	conn    *gorm.DB
	service Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	conn := openTestDB(t)
	svc, err := NewService(NewRepository(conn), db.NewFromConn(conn), ingredientRepo{conn: conn})
	if err != nil {
		t.Fatalf("failed to build recipe service: %v", err)
	}
	return &testEnv{conn: conn, service: svc}
}

// ingredientRepo is a thin test double backed by the same sqlite connection.
type ingredientRepo struct {
	conn *gorm.DB
}

func (r ingredientRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Ingredient, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var ingredients []models.Ingredient
	if err := r.conn.WithContext(ctx).Where("id IN ?", ids).Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func mustCreateIngredient(t *testing.T, conn *gorm.DB, name string, category enums.IngredientCategory) *models.Ingredient {
	t.Helper()
	ingredient := &models.Ingredient{ID: uuid.New(), Name: name, Category: category}
	if err := conn.Create(ingredient).Error; err != nil {
		t.Fatalf("create ingredient: %v", err)
	}
	return ingredient
}
