package shopping

import (
	"fmt"
	"io"
	"testing"

	"github.com/google/uuid"
	sqlitedriver "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	ingredient "github.com/lmarchal/grocerly-backend/internal/ingredients"
	recipe "github.com/lmarchal/grocerly-backend/internal/recipes"
	"github.com/lmarchal/grocerly-backend/pkg/db"
	"github.com/lmarchal/grocerly-backend/pkg/db/models"
	"github.com/lmarchal/grocerly-backend/pkg/enums"
	"github.com/lmarchal/grocerly-backend/pkg/logger"
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
	logg := logger.New(logger.Options{ServiceName: "shopping-test", Output: io.Discard})
	svc, err := NewService(
		NewRepository(conn),
		db.NewFromConn(conn),
		recipe.NewRepository(conn),
		ingredient.NewRepository(conn),
		logg,
	)
	if err != nil {
		t.Fatalf("failed to build shopping service: %v", err)
	}
	return &testEnv{conn: conn, service: svc}
}

func mustCreateIngredient(t *testing.T, conn *gorm.DB, name string, category enums.IngredientCategory) *models.Ingredient {
	t.Helper()
	ingredient := &models.Ingredient{ID: uuid.New(), Name: name, Category: category}
	if err := conn.Create(ingredient).Error; err != nil {
		t.Fatalf("create ingredient: %v", err)
	}
	return ingredient
}

func mustCreateRecipe(t *testing.T, conn *gorm.DB, name string, requirements []models.RecipeRequirement) *models.Recipe {
	t.Helper()
	rec := &models.Recipe{
		ID:         uuid.New(),
		Name:       name,
		Season:     enums.SeasonAllYear,
		Difficulty: enums.DifficultyMedium,
		Servings:   2,
	}
	if err := conn.Create(rec).Error; err != nil {
		t.Fatalf("create recipe: %v", err)
	}
	for i := range requirements {
		requirements[i].RecipeID = rec.ID
	}
	if len(requirements) > 0 {
		if err := conn.Create(&requirements).Error; err != nil {
			t.Fatalf("create requirements: %v", err)
		}
	}
	return rec
}
