package main

import (
	"fmt"

	"github.com/littlelemon-next/internal/config"
	"github.com/littlelemon-next/internal/logger"
	"github.com/littlelemon-next/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加分类
	categories := []models.Category{
		{Slug: "appetizers", Title: "Appetizers", SortOrder: 400},
		{Slug: "mains", Title: "Main Courses", SortOrder: 300},
		{Slug: "desserts", Title: "Desserts", SortOrder: 200},
		{Slug: "drinks", Title: "Drinks", SortOrder: 100},
	}

	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Slug, err)
			} else {
				stdLog.Printf("Created category: %s", cat.Slug)
			}
		} else {
			stdLog.Printf("Category already exists: %s", cat.Slug)
		}
	}

	// 获取分类ID
	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := models.DB.Find(&categoryList).Error; err != nil {
		stdLog.Printf("Failed to load categories: %v", err)
	}
	for _, cat := range categoryList {
		categoryIDs[cat.Slug] = cat.ID
	}

	// 添加菜品
	menuItems := []models.MenuItem{
		{
			CategoryID:  categoryIDs["appetizers"],
			Title:       "Bruschetta",
			Description: "Grilled bread topped with tomatoes, garlic and fresh basil",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(7.50)),
			SortOrder:   400,
			IsActive:    true,
		},
		{
			CategoryID:  categoryIDs["appetizers"],
			Title:       "Greek Salad",
			Description: "Crispy lettuce, peppers, olives and feta cheese with house dressing",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(9.90)),
			SortOrder:   390,
			IsActive:    true,
		},
		{
			CategoryID:  categoryIDs["mains"],
			Title:       "Lemon Herb Chicken",
			Description: "Roasted chicken breast with lemon butter sauce and seasonal vegetables",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(18.00)),
			Featured:    true,
			SortOrder:   300,
			IsActive:    true,
		},
		{
			CategoryID:  categoryIDs["mains"],
			Title:       "Grilled Salmon",
			Description: "Atlantic salmon fillet with capers and charred lemon",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(21.50)),
			SortOrder:   290,
			IsActive:    true,
		},
		{
			CategoryID:  categoryIDs["mains"],
			Title:       "Pasta Primavera",
			Description: "Fresh pasta with garden vegetables in a light cream sauce",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(14.00)),
			SortOrder:   280,
			IsActive:    true,
		},
		{
			CategoryID:  categoryIDs["desserts"],
			Title:       "Lemon Tart",
			Description: "Classic lemon curd tart with torched meringue",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(6.50)),
			SortOrder:   200,
			IsActive:    true,
		},
		{
			CategoryID:  categoryIDs["desserts"],
			Title:       "Tiramisu",
			Description: "Espresso-soaked ladyfingers with mascarpone cream",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(7.00)),
			SortOrder:   190,
			IsActive:    true,
		},
		{
			CategoryID:  categoryIDs["drinks"],
			Title:       "Fresh Lemonade",
			Description: "House-squeezed lemonade with mint",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(3.50)),
			SortOrder:   100,
			IsActive:    true,
		},
		{
			CategoryID:  categoryIDs["drinks"],
			Title:       "Iced Tea",
			Description: "Cold-brewed black tea over ice",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(2.90)),
			SortOrder:   90,
			IsActive:    false,
		},
	}

	for _, item := range menuItems {
		if item.CategoryID == 0 {
			stdLog.Printf("Skip menu item %s: category_id missing", item.Title)
			continue
		}
		var existing models.MenuItem
		if err := models.DB.Where("title = ?", item.Title).First(&existing).Error; err != nil {
			if err := models.DB.Create(&item).Error; err != nil {
				stdLog.Printf("Failed to create menu item %s: %v", item.Title, err)
			} else {
				stdLog.Printf("Created menu item: %s", item.Title)
			}
		} else {
			existing.CategoryID = item.CategoryID
			existing.Description = item.Description
			existing.Price = item.Price
			existing.Featured = item.Featured
			existing.IsActive = item.IsActive
			existing.SortOrder = item.SortOrder
			if err := models.DB.Save(&existing).Error; err != nil {
				stdLog.Printf("Failed to update menu item %s: %v", item.Title, err)
			} else {
				stdLog.Printf("Updated menu item: %s", item.Title)
			}
		}
	}

	fmt.Println("\nSeed data created successfully!")
	fmt.Println("Summary:")
	fmt.Println("- 4 Categories")
	fmt.Println("- 9 Menu items (1 item of the day, 1 inactive)")
}
