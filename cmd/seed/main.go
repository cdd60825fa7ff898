package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/greenharvest/greenharvest-backend/config"
	"github.com/greenharvest/greenharvest-backend/internal/app/model"
	"github.com/greenharvest/greenharvest-backend/internal/db"
	"github.com/greenharvest/greenharvest-backend/pkg/util"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// Catalog importer. Reads an XLSX where each row is one product listing
// together with its farm, and creates the users, farmers, categories and
// products it references. Expected columns:
//
//	A farm_name  B farm_location  C farm_description  D owner_email
//	E owner_name F category       G product_name      H description
//	I price      J unit           K stock             L image_url
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	rows, err := readRows(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total data rows: %d\n", len(rows))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	imported, skipped, err := importRows(db.GetDB(), rows)
	if err != nil {
		log.Fatal("Import failed:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("  Products imported: %d\n", imported)
	fmt.Printf("  Rows skipped: %d\n", skipped)
}

func readRows(filePath string) ([][]string, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("no data rows found in XLSX file")
	}

	// First row is the header
	return rows[1:], nil
}

func importRows(gdb *gorm.DB, rows [][]string) (imported, skipped int, err error) {
	farmers := make(map[string]*model.Farmer)    // keyed by owner email
	categories := make(map[string]*model.Category) // keyed by slug

	var products []model.Product

	for i, row := range rows {
		if len(row) < 11 {
			skipped++
			continue
		}

		farmName := strings.TrimSpace(row[0])
		farmLocation := strings.TrimSpace(row[1])
		farmDescription := strings.TrimSpace(row[2])
		ownerEmail := strings.ToLower(strings.TrimSpace(row[3]))
		ownerName := strings.TrimSpace(row[4])
		categoryName := strings.TrimSpace(row[5])
		productName := strings.TrimSpace(row[6])
		description := strings.TrimSpace(row[7])
		priceStr := strings.TrimSpace(row[8])
		unit := strings.TrimSpace(row[9])
		stockStr := strings.TrimSpace(row[10])
		imageURL := ""
		if len(row) > 11 {
			imageURL = strings.TrimSpace(row[11])
		}

		if farmName == "" || ownerEmail == "" || productName == "" {
			skipped++
			continue
		}

		price, errPrice := strconv.ParseFloat(priceStr, 64)
		if errPrice != nil || price <= 0 {
			skipped++
			continue
		}

		stock, errStock := strconv.Atoi(stockStr)
		if errStock != nil || stock < 0 {
			stock = 0
		}
		if unit == "" {
			unit = "kg"
		}

		farmer, ok := farmers[ownerEmail]
		if !ok {
			farmer, err = ensureFarmer(gdb, ownerEmail, ownerName, farmName, farmDescription, farmLocation)
			if err != nil {
				return imported, skipped, fmt.Errorf("row %d: %w", i+2, err)
			}
			farmers[ownerEmail] = farmer
		}

		var categoryID *uint
		if categoryName != "" {
			slug := util.Slugify(categoryName)
			category, ok := categories[slug]
			if !ok {
				category, err = ensureCategory(gdb, categoryName, slug)
				if err != nil {
					return imported, skipped, fmt.Errorf("row %d: %w", i+2, err)
				}
				categories[slug] = category
			}
			categoryID = &category.ID
		}

		products = append(products, model.Product{
			Name:          productName,
			Description:   description,
			Price:         price,
			Unit:          unit,
			ImageURL:      imageURL,
			StockQuantity: stock,
			IsAvailable:   stock > 0,
			CategoryID:    categoryID,
			FarmerID:      farmer.ID,
		})
	}

	if len(products) == 0 {
		return 0, skipped, nil
	}

	if err := gdb.CreateInBatches(products, 500).Error; err != nil {
		return 0, skipped, fmt.Errorf("failed to bulk create products: %w", err)
	}

	return len(products), skipped, nil
}

// ensureFarmer finds or creates the owner account and its approved
// farmer profile. Seed accounts get a placeholder password and must
// reset it before first login.
func ensureFarmer(gdb *gorm.DB, email, name, farmName, farmDescription, farmLocation string) (*model.Farmer, error) {
	var user model.User
	err := gdb.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		hash, hashErr := util.HashPassword("changeme-" + email)
		if hashErr != nil {
			return nil, hashErr
		}
		user = model.User{
			Email:        email,
			PasswordHash: hash,
			FullName:     name,
			Role:         model.RoleFarmer,
		}
		if err := gdb.Create(&user).Error; err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	var farmer model.Farmer
	err = gdb.Where("user_id = ?", user.ID).First(&farmer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		farmer = model.Farmer{
			UserID:          user.ID,
			FarmName:        farmName,
			FarmDescription: farmDescription,
			FarmLocation:    farmLocation,
			Status:          model.FarmerStatusApproved,
		}
		if err := gdb.Create(&farmer).Error; err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	return &farmer, nil
}

func ensureCategory(gdb *gorm.DB, name, slug string) (*model.Category, error) {
	var category model.Category
	err := gdb.Where("slug = ?", slug).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		category = model.Category{Name: name, Slug: slug}
		if err := gdb.Create(&category).Error; err != nil {
			return nil, err
		}
		return &category, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}
