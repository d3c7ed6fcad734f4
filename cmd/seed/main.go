// Command seed populates the catalog with sample products and ensures the
// default admin account exists. Safe to run repeatedly.
package main

import (
	"context"
	"errors"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/devilal/catalog-api/internal/core/domain"
	"github.com/devilal/catalog-api/internal/core/ports"
	mongodb "github.com/devilal/catalog-api/internal/infrastructure/db/mongo"
	"github.com/devilal/catalog-api/internal/pkg/config"
	"github.com/devilal/catalog-api/pkg/logger"
)

const (
	adminName     = "Admin User"
	adminEmail    = "admin@devilal.com"
	adminPassword = "admin123"
)

var sampleProducts = []domain.Product{
	{
		Name:          "Modern Sectional Sofa",
		Description:   "Comfortable and stylish sectional sofa perfect for modern living rooms",
		Price:         899,
		OriginalPrice: 1299,
		Category:      domain.CategoryFurniture,
		Brand:         "ComfortLiving",
		Image:         "https://images.unsplash.com/photo-1555041469-a586c61ea9bc?w=400&h=400&fit=crop",
		InStock:       true,
		Featured:      true,
		Rating:        4.5,
		Reviews:       89,
	},
	{
		Name:          "Oak Dining Table",
		Description:   "Solid oak dining table that seats 6 people comfortably",
		Price:         649,
		OriginalPrice: 849,
		Category:      domain.CategoryFurniture,
		Brand:         "WoodCraft",
		Image:         "https://images.unsplash.com/photo-1449247709967-d4461a6a6103?w=400&h=400&fit=crop",
		InStock:       true,
		Featured:      true,
		Rating:        4.8,
		Reviews:       156,
	},
	{
		Name:          "Minimalist Floor Lamp",
		Description:   "Sleek and modern floor lamp with adjustable brightness",
		Price:         129,
		OriginalPrice: 179,
		Category:      domain.CategoryLighting,
		Brand:         "LightDesign",
		Image:         "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=400&h=400&fit=crop",
		InStock:       true,
		Rating:        4.2,
		Reviews:       43,
	},
	{
		Name:          "Vintage Armchair",
		Description:   "Classic vintage-style armchair with premium leather upholstery",
		Price:         459,
		OriginalPrice: 599,
		Category:      domain.CategoryFurniture,
		Brand:         "RetroStyle",
		Image:         "https://images.unsplash.com/photo-1586023492125-27b2c045efd7?w=400&h=400&fit=crop",
		InStock:       true,
		Featured:      true,
		Rating:        4.6,
		Reviews:       78,
	},
	{
		Name:          "Ceramic Table Vase",
		Description:   "Handcrafted ceramic vase perfect for fresh flowers or dried arrangements",
		Price:         39,
		OriginalPrice: 59,
		Category:      domain.CategoryDecor,
		Brand:         "ArtisanCraft",
		Image:         "https://images.unsplash.com/photo-1578662996442-48f60103fc96?w=400&h=400&fit=crop",
		InStock:       true,
		Rating:        4.3,
		Reviews:       92,
	},
	{
		Name:          "Industrial Bookshelf",
		Description:   "Metal and wood bookshelf with industrial design aesthetic",
		Price:         299,
		OriginalPrice: 399,
		Category:      domain.CategoryStorage,
		Brand:         "UrbanLoft",
		Image:         "https://images.unsplash.com/photo-1594736797933-d0401ba2fe65?w=400&h=400&fit=crop",
		InStock:       true,
		Rating:        4.4,
		Reviews:       67,
	},
	{
		Name:          "Pendant Light Set",
		Description:   "Set of 3 matching pendant lights for kitchen or dining area",
		Price:         189,
		OriginalPrice: 249,
		Category:      domain.CategoryLighting,
		Brand:         "ModernLights",
		Image:         "https://images.unsplash.com/photo-1524484485831-a92ffc0de03f?w=400&h=400&fit=crop",
		InStock:       true,
		Featured:      true,
		Rating:        4.7,
		Reviews:       134,
	},
	{
		Name:          "Wool Area Rug",
		Description:   "Hand-woven wool area rug with geometric pattern",
		Price:         219,
		OriginalPrice: 319,
		Category:      domain.CategoryTextiles,
		Brand:         "WeaveMasters",
		Image:         "https://images.unsplash.com/photo-1586023492125-27b2c045efd7?w=400&h=400&fit=crop",
		InStock:       true,
		Rating:        4.1,
		Reviews:       28,
	},
	{
		Name:          "Coffee Table",
		Description:   "Glass top coffee table with modern metal legs",
		Price:         329,
		OriginalPrice: 429,
		Category:      domain.CategoryFurniture,
		Brand:         "GlassDesign",
		Image:         "https://images.unsplash.com/photo-1586023492125-27b2c045efd7?w=400&h=400&fit=crop",
		InStock:       true,
		Rating:        4.0,
		Reviews:       51,
	},
	{
		Name:          "Wall Mirror",
		Description:   "Large decorative wall mirror with ornate frame",
		Price:         159,
		OriginalPrice: 219,
		Category:      domain.CategoryDecor,
		Brand:         "ReflectStyle",
		Image:         "https://images.unsplash.com/photo-1586023492125-27b2c045efd7?w=400&h=400&fit=crop",
		InStock:       true,
		Featured:      true,
		Rating:        4.5,
		Reviews:       73,
	},
	{
		Name:          "Storage Ottoman",
		Description:   "Multi-functional storage ottoman that doubles as seating",
		Price:         89,
		OriginalPrice: 129,
		Category:      domain.CategoryStorage,
		Brand:         "SmartFurniture",
		Image:         "https://images.unsplash.com/photo-1586023492125-27b2c045efd7?w=400&h=400&fit=crop",
		InStock:       true,
		Rating:        4.2,
		Reviews:       94,
	},
	{
		Name:          "Table Lamp",
		Description:   "Classic table lamp with fabric shade",
		Price:         79,
		OriginalPrice: 109,
		Category:      domain.CategoryLighting,
		Brand:         "ClassicLights",
		Image:         "https://images.unsplash.com/photo-1586023492125-27b2c045efd7?w=400&h=400&fit=crop",
		InStock:       true,
		Rating:        4.3,
		Reviews:       37,
	},
}

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() { _ = client.Disconnect(ctx) }()

	userRepo := mongodb.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure user indexes")
	}
	productRepo := mongodb.NewProductRepository(db)
	if err := productRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure product indexes")
	}

	// Admin account. The unique email index makes this idempotent.
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to hash admin password")
	}
	admin := &domain.User{
		Name:         adminName,
		Email:        adminEmail,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		IsActive:     true,
		LastLogin:    time.Now().UTC(),
	}
	switch _, err := userRepo.Create(ctx, admin); {
	case err == nil:
		log.Info().Str("email", adminEmail).Msg("admin account created")
	case errors.Is(err, domain.ErrDuplicateEmail):
		log.Info().Str("email", adminEmail).Msg("admin account already exists")
	default:
		log.Fatal().Err(err).Msg("failed to create admin account")
	}

	// Sample catalog. Only inserted into an empty catalog so reruns do not
	// duplicate entries.
	existing, err := productRepo.Count(ctx, ports.ListProductsFilter{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to count products")
	}
	if existing > 0 {
		log.Info().Int64("count", existing).Msg("catalog already populated, skipping sample products")
		return
	}

	for i := range sampleProducts {
		p := sampleProducts[i]
		if _, err := productRepo.Create(ctx, &p); err != nil {
			log.Fatal().Err(err).Str("name", p.Name).Msg("failed to insert sample product")
		}
	}
	log.Info().Int("count", len(sampleProducts)).Msg("sample products inserted")
}
