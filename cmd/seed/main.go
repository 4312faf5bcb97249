package main

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"dalil/pkg/cache"
	"dalil/pkg/config"
	"dalil/pkg/database"
	"dalil/pkg/logger"
	"dalil/pkg/media"
	"dalil/pkg/models"
	"dalil/pkg/s3"

	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func main() {
	var (
		adminEmail    = flag.String("admin-email", "admin@dalil.ai", "email of the seeded admin")
		adminPassword = flag.String("admin-password", "", "password of the seeded admin (required)")
		withBuckets   = flag.Bool("buckets", true, "create the media buckets in S3")
	)
	flag.Parse()

	if len(*adminPassword) < 8 {
		panic("-admin-password must be at least 8 characters")
	}

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	if *withBuckets {
		s3Client, err := s3.NewClient(cfg, log)
		if err != nil {
			log.Warn("Skipping buckets, S3 unavailable: %v", err)
		} else {
			s3Client.EnsureBuckets(media.Buckets()...)
		}
	}

	if err := seedDatabase(db, *adminEmail, *adminPassword, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Warn("Failed to connect to redis: %v (cached pages were not cleared)", err)
	} else {
		store := cache.NewStore(redisClient, log, cfg.PageCacheTTL)
		store.RevalidatePath(cache.PathProducts, cache.PathFacets, cache.PathNews, cache.PathTutorials, cache.PathSettings)
		redisClient.Close()
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(db *gorm.DB, adminEmail, adminPassword string, log *logger.Logger) error {
	adminID, err := seedAdmin(db, adminEmail, adminPassword, log)
	if err != nil {
		return err
	}

	products := []models.Product{
		{
			Name: "ChatGPT", NameAr: "شات جي بي تي",
			Description: "Conversational assistant by OpenAI", DescriptionAr: "مساعد محادثة من OpenAI",
			Category: "chat", Label: "popular", Tags: pq.StringArray{"chat", "writing"},
			WebsiteURL: "https://chat.openai.com", IsFeatured: true,
		},
		{
			Name: "Midjourney", NameAr: "ميدجورني",
			Description: "Image generation from text prompts", DescriptionAr: "توليد الصور من الأوصاف النصية",
			Category: "image", Label: "popular", Tags: pq.StringArray{"image", "art"},
			WebsiteURL: "https://www.midjourney.com",
		},
		{
			Name: "Whisper", NameAr: "ويسبر",
			Description: "Open speech recognition model", DescriptionAr: "نموذج مفتوح للتعرف على الكلام",
			Category: "audio", Label: "new", Tags: pq.StringArray{"speech", "open-source"},
			WebsiteURL: "https://github.com/openai/whisper",
		},
	}
	for i := range products {
		product := &products[i]
		product.Status = models.StatusApproved
		product.SubmittedBy = &adminID

		var existing models.Product
		if err := db.Where("name = ?", product.Name).First(&existing).Error; err == nil {
			log.Info("Product %s already exists, skipping", product.Name)
			continue
		}
		if err := db.Create(product).Error; err != nil {
			log.Error("Failed to create product %s: %v", product.Name, err)
			continue
		}
		log.Info("Created product: %s", product.Name)
	}

	now := time.Now()
	news := &models.News{
		TitleAr:     "مرحباً بكم في دليل",
		TitleEn:     "Welcome to Dalil",
		SummaryAr:   "دليلك إلى أدوات الذكاء الاصطناعي",
		SummaryEn:   "Your guide to AI tools",
		ContentAr:   "<p>نجمع لكم أفضل أدوات الذكاء الاصطناعي باللغة العربية.</p>",
		ContentEn:   "<p>We collect the best AI tools, in Arabic first.</p>",
		Label:       "announcement",
		IsPublished: true,
		PublishedAt: &now,
		IsFeatured:  true,
		AuthorID:    &adminID,
	}
	if err := createUnless(db, &models.News{}, "title_en = ?", news.TitleEn, news); err != nil {
		log.Error("Failed to create news: %v", err)
	}

	tutorial := &models.Tutorial{
		TitleAr:    "كيف تكتب أوامر فعالة",
		TitleEn:    "Writing effective prompts",
		ContentAr:  "<p>ابدأ بوصف المهمة بوضوح.</p>",
		ContentEn:  "<p>Start by describing the task clearly.</p>",
		Category:   "prompting",
		Difficulty: "beginner",
		Tags:       pq.StringArray{"prompts", "chat"},
		AuthorID:   &adminID,
	}
	if err := createUnless(db, &models.Tutorial{}, "title_en = ?", tutorial.TitleEn, tutorial); err != nil {
		log.Error("Failed to create tutorial: %v", err)
	}

	setting := &models.SiteSetting{
		Key:       "site.title",
		Value:     datatypes.JSON(`{"ar":"دليل","en":"Dalil"}`),
		UpdatedBy: &adminID,
	}
	if err := createUnless(db, &models.SiteSetting{}, "key = ?", setting.Key, setting); err != nil {
		log.Error("Failed to create setting: %v", err)
	}

	return nil
}

// seedAdmin creates the admin, or promotes an existing account with that email.
func seedAdmin(db *gorm.DB, email, password string, log *logger.Logger) (string, error) {
	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		if existing.Role != models.RoleAdmin {
			if err := db.Model(&existing).Update("role", models.RoleAdmin).Error; err != nil {
				return "", fmt.Errorf("failed to promote %s: %w", email, err)
			}
			log.Info("Promoted %s to admin", email)
		}
		return existing.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("failed to look up admin: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &models.User{
		Email:        email,
		PasswordHash: string(hashedPassword),
		FullName:     "Dalil Admin",
		Role:         models.RoleAdmin,
		Locale:       "ar",
	}
	if err := db.Create(admin).Error; err != nil {
		return "", fmt.Errorf("failed to create admin: %w", err)
	}
	log.Info("Created admin: %s", email)
	return admin.ID, nil
}

func createUnless(db *gorm.DB, row interface{}, query string, arg interface{}, value interface{}) error {
	var count int64
	if err := db.Model(row).Where(query, arg).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return db.Create(value).Error
}
