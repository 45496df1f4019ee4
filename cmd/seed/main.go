package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm/clause"

	"luckyticket/internal/config"
	"luckyticket/internal/database"
	"luckyticket/internal/domain"
	"luckyticket/internal/pkg/logger"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_DIR"))
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		logrus.Fatalf("Failed to build logger: %v", err)
	}

	db, err := database.Connect(cfg.Database.DSN, log)
	if err != nil {
		log.Fatalf("DB connection failed: %v", err)
	}

	log.Info("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	// ================== USERS ==================
	users := []domain.User{
		{ID: 1, Name: "민아", Content: "첫 번째 행운"},
		{ID: 2, Name: "준호", Content: "여행 중"},
		{ID: 3, Name: "서연", Content: "오늘의 기록"},
	}
	if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&users).Error; err != nil {
		log.Fatalf("Seeding users failed: %v", err)
	}
	log.WithField("count", len(users)).Info("Users seeded")

	// ================== AI CONTENT ==================
	contents := []domain.AIContent{
		{ID: 1, UserID: 1, FilterStr: "sunset", Text: "노을처럼 따뜻한 하루가 될 거예요."},
		{ID: 2, UserID: 2, FilterStr: "ocean_blue", Text: "파도처럼 시원한 소식이 찾아옵니다."},
		{ID: 3, UserID: 3, FilterStr: "sunset_gold", Text: "황금빛 기회가 다가오고 있어요."},
		{ID: 4, UserID: 1, FilterStr: "forest", Text: "숲의 고요함이 마음을 채워요."},
	}
	if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&contents).Error; err != nil {
		log.Fatalf("Seeding AI content failed: %v", err)
	}
	log.WithField("count", len(contents)).Info("AI content seeded")

	log.Info("Seed completed")
}
