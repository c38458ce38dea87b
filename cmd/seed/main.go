package main

import (
	"context"
	"log"
	"os"

	"blogcms/internal/config"
	"blogcms/internal/database"
	"blogcms/internal/models"
	"blogcms/internal/repository"
)

// Создаёт первую учётную запись редактора из окружения.
// Повторный запуск безопасен: существующий email пропускается.
func main() {
	log.Println("Запуск сидирования...")

	cfg := config.LoadConfig()

	email := os.Getenv("SEED_EMAIL")
	password := os.Getenv("SEED_PASSWORD")
	name := os.Getenv("SEED_NAME")

	if email == "" || password == "" || name == "" {
		log.Fatal("SEED_EMAIL, SEED_PASSWORD и SEED_NAME должны быть установлены")
	}

	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}
	defer db.CloseDB()

	userRepo := repository.NewUserRepository(db.DB)

	ctx := context.Background()

	existing, err := userRepo.GetUserByEmail(ctx, email)
	if err == nil && existing != nil {
		log.Printf("Пользователь %s уже существует, пропускаем", email)
		return
	}

	user := &models.User{
		Email: email,
		Name:  name,
	}

	if err := userRepo.CreateUser(ctx, user, password); err != nil {
		log.Fatalf("Не удалось создать пользователя: %v", err)
	}

	log.Printf("Создан редактор %s (%s)", user.Email, user.UserID)
}
