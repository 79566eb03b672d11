package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"neolingo/internal/config"
	"neolingo/internal/database"
	"neolingo/internal/domain"
	"neolingo/internal/logger"
	"neolingo/internal/repository/models"
	"neolingo/internal/util"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const seedFilePath = "configs/seed_data/initial_data.json"

type seedWord struct {
	Lemma string `json:"lemma"`
	Gloss string `json:"gloss"`
}

type seedQuestion struct {
	Text          string          `json:"text"`
	Options       []models.Option `json:"options"`
	CorrectAnswer string          `json:"correct_answer"`
}

type seedLanguage struct {
	Code      string         `json:"code"`
	Name      string         `json:"name"`
	Words     []seedWord     `json:"words"`
	Questions []seedQuestion `json:"questions"`
}

type seedData struct {
	Roles     []string       `json:"roles"`
	Languages []seedLanguage `json:"languages"`
}

func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	log.Info("Starting initial data seeding process...")
	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		log.Fatal("Failed to connect to Oracle database", zap.Error(err))
	}
	defer db.Close()

	byteValue, err := os.ReadFile(seedFilePath)
	if err != nil {
		log.Fatal("Failed to read seed file", zap.String("path", seedFilePath), zap.Error(err))
	}

	var data seedData
	if err := json.Unmarshal(byteValue, &data); err != nil {
		log.Fatal("Failed to unmarshal seed data", zap.Error(err))
	}
	log.Info("Loaded seed data",
		zap.Int("roles", len(data.Roles)),
		zap.Int("languages", len(data.Languages)))

	if err := seedRoles(ctx, db, log, data.Roles); err != nil {
		log.Fatal("Failed to seed roles", zap.Error(err))
	}

	for _, sl := range data.Languages {
		if err := seedLanguageData(ctx, db, log, sl); err != nil {
			log.Error("Error seeding language, transaction rolled back",
				zap.String("language", sl.Code), zap.Error(err))
		}
	}
	log.Info("Initial data seeding process completed.")
}

func seedRoles(ctx context.Context, db *sqlx.DB, log *zap.Logger, names []string) error {
	if len(names) == 0 {
		names = []string{domain.RoleExplorer, domain.RoleContributor, domain.RoleAdmin, domain.RoleJuror}
	}
	for _, name := range names {
		var count int
		if err := db.GetContext(ctx, &count, `SELECT COUNT(*) FROM roles WHERE name = :1`, name); err != nil {
			return fmt.Errorf("failed to check role %s: %w", name, err)
		}
		if count > 0 {
			log.Info("Role already exists, skipping", zap.String("name", name))
			continue
		}
		_, err := db.ExecContext(ctx,
			`INSERT INTO roles (id, name, created_at) VALUES (:1, :2, :3)`,
			util.NewULID(), name, time.Now())
		if err != nil {
			return fmt.Errorf("failed to insert role %s: %w", name, err)
		}
		log.Info("Seeded role", zap.String("name", name))
	}
	return nil
}

func seedLanguageData(ctx context.Context, db *sqlx.DB, log *zap.Logger, sl seedLanguage) (err error) {
	log.Info("Processing language", zap.String("code", sl.Code))
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for language %s: %w", sl.Code, err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("Failed to rollback transaction", zap.Error(rbErr))
			}
		} else {
			if cErr := tx.Commit(); cErr != nil {
				log.Error("Failed to commit transaction", zap.Error(cErr))
				err = cErr
			}
		}
	}()

	languageID, err := ensureLanguage(ctx, tx, sl)
	if err != nil {
		return err
	}

	now := time.Now()
	for _, w := range sl.Words {
		var count int
		if err = tx.GetContext(ctx, &count,
			`SELECT COUNT(*) FROM words WHERE language_id = :1 AND lemma = :2`, languageID, w.Lemma); err != nil {
			return fmt.Errorf("failed to check word %s: %w", w.Lemma, err)
		}
		if count > 0 {
			continue
		}
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO words (id, language_id, lemma, gloss, created_at, updated_at)
			 VALUES (:1, :2, :3, :4, :5, :6)`,
			util.NewULID(), languageID, w.Lemma, w.Gloss, now, now); err != nil {
			return fmt.Errorf("failed to insert word %s: %w", w.Lemma, err)
		}
	}

	for _, q := range sl.Questions {
		var count int
		if err = tx.GetContext(ctx, &count,
			`SELECT COUNT(*) FROM quiz_questions WHERE language_id = :1 AND text = :2`, languageID, q.Text); err != nil {
			return fmt.Errorf("failed to check question: %w", err)
		}
		if count > 0 {
			continue
		}
		optionsJSON, jsonErr := json.Marshal(q.Options)
		if jsonErr != nil {
			err = fmt.Errorf("failed to marshal options: %w", jsonErr)
			return err
		}
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO quiz_questions (id, language_id, text, options, correct_answer, is_active, created_at, updated_at)
			 VALUES (:1, :2, :3, :4, :5, 1, :6, :7)`,
			util.NewULID(), languageID, q.Text, string(optionsJSON), q.CorrectAnswer, now, now); err != nil {
			return fmt.Errorf("failed to insert question: %w", err)
		}
	}

	log.Info("Seeded language",
		zap.String("code", sl.Code),
		zap.Int("words", len(sl.Words)),
		zap.Int("questions", len(sl.Questions)))
	return nil
}

func ensureLanguage(ctx context.Context, tx *sqlx.Tx, sl seedLanguage) (string, error) {
	var existingID string
	err := tx.GetContext(ctx, &existingID, `SELECT id FROM languages WHERE code = :1`, sl.Code)
	if err == nil {
		return existingID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("failed to check language %s: %w", sl.Code, err)
	}

	id := util.NewULID()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO languages (id, code, name, is_active) VALUES (:1, :2, :3, 1)`,
		id, sl.Code, sl.Name); err != nil {
		return "", fmt.Errorf("failed to insert language %s: %w", sl.Code, err)
	}
	return id, nil
}
