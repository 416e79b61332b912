package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init gorm: %v", err)
		}

		if clearData {
			for _, table := range []string{"notifications", "workflow_steps", "signature_requests", "approvals", "contracts", "company_members", "companies", "users"} {
				if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
					log.Fatalf("failed to clear table %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

		users := []struct {
			Email      string
			Name       string
			GlobalRole string
			Department string
			DeptRole   string
		}{
			{"ayse@contravo.dev", "Ayşe Yılmaz", "ADMIN", "Genel Müdürlük", "HEAD"},
			{"mehmet@contravo.dev", "Mehmet Demir", "EDITOR", "Satış", "MANAGER"},
			{"elif@contravo.dev", "Elif Kaya", "VIEWER", "Hukuk", "MEMBER"},
			{"can@contravo.dev", "Can Öztürk", "VIEWER", "Satış", "MEMBER"},
		}

		for _, u := range users {
			var exists int
			if err := db.Raw("SELECT 1 FROM users WHERE email = ?", u.Email).Row().Scan(&exists); err == nil {
				fmt.Println("user already exists:", u.Email)
				continue
			}

			err := db.Exec(
				"INSERT INTO users (email, name, password_hash, global_role, department, department_role, is_active, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, true, now(), now())",
				u.Email, u.Name, string(hash), u.GlobalRole, u.Department, u.DeptRole,
			).Error
			if err != nil {
				log.Fatalf("failed to insert user %s: %v", u.Email, err)
			}
			fmt.Println("Seeded user:", u.Email)
		}

		var editorID, viewerID int64
		if err := db.Raw("SELECT id FROM users WHERE email = ?", "mehmet@contravo.dev").Row().Scan(&editorID); err != nil {
			log.Fatalf("failed to lookup editor user id: %v", err)
		}
		if err := db.Raw("SELECT id FROM users WHERE email = ?", "elif@contravo.dev").Row().Scan(&viewerID); err != nil {
			log.Fatalf("failed to lookup viewer user id: %v", err)
		}

		var companyID int64
		if err := db.Raw("SELECT id FROM companies WHERE name = ?", "Acme Lojistik").Row().Scan(&companyID); err != nil {
			if err := db.Exec("INSERT INTO companies (name, created_by_id, created_at, updated_at) VALUES (?, ?, now(), now())", "Acme Lojistik", editorID).Error; err != nil {
				log.Fatalf("failed to insert company: %v", err)
			}
			if err := db.Raw("SELECT id FROM companies WHERE name = ?", "Acme Lojistik").Row().Scan(&companyID); err != nil {
				log.Fatalf("failed to lookup company id: %v", err)
			}
			fmt.Println("Seeded company: Acme Lojistik")
		}

		var memberExists int
		if err := db.Raw("SELECT 1 FROM company_members WHERE company_id = ? AND user_id = ?", companyID, viewerID).Row().Scan(&memberExists); err != nil {
			if err := db.Exec("INSERT INTO company_members (company_id, user_id, company_role, created_at) VALUES (?, ?, ?, now())", companyID, viewerID, "VIEWER").Error; err != nil {
				log.Fatalf("failed to insert company member: %v", err)
			}
		}

		var contractID int64
		if err := db.Raw("SELECT id FROM contracts WHERE title = ?", "Lojistik Hizmet Sözleşmesi").Row().Scan(&contractID); err != nil {
			err := db.Exec(
				"INSERT INTO contracts (title, description, status, department, created_by_id, company_id, amount, tags, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, now(), now())",
				"Lojistik Hizmet Sözleşmesi", "Annual logistics services agreement", "IN_REVIEW", "Satış", editorID, companyID, 25000.0, "logistics,annual",
			).Error
			if err != nil {
				log.Fatalf("failed to insert contract: %v", err)
			}
			if err := db.Raw("SELECT id FROM contracts WHERE title = ?", "Lojistik Hizmet Sözleşmesi").Row().Scan(&contractID); err != nil {
				log.Fatalf("failed to lookup contract id: %v", err)
			}

			if err := db.Exec("INSERT INTO approvals (contract_id, approver_id, status, created_at) VALUES (?, ?, 'PENDING', now())", contractID, viewerID).Error; err != nil {
				log.Fatalf("failed to insert approval: %v", err)
			}
			if err := db.Exec("INSERT INTO signature_requests (contract_id, user_id, status, signing_order, created_at) VALUES (?, ?, 'PENDING', 1, now())", contractID, editorID).Error; err != nil {
				log.Fatalf("failed to insert signature request: %v", err)
			}
			if err := db.Exec(
				"INSERT INTO workflow_steps (contract_id, name, step_order, conditions, created_at) VALUES (?, ?, 1, ?, now())",
				contractID, "finance review", `[{"field":"amount","operator":"GREATER_THAN","value":10000}]`,
			).Error; err != nil {
				log.Fatalf("failed to insert workflow step: %v", err)
			}
			fmt.Println("Seeded contract with approval flow:", contractID)
		}

		fmt.Println("Seeding complete")
	},
}
