package commands

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/fundscope/pkg/database"
)

// testDBCmd represents the test-db command
var testDBCmd = &cobra.Command{
	Use:   "test-db",
	Short: "PostgreSQL 연결 테스트",
	Long: `NAV 소스 데이터베이스 연결을 테스트합니다.

이 명령어는:
- config에서 DATABASE_URL 로드
- 읽기 전용 연결 생성 및 Ping
- fund.fund_info / fund.nav_history 테이블 확인
- Connection Pool 통계 표시

Example:
  go run ./cmd/fundscope test-db`,
	RunE: runTestDB,
}

func init() {
	rootCmd.AddCommand(testDBCmd)
}

func runTestDB(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Fundscope Database Connection Test ===")

	sourceFlag = "postgres"
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("❌ Failed to load config: %w", err)
	}
	fmt.Printf("✅ Config loaded (ENV: %s)\n", cfg.Env)
	fmt.Printf("   Database URL: %s\n\n", maskPassword(cfg.Database.URL))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	fmt.Println("Connecting to database...")
	db, err := database.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("❌ Failed to connect to database: %w", err)
	}
	defer db.Close()
	fmt.Println("✅ Database connection established (read-only)")

	status, err := db.HealthCheck(ctx)
	if err != nil {
		return fmt.Errorf("❌ Health check failed: %w", err)
	}
	fmt.Printf("✅ Ping %v\n", status.ResponseTime)

	missing, err := db.CheckTables(ctx)
	if err != nil {
		return fmt.Errorf("❌ Table check failed: %w", err)
	}
	if len(missing) > 0 {
		return fmt.Errorf("❌ Missing tables: %s", strings.Join(missing, ", "))
	}
	fmt.Printf("✅ Tables present: %s\n\n", strings.Join(database.RequiredTables, ", "))

	fmt.Println("📊 Connection Pool Statistics:")
	fmt.Printf("   Max Connections: %d\n", status.Stats.MaxConns)
	fmt.Printf("   Total Connections: %d\n", status.Stats.TotalConns)
	fmt.Printf("   Idle Connections: %d\n", status.Stats.IdleConns)

	fmt.Println("\n✅ All tests passed!")
	return nil
}

// maskPassword hides the password of a database URL for display
func maskPassword(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	return u.Redacted()
}
