package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/shopease-next/internal/app"
	"github.com/shopease-next/internal/authz"
	"github.com/shopease-next/internal/config"
	"github.com/shopease-next/internal/logger"
	"github.com/shopease-next/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiCyan  = "\033[36m"
	ansiDim   = "\033[2m"
)

func main() {
	var mode string
	flag.StringVar(&mode, "mode", app.ModeAll, "启动模式: all (默认), api, worker")
	flag.Parse()

	printStartupBanner(mode)

	// 加载配置
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if cfg.Server.Mode == "release" {
		if isWeakSecret(cfg.UserJWT.SecretKey) {
			stdLog.Fatalf("JWT secret 过弱或仍为默认值，请在生产环境中配置强随机密钥")
		}
	} else if isWeakSecret(cfg.UserJWT.SecretKey) {
		stdLog.Printf("警告: JWT secret 过弱或仍为默认值，建议在生产环境中更换")
	}

	// 初始化数据库
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}, models.ParseLogLevel(cfg.Database.LogLevel)); err != nil {
		stdLog.Fatalf("数据库初始化失败: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("数据库迁移失败: %v", err)
	}

	if mode != app.ModeWorker {
		ensureDefaultAdmin(cfg)
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Mode:    mode,
	}); err != nil {
		stdLog.Fatalf("服务运行失败: %v", err)
	}
}

// ensureDefaultAdmin 初始化默认运营账号并授予 super_admin 角色
func ensureDefaultAdmin(cfg *config.Config) {
	if cfg.Server.Mode == "release" && strings.TrimSpace(cfg.Admin.Password) == "" {
		logger.Warnw("default_admin_skipped", "reason", "admin.password not set")
		return
	}
	admin, err := models.InitDefaultAdmin(cfg.Admin.Email, cfg.Admin.Password)
	if err != nil {
		logger.Warnw("default_admin_init_failed", "error", err)
		return
	}
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Warnw("default_admin_authz_unavailable", "error", err)
		return
	}
	if err := authzService.BootstrapBuiltinRoles(); err != nil {
		logger.Warnw("default_admin_bootstrap_roles_failed", "error", err)
		return
	}
	if err := authzService.AddUserRole(admin.ID, authz.RoleSuperAdmin); err != nil {
		logger.Warnw("default_admin_grant_role_failed", "user_id", admin.ID, "error", err)
	}
}

func printStartupBanner(mode string) {
	fmt.Println(ansiCyan + ansiBold + "ShopEase API" + ansiReset)
	fmt.Println(ansiDim + "mode: " + mode + ansiReset)
	fmt.Println(ansiDim + "--------------------------------------------------------------" + ansiReset)
}

func isWeakSecret(secret string) bool {
	if len(secret) < 32 {
		return true
	}
	normalized := strings.ToLower(secret)
	if strings.Contains(normalized, "change-me") ||
		strings.Contains(normalized, "change-in-production") ||
		strings.Contains(normalized, "your-secret-key") {
		return true
	}
	return false
}
