package main

import (
	"io"
	"log"
	"os"

	"github.com/ecolehub/ecole-api/internal/config"
	"github.com/ecolehub/ecole-api/internal/logging"
	"github.com/ecolehub/ecole-api/internal/media"
	miniostorage "github.com/ecolehub/ecole-api/internal/repository/minio"
	"github.com/ecolehub/ecole-api/internal/repository/ports"
	"github.com/ecolehub/ecole-api/internal/repository/postgres"
	"github.com/ecolehub/ecole-api/internal/service"
	transporthttp "github.com/ecolehub/ecole-api/internal/transport/http"
	"github.com/ecolehub/ecole-api/internal/transport/mail"
	"github.com/ecolehub/ecole-api/internal/util"
)

func main() {
	cfg := config.Load()

	if cfg.LogstashTCPAddr != "" {
		writer, err := logging.NewLogstashWriter(cfg.LogstashTCPAddr)
		if err != nil {
			log.Printf("Warning: logstash writer disabled: %v", err)
		} else {
			defer writer.Close()
			log.SetOutput(io.MultiWriter(os.Stderr, writer))
		}
	}

	db, err := postgres.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer db.Close()

	accounts := postgres.NewAccountRepo(db)
	codes := postgres.NewVerificationCodeRepo(db)
	resetTokens := postgres.NewResetTokenRepo(db)
	students := postgres.NewStudentRepo(db)
	teachers := postgres.NewTeacherRepo(db)
	administrators := postgres.NewAdministratorRepo(db)

	var storage ports.ObjectStorage
	if cfg.MinIOEndpoint != "" {
		client, err := miniostorage.NewClient(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOUseSSL)
		if err != nil {
			log.Fatalf("connect object storage: %v", err)
		}
		storage = miniostorage.NewStorage(client, cfg.MinIOPublicURL)
	}

	mailer := mail.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
	jwtManager := util.NewJWTManager(cfg.JWTSecret, cfg.JWTRefreshSecret, cfg.SessionTTL, cfg.RefreshTTL)

	verification := service.NewVerificationService(codes, cfg.VerificationCodeTTL)
	authService := service.NewAuthService(accounts, students, teachers, administrators, verification, mailer, jwtManager)
	resetService := service.NewPasswordResetService(accounts, resetTokens, mailer, cfg.FrontendBaseURL, cfg.ResetTokenTTL)
	profileService := service.NewProfileService(
		accounts, students, teachers, administrators,
		storage, media.NewImageProcessor(media.DefaultMaxDimension),
		cfg.MinIOBucketProfile, cfg.ProfilePhotoMaxBytes,
	)
	studentService := service.NewStudentService(students, accounts, authService)
	teacherService := service.NewTeacherService(teachers, accounts, authService)

	e := transporthttp.NewRouter(cfg.AllowOrigins)
	transporthttp.RegisterAuth(e, authService, resetService)
	transporthttp.RegisterProfile(e, authService, profileService)
	transporthttp.RegisterStudents(e, authService, studentService)
	transporthttp.RegisterTeachers(e, authService, teacherService)
	transporthttp.RegisterSwagger(e)

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
