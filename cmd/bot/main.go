package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lamdn/attendbot/internal/common/clock"
	"github.com/lamdn/attendbot/internal/common/uuid"
	"github.com/lamdn/attendbot/internal/handlers/discord"
	"github.com/lamdn/attendbot/internal/quota"
	attendanceRepo "github.com/lamdn/attendbot/internal/repositories/attendance"
	"github.com/lamdn/attendbot/internal/repositories/guildconfig"
	"github.com/lamdn/attendbot/internal/scheduler"
	attendanceService "github.com/lamdn/attendbot/internal/services/attendance"
	"github.com/lamdn/attendbot/internal/sessions"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load optional .env file for local development
	_ = godotenv.Load()

	// All session windows and day boundaries live in one timezone
	location, err := time.LoadLocation(getEnv("BOT_TZ", "Asia/Ho_Chi_Minh"))
	if err != nil {
		log.Fatalf("Failed to load timezone: %v", err)
	}

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       0,
	})

	// Test Redis connection
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Initialize repositories
	attendRepo, err := attendanceRepo.NewRedis(&attendanceRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create attendance repository: %v", err)
	}

	configRepo, err := guildconfig.NewRedis(&guildconfig.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create guild config repository: %v", err)
	}

	// Initialize the session policy and the shared clock
	policy := sessions.New(&sessions.Config{})
	botClock := clock.New(location)

	// Initialize attendance service
	attendSvc, err := attendanceService.New(&attendanceService.Config{
		Repo:          attendRepo,
		Policy:        policy,
		Clock:         botClock,
		UUIDGenerator: uuid.New(),
	})
	if err != nil {
		log.Fatalf("Failed to create attendance service: %v", err)
	}

	// Initialize quota evaluator
	evaluator := quota.New(&quota.Config{})

	// Get Discord token from environment
	discordToken := getEnv("DISCORD_TOKEN", "")
	if discordToken == "" {
		log.Fatal("DISCORD_TOKEN environment variable is required")
	}

	// Get application ID for the bot
	applicationID := getEnv("APPLICATION_ID", "")

	// Get optional guild ID for development
	guildID := getEnv("GUILD_ID", "")

	// Initialize Discord bot
	bot, err := discord.New(&discord.Config{
		Token:         discordToken,
		ApplicationID: applicationID,
		GuildID:       guildID,
		Attendance:    attendSvc,
		Configs:       configRepo,
		Policy:        policy,
		Clock:         botClock,
	})
	if err != nil {
		log.Fatalf("Failed to create Discord bot: %v", err)
	}

	// Initialize the scheduled jobs, with the bot handling outbound events
	jobs, err := scheduler.NewJobs(&scheduler.JobsConfig{
		Attendance: attendSvc,
		Configs:    configRepo,
		Policy:     policy,
		Quota:      evaluator,
		Notifier:   bot,
		Roles:      bot,
	})
	if err != nil {
		log.Fatalf("Failed to create scheduled jobs: %v", err)
	}
	bot.SetRunner(jobs)

	sched, err := scheduler.New(&scheduler.Config{
		Clock: botClock,
	})
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}
	sched.Register(jobs.SessionOpenJob())
	sched.Register(jobs.DayRollJob())
	sched.Register(jobs.WeeklySummaryJob())

	// Start the bot
	if err := bot.Start(); err != nil {
		log.Fatalf("Failed to start Discord bot: %v", err)
	}

	// Start the scheduler
	sched.Start(context.Background())

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	// Stop the scheduler before the bot so no job fires into a closed session
	sched.Stop()

	// Shutdown the bot
	if err := bot.Stop(); err != nil {
		log.Printf("Error stopping bot: %v", err)
	}

	log.Println("Bot has been shut down")
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
