/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/suparena/notifystore"
	"github.com/suparena/notifystore/datastore"
	"github.com/suparena/notifystore/datastore/ddb"
	"github.com/suparena/notifystore/dispatch"
	"github.com/suparena/notifystore/notification"
	"github.com/suparena/notifystore/sender"
)

var (
	versionFlag = flag.Bool("version", false, "Show version information")
	vFlag       = flag.Bool("v", false, "Show version information (short)")
	configFlag  = flag.String("config", "notifyctl.yaml", "Path to the notifyctl config file")
)

// Config is the notifyctl YAML configuration. AWS credentials come from the
// environment (optionally via a .env file), never from this file.
type Config struct {
	Region string `yaml:"region"`
	Table  string `yaml:"table"`
}

func main() {
	// Parse flags early to catch version flag
	flag.Parse()

	// Handle version flag
	if *versionFlag || *vFlag {
		info := notifystore.GetVersionInfo()
		fmt.Printf("NotifyStore notifyctl version %s\n", info.Version)
		fmt.Printf("Git commit: %s\n", info.GitCommit)
		fmt.Printf("Build date: %s\n", info.BuildDate)
		fmt.Printf("Go version: %s\n", info.GoVersion)
		os.Exit(0)
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: notifyctl [-config file] <send|seed> [options]")
		os.Exit(2)
	}

	var err error
	switch args[0] {
	case "send":
		err = runSend(args[1:], logger)
	case "seed":
		err = runSeed(args[1:], logger)
	default:
		err = fmt.Errorf("unknown command %q", args[0])
	}
	if err != nil {
		logger.Fatal().Err(err).Msg("notifyctl failed")
	}
}

func runSend(args []string, logger zerolog.Logger) error {
	fs := flag.NewFlagSet("send", flag.ExitOnError)
	name := fs.String("name", "", "Campaign name")
	message := fs.String("message", "", "Campaign message")
	sinceHours := fs.Int("since-hours", 0, "Only target notifications created in the last N hours (0 = all)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" {
		return fmt.Errorf("send requires -name")
	}

	store, err := openStore(logger)
	if err != nil {
		return err
	}

	svc, err := notifystore.NewCampaignService(store, []dispatch.Sender{
		sender.NewSmsSender(logger),
		sender.NewEmailSender(logger),
	}, logger)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if *sinceHours > 0 {
		since := time.Now().Add(-time.Duration(*sinceHours) * time.Hour)
		return svc.SendCampaignSince(ctx, *name, *message, since)
	}
	return svc.SendCampaign(ctx, *name, *message)
}

// runSeed persists a pair of demo notifications, one per variant, so a fresh
// table has something to campaign against.
func runSeed(args []string, logger zerolog.Logger) error {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	firstName := fs.String("first-name", "Vlad", "Recipient first name")
	lastName := fs.String("last-name", "Mihalcea", "Recipient last name")
	phone := fs.String("phone", "012-345-67890", "SMS phone number")
	email := fs.String("email", "vlad@acme.com", "Email address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := openStore(logger)
	if err != nil {
		return err
	}

	// Seed goes through the storage manager so each variant's typed store is
	// registered and resolved the same way library callers do it.
	sm := notifystore.NewStorageManager()
	if err := sm.RegisterDataStore(notification.VariantSMS, store.SmsStore()); err != nil {
		return err
	}
	if err := sm.RegisterDataStore(notification.VariantEmail, store.EmailStore()); err != nil {
		return err
	}

	ctx := context.Background()
	sms := notification.NewSmsNotification(*firstName, *lastName, *phone)
	if err := sms.Validate(); err != nil {
		return err
	}
	smsStore, err := sm.GetDataStore(notification.VariantSMS)
	if err != nil {
		return err
	}
	if err := smsStore.(datastore.DataStore[notification.SmsNotification]).Put(ctx, *sms); err != nil {
		return fmt.Errorf("failed to persist SMS notification: %w", err)
	}

	mail := notification.NewEmailNotification(*firstName, *lastName, *email)
	if err := mail.Validate(); err != nil {
		return err
	}
	emailStore, err := sm.GetDataStore(notification.VariantEmail)
	if err != nil {
		return err
	}
	if err := emailStore.(datastore.DataStore[notification.EmailNotification]).Put(ctx, *mail); err != nil {
		return fmt.Errorf("failed to persist email notification: %w", err)
	}

	logger.Info().
		Str("sms_id", sms.ID).
		Str("email_id", mail.ID).
		Msg("seeded notifications")
	return nil
}

func openStore(logger zerolog.Logger) (*ddb.NotificationStore, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg("no .env file found, proceeding with environment variables")
	}

	cfg, err := loadConfig(*configFlag)
	if err != nil {
		return nil, err
	}

	accessKey := os.Getenv("AWS_ACCESS_KEY")
	secretKey := os.Getenv("AWS_SECRET_KEY")
	if accessKey == "" || secretKey == "" {
		return nil, fmt.Errorf("AWS_ACCESS_KEY and AWS_SECRET_KEY must be set")
	}

	client, err := ddb.NewDynamoDBClient(accessKey, secretKey, cfg.Region)
	if err != nil {
		return nil, err
	}
	return ddb.NewNotificationStore(client, cfg.Table), nil
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if cfg.Region == "" {
		return nil, fmt.Errorf("config %s: region is required", path)
	}
	if cfg.Table == "" {
		return nil, fmt.Errorf("config %s: table is required", path)
	}
	return &cfg, nil
}
