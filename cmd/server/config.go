package main

import (
	"strings"

	"github.com/goliatone/go-errors"
	"github.com/spf13/viper"
)

// Config is the full process configuration, environment-driven. Offline
// mode swaps DynamoDB and SES for in-memory equivalents and is meant for
// local development only.
type Config struct {
	HTTPAddr  string
	JWTSecret string
	DeployURL string
	Offline   bool

	AWSRegion      string
	DynamoEndpoint string
	SESEndpoint    string
	AWSAccessKey   string
	AWSSecretKey   string

	UsersTable        string
	RegistrationTable string
	ParkingsTable     string
	ReservationsTable string

	MailSource string
	MailCC     []string
}

func loadConfig() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":3000")
	v.SetDefault("DEPLOY_URL", "http://localhost:3000")
	v.SetDefault("AWS_REGION", "eu-west-1")
	v.SetDefault("USERS_TABLE", "users")
	v.SetDefault("REGISTRATION_TABLE", "registrations")
	v.SetDefault("PARKINGS_TABLE", "parkings")
	v.SetDefault("RESERVATIONS_TABLE", "reservations")
	v.SetDefault("MAIL_SOURCE", "cgibeparking@gmail.com")
	v.SetDefault("MAIL_CC", "cgibeparking@gmail.com")

	cfg := &Config{
		HTTPAddr:  v.GetString("HTTP_ADDR"),
		JWTSecret: v.GetString("JWT_SECRET"),
		DeployURL: v.GetString("DEPLOY_URL"),
		Offline:   v.GetString("IS_OFFLINE") == "true",

		AWSRegion:      v.GetString("AWS_REGION"),
		DynamoEndpoint: v.GetString("DYNAMODB_ENDPOINT"),
		SESEndpoint:    v.GetString("SES_ENDPOINT"),
		AWSAccessKey:   v.GetString("AWS_ACCESS_KEY_ID"),
		AWSSecretKey:   v.GetString("AWS_SECRET_ACCESS_KEY"),

		UsersTable:        v.GetString("USERS_TABLE"),
		RegistrationTable: v.GetString("REGISTRATION_TABLE"),
		ParkingsTable:     v.GetString("PARKINGS_TABLE"),
		ReservationsTable: v.GetString("RESERVATIONS_TABLE"),

		MailSource: v.GetString("MAIL_SOURCE"),
	}

	if cc := v.GetString("MAIL_CC"); cc != "" {
		cfg.MailCC = strings.Split(cc, ",")
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set", errors.CategoryBadInput)
	}

	return cfg, nil
}
