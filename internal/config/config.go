package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	DatabaseURL string `env:"DATABASE_URL"`
	FrontendURL string `env:"FRONTEND_URL" envDefault:"https://kzstore.ao"`

	// IANA timezone used to compute the "today" / "this week" windows
	// for the snapshot and report jobs.
	Timezone string `env:"STORE_TIMEZONE" envDefault:"Africa/Luanda"`

	Resend Resend `envPrefix:"RESEND_"`
	Admin  Admin  `envPrefix:"ADMIN_"`
}

type Resend struct {
	BaseApiURL string `env:"BASE_API_URL" envDefault:"https://api.resend.com"`
	APIKey     string `env:"API_KEY"`
	FromEmail  string `env:"FROM_EMAIL" envDefault:"noreply@kzstore.ao"`
	FromName   string `env:"FROM_NAME" envDefault:"KZSTORE Angola"`
}

type Admin struct {
	// Recipients for operational alerts and reports.
	NotificationEmails []string `env:"NOTIFICATION_EMAILS" envSeparator:","`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
