package mailer

// Config holds email transport configuration.
// PostmarkServerToken and PostmarkAccountToken are optional to support
// development environments where real email sending is disabled.
// SenderEmail establishes the sender identity for all outbound notifications;
// SupportEmail receives replies.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL,required"`
	SupportEmail         string `env:"SUPPORT_EMAIL,required"`
}
