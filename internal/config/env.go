package config

import (
	"os"
	"strconv"
)

// fromEnv applies environment overrides on top of cfg. Env always wins
// over the file.
func fromEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = p
		}
	}
	setStr(&cfg.Server.StaticDir, "STATIC_DIR")
	setStr(&cfg.Ledger.Driver, "LEDGER_DRIVER")
	setStr(&cfg.Ledger.Path, "LEADS_FILE")
	setStr(&cfg.Sheets.CredentialsJSON, "GOOGLE_SHEETS_CREDENTIALS")
	setStr(&cfg.Sheets.SpreadsheetID, "GOOGLE_SHEET_ID")
	setStr(&cfg.Telegram.Token, "TELEGRAM_BOT_TOKEN")
	setStr(&cfg.Telegram.ChatID, "TELEGRAM_CHAT_ID")
	setStr(&cfg.CRM.APIURL, "CRM_API_URL")
	setStr(&cfg.CRM.APIKey, "CRM_API_KEY")
	setStr(&cfg.Log.Level, "LOG_LEVEL")
	setStr(&cfg.Timezone, "TIMEZONE")
}

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
