package config

import (
	"os"
	"strings"
)

const defaultListenAddr = ":8080"
const defaultBankName = "Retail Ledger"
const defaultClientID = "LedgerApp"
const defaultClientKey = "LedgerKey001"

type Config struct {
	ListenAddr  string
	BankName    string
	DatabaseDSN string
	ClientID    string
	ClientKey   string
}

func Load() Config {
	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = defaultListenAddr
	}

	bankName := strings.TrimSpace(os.Getenv("BANK_NAME"))
	if bankName == "" {
		bankName = defaultBankName
	}

	clientID := strings.TrimSpace(os.Getenv("CLIENT_ID"))
	if clientID == "" {
		clientID = defaultClientID
	}

	clientKey := strings.TrimSpace(os.Getenv("CLIENT_KEY"))
	if clientKey == "" {
		clientKey = defaultClientKey
	}

	return Config{
		ListenAddr:  listenAddr,
		BankName:    bankName,
		DatabaseDSN: strings.TrimSpace(os.Getenv("DATABASE_DSN")),
		ClientID:    clientID,
		ClientKey:   clientKey,
	}
}
