package config

import (
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	c := Load()
	if c.AppPort != "8080" {
		t.Fatalf("AppPort=%s", c.AppPort)
	}
	if c.KafkaClientID != "loans-service" {
		t.Fatalf("KafkaClientID=%s", c.KafkaClientID)
	}
	if c.IdempTTLSecs != 300 {
		t.Fatalf("IdempTTLSecs=%d", c.IdempTTLSecs)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MYSQL_HOST", "db.internal")
	t.Setenv("MYSQL_PORT", "3307")
	t.Setenv("IDEMPOTENCY_TTL_SECONDS", "60")

	c := Load()
	if c.MySQLHost != "db.internal" {
		t.Fatalf("MySQLHost=%s", c.MySQLHost)
	}
	if c.IdempTTLSecs != 60 {
		t.Fatalf("IdempTTLSecs=%d", c.IdempTTLSecs)
	}
	dsn := c.MySQLDSN()
	if !strings.Contains(dsn, "tcp(db.internal:3307)") || !strings.Contains(dsn, "parseTime=true") {
		t.Fatalf("dsn=%s", dsn)
	}
}

func TestValidate_RejectsBadPort(t *testing.T) {
	c := Load()
	c.MySQLPort = "not-a-port"
	if err := c.Validate(); err == nil {
		t.Fatal("want error for invalid port")
	}
}
